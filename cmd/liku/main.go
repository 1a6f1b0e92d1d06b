package main

import (
	"context"
	"os"

	"github.com/GriffinCanCode/liku/internal/app"
	"github.com/GriffinCanCode/liku/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), app.StdStreams(), os.Args[1:]))
}
