package reporter

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/liku/internal/providers/system"
)

const (
	promptIntro   = "Analyze the following terminal command failure and suggest solutions. Focus on the most likely cause and actionable steps."
	promptClosing = "Please provide a concise explanation of the most likely cause and 1-3 specific commands or steps to resolve this error."
)

// PromptInput is everything that goes into an assistant prompt
type PromptInput struct {
	Command    string
	ExitCode   int
	WorkingDir string
	Env        system.Environment
	Output     string
}

// BuildPrompt renders the markdown prompt handed to the assistant
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString(promptIntro)
	b.WriteString("\n\n**Command Executed:**\n")
	writeBlock(&b, in.Command)

	fmt.Fprintf(&b, "\n**Exit Code:** `%d`\n", in.ExitCode)

	b.WriteString("\n**Working Directory:**\n")
	writeBlock(&b, in.WorkingDir)

	b.WriteString("\n**Environment:**\n")
	fmt.Fprintf(&b, "*   OS: %s (%s)\n", in.Env.OS, in.Env.OSVersion)
	fmt.Fprintf(&b, "*   Architecture: %s\n", in.Env.Arch)
	fmt.Fprintf(&b, "*   Shell: %s\n", in.Env.Shell)

	b.WriteString("\n**Terminal Output (may be summarized/truncated):**\n")
	writeBlock(&b, in.Output)

	b.WriteString("\n")
	b.WriteString(promptClosing)
	return b.String()
}

// writeBlock writes text as a fenced code block whose fence is longer than
// any backtick run inside text
func writeBlock(b *strings.Builder, text string) {
	fence := strings.Repeat("`", max(3, longestRun(text, '`')+1))
	b.WriteString(fence)
	b.WriteString("\n")
	b.WriteString(text)
	b.WriteString("\n")
	b.WriteString(fence)
	b.WriteString("\n")
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}
