package cli

import (
	"fmt"

	"github.com/GriffinCanCode/liku/internal/providers/settings"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newPolicyCmd(build appBuilder) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Print the effective ignore policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := build(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			policy, err := a.Settings.Load(cmd.Context())
			if err != nil {
				return err
			}

			out, err := encodePolicy(policy, format)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "# settings: %s\n", a.Settings.Path())
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "output format: yaml, json, toml")
	return cmd
}

func encodePolicy(policy settings.Policy, format string) (string, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml", "yml":
		data, err = yaml.Marshal(policy)
	case "json":
		data, err = sonic.ConfigStd.MarshalIndent(policy, "", "  ")
		data = append(data, '\n')
	case "toml":
		data, err = toml.Marshal(policy)
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("encode policy: %w", err)
	}
	return string(data), nil
}
