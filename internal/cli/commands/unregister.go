package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewUnregisterCommand creates the unregister command.
func NewUnregisterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unregister <kernel display name>",
		Short: "Unregister a kernel's environment from nb-venv-kernels",
		Long: `Remove the environment behind the matching kernel from the
nb-venv-kernels registry. The environment directory and its files are
left untouched; only the kernel registration goes away. The environment
can be registered again at any time.

Only environments managed by nb-venv-kernels can be unregistered. Conda
environments are not managed and are rejected.`,
		Example: `  # Unregister the environment behind the matching kernel
  kernelnav unregister myenv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnregister(cmd, strings.Join(args, " "))
		},
	}
	return cmd
}

func runUnregister(cmd *cobra.Command, kernelName string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	prompter := &consolePrompter{r: cmdCtx.Renderer, in: cmd.InOrStdin()}
	seq := cmdCtx.newSequencer(kernelName, prompter, nil, nil)
	return seq.Unregister(cmd.Context())
}
