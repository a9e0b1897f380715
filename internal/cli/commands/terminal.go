package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewTerminalCommand creates the terminal command.
func NewTerminalCommand() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "terminal <kernel display name>",
		Short: "Open a Jupyter terminal in a kernel's environment directory",
		Long: `Create a Jupyter terminal session whose working directory is the
environment directory behind the matching kernel. When the environment
sits outside the workspace root the terminal starts at the workspace
root instead.`,
		Example: `  # Create a terminal session and print its URL
  kernelnav terminal myenv

  # Also open the terminal in the default browser
  kernelnav terminal myenv --open`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminal(cmd, strings.Join(args, " "), open)
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "open the terminal URL in the default web browser")
	return cmd
}

func runTerminal(cmd *cobra.Command, kernelName string, open bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	display, err := cmdCtx.resolveKernel(cmd.Context(), kernelName)
	if err != nil {
		return err
	}
	prompter := &consolePrompter{r: cmdCtx.Renderer, in: cmd.InOrStdin()}
	opener := &jupyterTerminalOpener{client: cmdCtx.Client, r: cmdCtx.Renderer, open: open}
	seq := cmdCtx.newSequencer(display, prompter, nil, opener)
	return seq.OpenTerminal(cmd.Context())
}
