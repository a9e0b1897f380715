package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewRevealCommand creates the reveal command.
func NewRevealCommand() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "reveal <kernel display name>",
		Short: "Reveal a kernel's environment in the file browser",
		Long: `Reveal the environment directory behind a kernel in the Jupyter file
browser. Substring matching applies: "myenv" matches the kernel whose
display name is "Python (myenv)".

Environments outside the workspace root cannot be browsed; the file
browser falls back to the workspace root in that case. Global conda
kernels have no per-project directory, so reveal only reports where
the installation lives.`,
		Example: `  # Print the file-browser URL for the matching kernel
  kernelnav reveal myenv

  # Also open it in the default browser
  kernelnav reveal myenv --open`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReveal(cmd, strings.Join(args, " "), open)
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "open the file browser URL in the default web browser")
	return cmd
}

func runReveal(cmd *cobra.Command, kernelName string, open bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	display, err := cmdCtx.resolveKernel(cmd.Context(), kernelName)
	if err != nil {
		return err
	}
	prompter := &consolePrompter{r: cmdCtx.Renderer, in: cmd.InOrStdin()}
	browser := &treeNavigator{client: cmdCtx.Client, r: cmdCtx.Renderer, open: open}
	seq := cmdCtx.newSequencer(display, prompter, browser, nil)
	return seq.Reveal(cmd.Context())
}
