package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/navigate"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "remove <kernel display name>",
		Short: "Unregister and delete a kernel's local environment",
		Long: `Unregister the environment behind the matching kernel and delete its
directory from disk. This is irreversible and only applies to local
.venv environments inside the workspace; shared and conda environments
are refused before any confirmation appears.

The environment is unregistered first. If the deletion then fails, the
unregistration is kept and the error says exactly what happened.`,
		Example: `  # Remove after an interactive confirmation
  kernelnav remove myenv

  # Skip the confirmation (scripts)
  kernelnav remove myenv --yes`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, strings.Join(args, " "), assumeYes)
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func runRemove(cmd *cobra.Command, kernelName string, assumeYes bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	prompter := &consolePrompter{r: cmdCtx.Renderer, in: cmd.InOrStdin(), assumeYes: assumeYes}
	seq := cmdCtx.newSequencer(kernelName, prompter, nil, nil)

	res, err := seq.Remove(cmd.Context())
	if err != nil {
		return err
	}
	if res.State == navigate.RemoveIdle {
		cmdCtx.Renderer.Info("Aborted, nothing was changed.")
	}
	return nil
}
