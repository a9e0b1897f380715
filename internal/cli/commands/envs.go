package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli/output"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/jupyter"
)

// NewEnvsCommand creates the envs command.
func NewEnvsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "envs",
		Short: "List environments managed by nb-venv-kernels",
		Long: `List the virtual environments the companion nb-venv-kernels service
manages on the Jupyter server. Conda environments appear in the listing
but cannot be unregistered or removed through this tool.`,
		Example: `  # List managed environments
  kernelnav envs`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEnvs(cmd)
		},
	}
	return cmd
}

func runEnvs(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	list, err := cmdCtx.Client.Environments(cmd.Context())
	if err != nil {
		if errors.Is(err, jupyter.ErrVenvServiceUnavailable) {
			return fmt.Errorf("the nb-venv-kernels service is not installed on %s", cmdCtx.Cfg.ServerURL)
		}
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(list)
	}

	r.Header(1, fmt.Sprintf("Environments (%d total)", len(list.Environments)))
	if list.WorkspaceRoot != "" {
		r.KeyValue("Workspace root", list.WorkspaceRoot)
		r.Println()
	}
	rows := make([][]string, 0, len(list.Environments))
	for _, env := range list.Environments {
		name := env.Name
		if env.CustomName != "" && env.CustomName != env.Name {
			name = fmt.Sprintf("%s (%s)", env.Name, env.CustomName)
		}
		rows = append(rows, []string{name, env.Type, env.Path, yesNo(env.Exists), yesNo(env.HasKernel)})
	}
	output.RenderTable(r.Writer(), r.EffectiveMode(), []string{"name", "type", "path", "exists", "kernel"}, rows)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
