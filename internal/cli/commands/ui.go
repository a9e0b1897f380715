package commands

import (
	"github.com/spf13/cobra"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/tui"
)

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse kernels interactively",
		Long: `Open an interactive launcher that lists the server's kernels as cards.
Selecting a kernel opens the same context menu the JupyterLab extension
adds: reveal in file browser, open terminal, unregister, and remove.

Unregister and remove are hidden when the server lacks the
nb-venv-kernels service.`,
		Example: `  # Browse kernels
  kernelnav ui

  # Open resulting URLs in the default browser
  kernelnav ui --open`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, open)
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "open file-browser and terminal URLs in the default web browser")
	return cmd
}

func runUI(cmd *cobra.Command, open bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	uiCfg := cmdCtx.Cfg.GetUIConfig()
	return tui.Run(tui.Options{
		Client:          cmdCtx.Client,
		ServerRoot:      cmdCtx.Cfg.ServerRoot,
		RefreshInterval: uiCfg.RefreshInterval,
		OpenURLs:        open,
		Logger:          cmdCtx.Logger,
	})
}
