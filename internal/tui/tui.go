// Package tui is a terminal launcher for kernel navigation actions. It
// lists the server's kernels as cards and offers the same context menu
// the JupyterLab launcher extension adds: reveal in file browser, open
// terminal, unregister, and remove.
package tui

import (
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/jupyter"
)

// Options wires the launcher.
type Options struct {
	Client *jupyter.Client
	// ServerRoot is the workspace root on the Jupyter server.
	ServerRoot string
	// RefreshInterval reloads the kernel list periodically when positive.
	RefreshInterval time.Duration
	// OpenURLs opens file-browser and terminal URLs in the OS browser.
	OpenURLs bool
	Logger   *slog.Logger
}

// Run starts the launcher and blocks until the user quits.
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := tea.NewProgram(newModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
