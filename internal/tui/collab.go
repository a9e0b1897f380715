package tui

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/jupyter"
)

// collectPrompter gathers the informational messages an action sequence
// emits so they can be replayed in the status bar once the sequence
// finishes. Confirm always answers yes: the TUI asks its own confirmation
// question before the mutating half of a workflow ever runs.
type collectPrompter struct {
	notes []string
}

func (p *collectPrompter) Confirm(context.Context, string) (bool, error) { return true, nil }

func (p *collectPrompter) Info(message string) {
	p.notes = append(p.notes, message)
}

func (p *collectPrompter) Error(message string) {
	p.notes = append(p.notes, message)
}

// urlBrowser fulfils the file-browser capability by resolving the tree
// URL and, optionally, opening it in the OS browser.
type urlBrowser struct {
	client *jupyter.Client
	notes  *[]string
	open   bool
}

func (b *urlBrowser) Navigate(_ context.Context, relPath string) error {
	url := b.client.TreeURL(relPath)
	*b.notes = append(*b.notes, "File browser: "+url)
	if b.open {
		openURL(url)
	}
	return nil
}

// terminalOpener creates a Jupyter terminal session in the given
// directory and surfaces its URL.
type terminalOpener struct {
	client *jupyter.Client
	notes  *[]string
	open   bool
}

func (o *terminalOpener) OpenAt(ctx context.Context, relPath string) error {
	term, err := o.client.CreateTerminal(ctx, relPath)
	if err != nil {
		return err
	}
	url := o.client.TerminalURL(term.Name)
	*o.notes = append(*o.notes, "Terminal: "+url)
	if o.open {
		openURL(url)
	}
	return nil
}

// specRefresher re-reads the kernelspec listing after mutations.
type specRefresher struct {
	client *jupyter.Client
}

func (r *specRefresher) Refresh(ctx context.Context) error {
	_, err := r.client.KernelSpecs(ctx)
	return err
}

// openURL opens url in the default browser, best-effort.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
