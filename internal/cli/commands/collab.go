package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli/output"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/jupyter"
)

// consolePrompter adapts the sequencer's modal dialogs to the terminal.
// With assumeYes set, confirmations are answered without asking; that is
// the only way to run destructive commands non-interactively.
type consolePrompter struct {
	r         *output.Renderer
	in        io.Reader
	assumeYes bool
}

func (p *consolePrompter) Confirm(_ context.Context, message string) (bool, error) {
	if p.assumeYes {
		return true, nil
	}
	p.r.Printf("%s [y/N]: ", message)
	reader := bufio.NewReader(p.in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (p *consolePrompter) Info(message string) {
	p.r.Info(message)
}

func (p *consolePrompter) Error(message string) {
	p.r.Error(message)
}

// treeNavigator realizes the file-browser collaborator over JupyterLab's
// /lab/tree URLs: it prints the URL and optionally opens it in the
// default browser.
type treeNavigator struct {
	client *jupyter.Client
	r      *output.Renderer
	open   bool
}

func (n *treeNavigator) Navigate(_ context.Context, relPath string) error {
	url := n.client.TreeURL(relPath)
	n.r.KeyValue("File browser", url)
	if n.open {
		openBrowser(url)
	}
	return nil
}

// jupyterTerminalOpener realizes the terminal collaborator over the
// Jupyter terminals API.
type jupyterTerminalOpener struct {
	client *jupyter.Client
	r      *output.Renderer
	open   bool
}

func (o *jupyterTerminalOpener) OpenAt(ctx context.Context, relPath string) error {
	term, err := o.client.CreateTerminal(ctx, relPath)
	if err != nil {
		return err
	}
	url := o.client.TerminalURL(term.Name)
	o.r.KeyValue("Terminal", url)
	if o.open {
		openBrowser(url)
	}
	return nil
}

// kernelspecRefresher re-reads the kernel list after a mutation. For a
// REST client there is no widget to repaint; re-fetching validates that
// the server still answers and warms any caches.
type kernelspecRefresher struct {
	client *jupyter.Client
}

func (k *kernelspecRefresher) Refresh(ctx context.Context) error {
	_, err := k.client.KernelSpecs(ctx)
	return err
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
