package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli/config"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli/output"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/jupyter"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/navigate"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Client   *jupyter.Client
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a connected REST client.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	client, err := jupyter.New(jupyter.Config{
		BaseURL: cfg.ServerURL,
		Token:   cfg.Token,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Client:   client,
		Renderer: r,
	}, nil
}

// getConfig returns the current configuration, falling back to defaults
// when none was loaded (e.g. in tests invoking a command directly).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		ServerURL:  config.DefaultServerURL,
		ServerRoot: config.DefaultServerRoot,
		Timeout:    config.DefaultTimeout,
	}
}

// resolveKernel maps a command-line kernel argument onto a display name
// the server knows. An exact display name passes through; otherwise the
// same containment rule the environment matcher uses applies in reverse:
// the first display name containing the argument wins, in sorted kernel
// order. "myenv" therefore resolves to "Python (myenv)".
func (c *CommandContext) resolveKernel(ctx context.Context, arg string) (string, error) {
	list, err := c.Client.KernelSpecs(ctx)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(list.KernelSpecs))
	for name := range list.KernelSpecs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if list.KernelSpecs[name].Spec.DisplayName == arg {
			return arg, nil
		}
	}
	for _, name := range names {
		if display := list.KernelSpecs[name].Spec.DisplayName; strings.Contains(display, arg) {
			return display, nil
		}
	}
	return "", fmt.Errorf("no kernel matching %q", arg)
}

// newSequencer wires a Sequencer for a single command invocation. The
// kernel display name from the command line plays the role the
// right-clicked launcher card plays in the IDE.
func (c *CommandContext) newSequencer(kernelName string, prompter navigate.Prompter, browser navigate.FileBrowser, terminal navigate.TerminalOpener) *navigate.Sequencer {
	session := navigate.NewSession()
	if kernelName != "" {
		session.Select(kernelName)
	}
	return navigate.NewSequencer(navigate.Config{
		Service:    c.Client,
		Session:    session,
		ServerRoot: c.Cfg.ServerRoot,
		Browser:    browser,
		Terminal:   terminal,
		Prompter:   prompter,
		Refresher:  &kernelspecRefresher{client: c.Client},
		Logger:     c.Logger,
	})
}
