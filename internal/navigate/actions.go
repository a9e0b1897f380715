package navigate

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/jupyter"
)

// Service is the slice of the Jupyter REST client the sequencer uses.
type Service interface {
	KernelPath(ctx context.Context, displayName string) (*jupyter.KernelPathInfo, error)
	Environments(ctx context.Context) (*jupyter.EnvironmentList, error)
	Unregister(ctx context.Context, path string) (string, error)
	DeleteContents(ctx context.Context, relPath string) error
}

// FileBrowser navigates the host file browser to a workspace-relative path.
type FileBrowser interface {
	Navigate(ctx context.Context, relPath string) error
}

// TerminalOpener opens a terminal with a workspace-relative working
// directory. An absent opener is tolerated silently.
type TerminalOpener interface {
	OpenAt(ctx context.Context, relPath string) error
}

// Prompter presents modal messages and awaits confirmation decisions.
type Prompter interface {
	Confirm(ctx context.Context, message string) (bool, error)
	Info(message string)
	Error(message string)
}

// Refresher re-reads the displayed kernel list after a mutation. An absent
// refresher, like a failing one, is tolerated silently.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RemoveState tracks the remove-environment workflow so the
// unregister-then-delete ordering and its partial-failure reporting stay
// unambiguous.
type RemoveState int

const (
	RemoveIdle RemoveState = iota
	RemoveConfirming
	RemoveInFlight
	RemoveDone
	RemoveFailed
)

func (s RemoveState) String() string {
	switch s {
	case RemoveConfirming:
		return "confirming"
	case RemoveInFlight:
		return "in-flight"
	case RemoveDone:
		return "done"
	case RemoveFailed:
		return "failed"
	default:
		return "idle"
	}
}

// RemovePlan is the resolved, validated input to the remove workflow,
// computed before the user is asked to confirm.
type RemovePlan struct {
	RunID string
	Env   jupyter.Environment
}

// RemoveResult reports how far the remove workflow got. Unregistered
// without Deleted is the explicitly surfaced partial-failure state: the
// kernel is gone from the registry but the directory is intact.
type RemoveResult struct {
	State        RemoveState
	Path         string
	Unregistered bool
	Deleted      bool
}

// Config wires a Sequencer. Service and Session are required; the
// collaborators are optional capabilities.
type Config struct {
	Service    Service
	Session    *Session
	ServerRoot string
	Browser    FileBrowser
	Terminal   TerminalOpener
	Prompter   Prompter
	Refresher  Refresher
	Logger     *slog.Logger
}

// Sequencer runs the four launcher context-menu actions as short linear
// workflows: resolve selection, call one or two remote operations, report
// the result, and refresh the kernel list after mutations. Repeating an
// action after a failure retries the whole sequence from scratch; no
// partial state is tracked across invocations.
type Sequencer struct {
	svc      Service
	session  *Session
	root     string
	browser  FileBrowser
	terminal TerminalOpener
	prompter Prompter
	refresh  Refresher
	logger   *slog.Logger
}

// NewSequencer creates a Sequencer from cfg.
func NewSequencer(cfg Config) *Sequencer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	prompter := cfg.Prompter
	if prompter == nil {
		prompter = noopPrompter{}
	}
	return &Sequencer{
		svc:      cfg.Service,
		session:  cfg.Session,
		root:     cfg.ServerRoot,
		browser:  cfg.Browser,
		terminal: cfg.Terminal,
		prompter: prompter,
		refresh:  cfg.Refresher,
		logger:   logger,
	}
}

// Reveal navigates the file browser to the selected kernel's environment
// directory, falling back to the workspace root when the directory lies
// outside it. Globally installed conda kernels get an informational
// message instead of a navigation.
func (s *Sequencer) Reveal(ctx context.Context) error {
	runID := shortRunID()
	name, err := s.session.Selected()
	if err != nil {
		return err
	}
	s.logger.Info("reveal requested", "run_id", runID, "kernel", name)

	info, err := s.svc.KernelPath(ctx, name)
	if err != nil {
		return err
	}
	if info.IsGlobalConda {
		s.prompter.Info(fmt.Sprintf("%s belongs to a global conda installation and has no directory inside the workspace.", name))
		return nil
	}

	dir := kernelDir(info)
	rel, ok := ToRelative(dir, s.root)
	if !ok {
		s.prompter.Info(fmt.Sprintf("%s lies outside the workspace; opening the workspace root instead.", dir))
		rel = ""
	}
	if s.browser == nil {
		return fmt.Errorf("no file browser available")
	}
	if err := s.browser.Navigate(ctx, rel); err != nil {
		return fmt.Errorf("navigating file browser: %w", err)
	}
	s.logger.Info("reveal done", "run_id", runID, "path", rel)
	return nil
}

// OpenTerminal opens a terminal whose working directory is the selected
// kernel's environment directory, with the same root fallback as Reveal.
func (s *Sequencer) OpenTerminal(ctx context.Context) error {
	runID := shortRunID()
	name, err := s.session.Selected()
	if err != nil {
		return err
	}
	s.logger.Info("terminal requested", "run_id", runID, "kernel", name)

	info, err := s.svc.KernelPath(ctx, name)
	if err != nil {
		return err
	}
	if info.IsGlobalConda {
		s.prompter.Info(fmt.Sprintf("%s belongs to a global conda installation; opening a terminal at the workspace root.", name))
	}

	rel := ""
	if !info.IsGlobalConda {
		if r, ok := ToRelative(kernelDir(info), s.root); ok {
			rel = r
		}
	}
	if s.terminal == nil {
		s.logger.Debug("no terminal capability, skipping", "run_id", runID)
		return nil
	}
	if err := s.terminal.OpenAt(ctx, rel); err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	s.logger.Info("terminal opened", "run_id", runID, "path", rel)
	return nil
}

// Unregister removes the selected kernel's environment from the companion
// service registry. The directory stays on disk; the confirmation message
// names the command that registers it again.
func (s *Sequencer) Unregister(ctx context.Context) error {
	runID := shortRunID()
	name, err := s.session.Selected()
	if err != nil {
		return err
	}
	s.logger.Info("unregister requested", "run_id", runID, "kernel", name)

	list, err := s.svc.Environments(ctx)
	if err != nil {
		return err
	}
	env, err := FindEnvironment(name, list.Environments)
	if err != nil {
		return err
	}

	msg, err := s.svc.Unregister(ctx, env.Path)
	if err != nil {
		return err
	}
	s.refreshKernelList(ctx)

	if msg == "" {
		msg = fmt.Sprintf("Unregistered %q.", env.Name)
	}
	s.prompter.Info(fmt.Sprintf("%s Register it again with: nb-venv-kernels register %s", msg, env.Path))
	s.logger.Info("unregister done", "run_id", runID, "path", env.Path)
	return nil
}

// PrepareRemove resolves and validates the remove workflow up to the
// confirmation step. Non-local environments are refused here, before any
// confirmation dialog appears.
func (s *Sequencer) PrepareRemove(ctx context.Context) (*RemovePlan, error) {
	name, err := s.session.Selected()
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Environments(ctx)
	if err != nil {
		return nil, err
	}
	env, err := FindEnvironment(name, list.Environments)
	if err != nil {
		return nil, err
	}
	if !IsLocalEnv(env.Path) {
		return nil, fmt.Errorf("%w: %s", ErrNotLocal, env.Path)
	}
	return &RemovePlan{RunID: shortRunID(), Env: *env}, nil
}

// ExecuteRemove runs the mutating half of the remove workflow: unregister
// first, then delete through the contents API. A failed unregister aborts
// before the filesystem is touched. Mapping the environment path into the
// workspace is strict here: an unmappable path is a hard error, deleting
// outside the workspace is never attempted.
func (s *Sequencer) ExecuteRemove(ctx context.Context, plan *RemovePlan) (*RemoveResult, error) {
	res := &RemoveResult{State: RemoveInFlight, Path: plan.Env.Path}
	s.logger.Info("remove started", "run_id", plan.RunID, "env", plan.Env.Name, "path", plan.Env.Path)

	if _, err := s.svc.Unregister(ctx, plan.Env.Path); err != nil {
		res.State = RemoveFailed
		return res, fmt.Errorf("unregistering %q: %w", plan.Env.Name, err)
	}
	res.Unregistered = true
	s.refreshKernelList(ctx)

	rel, ok := ToRelative(plan.Env.Path, s.root)
	if !ok {
		res.State = RemoveFailed
		return res, fmt.Errorf("unregistered %q but left %s in place: %w", plan.Env.Name, plan.Env.Path, ErrOutsideRoot)
	}
	if err := s.svc.DeleteContents(ctx, rel); err != nil {
		res.State = RemoveFailed
		return res, fmt.Errorf("unregistered %q but failed to delete %s: %w", plan.Env.Name, plan.Env.Path, err)
	}

	res.Deleted = true
	res.State = RemoveDone
	s.logger.Info("remove done", "run_id", plan.RunID, "path", rel)
	return res, nil
}

// Remove runs the full remove workflow including the irreversible-action
// confirmation. A declined confirmation returns to the idle state without
// touching anything.
func (s *Sequencer) Remove(ctx context.Context) (*RemoveResult, error) {
	plan, err := s.PrepareRemove(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.prompter.Confirm(ctx, fmt.Sprintf("Permanently delete %s? This cannot be undone.", plan.Env.Path))
	if err != nil {
		return nil, err
	}
	if !ok {
		return &RemoveResult{State: RemoveIdle, Path: plan.Env.Path}, nil
	}

	res, err := s.ExecuteRemove(ctx, plan)
	if err != nil {
		s.prompter.Error(err.Error())
		return res, err
	}
	s.prompter.Info(fmt.Sprintf("Deleted %s and unregistered %q.", plan.Env.Path, plan.Env.Name))
	return res, nil
}

// refreshKernelList is best-effort: a failed refresh is logged and
// swallowed so it never masks the mutation's own outcome.
func (s *Sequencer) refreshKernelList(ctx context.Context) {
	if s.refresh == nil {
		return
	}
	if err := s.refresh.Refresh(ctx); err != nil {
		s.logger.Debug("kernel list refresh failed", "error", err)
	}
}

// kernelDir is the directory an action navigates to: the environment root
// when known, otherwise the kernelspec's resource directory.
func kernelDir(info *jupyter.KernelPathInfo) string {
	if info.EnvPath != "" {
		return info.EnvPath
	}
	return info.ResourceDir
}

func shortRunID() string {
	return uuid.NewString()[:8]
}

type noopPrompter struct{}

func (noopPrompter) Confirm(context.Context, string) (bool, error) { return false, nil }
func (noopPrompter) Info(string)                                   {}
func (noopPrompter) Error(string)                                  {}
