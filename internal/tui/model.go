package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/jupyter"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/navigate"
)

type view int

const (
	viewList view = iota
	viewMenu
	viewConfirm
)

// menuAction is one entry of the kernel context menu.
type menuAction int

const (
	actionReveal menuAction = iota
	actionTerminal
	actionUnregister
	actionRemove
)

func (a menuAction) String() string {
	switch a {
	case actionReveal:
		return "Reveal in file browser"
	case actionTerminal:
		return "Open terminal here"
	case actionUnregister:
		return "Unregister environment"
	case actionRemove:
		return "Remove environment"
	default:
		return "unknown"
	}
}

// kernelItem is one launcher card.
type kernelItem struct {
	name     string
	display  string
	kind     string
	location string
}

func (i kernelItem) Title() string { return i.display }

func (i kernelItem) Description() string {
	if i.location == "" {
		return i.kind
	}
	return i.kind + " · " + i.location
}

func (i kernelItem) FilterValue() string { return i.display }

type kernelsMsg struct {
	items []list.Item
	err   error
}

type capabilityMsg struct {
	state jupyter.Capability
}

type actionDoneMsg struct {
	action menuAction
	notes  []string
	err    error
}

type planMsg struct {
	plan *navigate.RemovePlan
	err  error
}

type removeDoneMsg struct {
	res   *navigate.RemoveResult
	notes []string
	err   error
}

type refreshTickMsg time.Time

type model struct {
	opts    Options
	session *navigate.Session
	keys    keyMap
	styles  styles

	list    list.Model
	spinner spinner.Model
	help    help.Model

	view       view
	menu       []menuAction
	menuIndex  int
	plan       *navigate.RemovePlan
	capability jupyter.Capability
	busy       bool
	status     string
	statusErr  bool
	width      int
	height     int
}

func newModel(opts Options) model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Kernels"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return model{
		opts:    opts,
		session: navigate.NewSession(),
		keys:    newKeyMap(),
		styles:  newStyles(),
		list:    l,
		spinner: sp,
		help:    help.New(),
		busy:    true,
		status:  "Loading kernels…",
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadKernels, m.probeCapability, m.spinner.Tick}
	if m.opts.RefreshInterval > 0 {
		cmds = append(cmds, m.refreshTick())
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-3)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case kernelsMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%d kernels", len(msg.items)), false)
		return m, m.list.SetItems(msg.items)

	case capabilityMsg:
		m.capability = msg.state
		return m, nil

	case actionDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
		} else if len(msg.notes) > 0 {
			m.setStatus(strings.Join(msg.notes, "  "), false)
		} else {
			m.setStatus("Done", false)
		}
		if msg.action == actionUnregister && msg.err == nil {
			m.busy = true
			return m, tea.Batch(m.loadKernels, m.spinner.Tick)
		}
		return m, nil

	case planMsg:
		m.busy = false
		if msg.err != nil {
			m.view = viewList
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.plan = msg.plan
		m.view = viewConfirm
		return m, nil

	case removeDoneMsg:
		m.view = viewList
		m.plan = nil
		if msg.err != nil {
			m.busy = false
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.setStatus("Removed "+msg.res.Path, false)
		m.busy = true
		return m, tea.Batch(m.loadKernels, m.spinner.Tick)

	case refreshTickMsg:
		cmds := []tea.Cmd{m.refreshTick()}
		if m.view == viewList && !m.busy {
			cmds = append(cmds, m.loadKernels)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && !m.filtering() {
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}

	switch m.view {
	case viewMenu:
		return m.handleMenuKey(msg)
	case viewConfirm:
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Select) && !m.filtering():
		item, ok := m.list.SelectedItem().(kernelItem)
		if !ok {
			return m, nil
		}
		m.session.Select(item.display)
		m.menu = m.menuActions()
		m.menuIndex = 0
		m.view = viewMenu
		return m, nil
	case key.Matches(msg, m.keys.Refresh) && !m.filtering():
		m.busy = true
		m.setStatus("Refreshing…", false)
		return m, tea.Batch(m.loadKernels, m.probeCapability, m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.view = viewList
	case key.Matches(msg, m.keys.Up):
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuIndex < len(m.menu)-1 {
			m.menuIndex++
		}
	case key.Matches(msg, m.keys.Select):
		action := m.menu[m.menuIndex]
		m.view = viewList
		m.busy = true
		m.setStatus(action.String()+"…", false)
		if action == actionRemove {
			return m, tea.Batch(m.prepareRemove, m.spinner.Tick)
		}
		return m, tea.Batch(m.runAction(action), m.spinner.Tick)
	}
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.view = viewList
		m.busy = true
		m.setStatus("Removing…", false)
		return m, tea.Batch(m.executeRemove(m.plan), m.spinner.Tick)
	case "n", "N", "esc":
		m.view = viewList
		m.plan = nil
		m.setStatus("Aborted, nothing was changed.", false)
	}
	return m, nil
}

func (m model) View() string {
	switch m.view {
	case viewMenu:
		return m.menuView()
	case viewConfirm:
		return m.confirmView()
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) menuView() string {
	item, _ := m.list.SelectedItem().(kernelItem)
	var b strings.Builder
	b.WriteString(m.styles.MenuTitle.Render(item.display))
	b.WriteString("\n")
	for i, action := range m.menu {
		line := "  " + action.String()
		if i == m.menuIndex {
			line = m.styles.MenuCursor.Render("> " + action.String())
		} else {
			line = m.styles.MenuItem.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	box := m.styles.Menu.Render(b.String())
	return box + "\n" + m.statusView()
}

func (m model) confirmView() string {
	msg := fmt.Sprintf("Permanently delete %s?\nThis cannot be undone.\n\n%s",
		m.plan.Env.Path,
		m.styles.Danger.Render("y to delete, n to abort"))
	return m.styles.Confirm.Render(msg)
}

func (m model) statusView() string {
	status := m.status
	if m.busy {
		status = m.spinner.View() + status
	}
	if m.statusErr {
		return m.styles.StatusErr.Render(status)
	}
	return m.styles.Status.Render(status)
}

func (m *model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m model) filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// menuActions builds the context menu for the selected kernel. The
// mutating actions are hidden when the companion service is known to be
// absent; an unknown capability keeps them visible.
func (m model) menuActions() []menuAction {
	actions := []menuAction{actionReveal, actionTerminal}
	if m.capability != jupyter.CapabilityUnavailable {
		actions = append(actions, actionUnregister, actionRemove)
	}
	return actions
}

func (m model) newSequencer(p navigate.Prompter, notes *[]string) *navigate.Sequencer {
	return navigate.NewSequencer(navigate.Config{
		Service:    m.opts.Client,
		Session:    m.session,
		ServerRoot: m.opts.ServerRoot,
		Browser:    &urlBrowser{client: m.opts.Client, notes: notes, open: m.opts.OpenURLs},
		Terminal:   &terminalOpener{client: m.opts.Client, notes: notes, open: m.opts.OpenURLs},
		Prompter:   p,
		Refresher:  &specRefresher{client: m.opts.Client},
		Logger:     m.opts.Logger,
	})
}

func (m model) loadKernels() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), jupyter.DefaultTimeout)
	defer cancel()

	specs, err := m.opts.Client.KernelSpecs(ctx)
	if err != nil {
		return kernelsMsg{err: err}
	}

	names := make([]string, 0, len(specs.KernelSpecs))
	for name := range specs.KernelSpecs {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]list.Item, len(names))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for i, name := range names {
		i := i
		spec := specs.KernelSpecs[name]
		eg.Go(func() error {
			item := kernelItem{name: spec.Name, display: spec.Spec.DisplayName}
			if info, err := m.opts.Client.KernelPath(egctx, spec.Spec.DisplayName); err == nil {
				item.kind = navigate.EnvKind(info.EnvPath, info.IsGlobalConda)
				dir := info.EnvPath
				if dir == "" {
					dir = info.ResourceDir
				}
				if rel, ok := navigate.ToRelative(dir, m.opts.ServerRoot); ok && rel != "" {
					item.location = rel
				}
			}
			items[i] = item
			return nil
		})
	}
	_ = eg.Wait()
	return kernelsMsg{items: items}
}

func (m model) probeCapability() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), jupyter.DefaultTimeout)
	defer cancel()
	_, _ = m.opts.Client.Environments(ctx)
	return capabilityMsg{state: m.opts.Client.VenvCapability()}
}

func (m model) runAction(action menuAction) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), jupyter.DefaultTimeout)
		defer cancel()

		p := &collectPrompter{}
		seq := m.newSequencer(p, &p.notes)

		var err error
		switch action {
		case actionReveal:
			err = seq.Reveal(ctx)
		case actionTerminal:
			err = seq.OpenTerminal(ctx)
		case actionUnregister:
			err = seq.Unregister(ctx)
		}
		return actionDoneMsg{action: action, notes: p.notes, err: err}
	}
}

func (m model) prepareRemove() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), jupyter.DefaultTimeout)
	defer cancel()

	p := &collectPrompter{}
	plan, err := m.newSequencer(p, &p.notes).PrepareRemove(ctx)
	return planMsg{plan: plan, err: err}
}

func (m model) executeRemove(plan *navigate.RemovePlan) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), jupyter.DefaultTimeout)
		defer cancel()

		p := &collectPrompter{}
		res, err := m.newSequencer(p, &p.notes).ExecuteRemove(ctx, plan)
		return removeDoneMsg{res: res, notes: p.notes, err: err}
	}
}

func (m model) refreshTick() tea.Cmd {
	return tea.Tick(m.opts.RefreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}
