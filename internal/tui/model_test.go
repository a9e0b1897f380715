package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/jupyter"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/navigate"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	client, err := jupyter.New(jupyter.Config{BaseURL: "http://localhost:8888"})
	require.NoError(t, err)
	m := newModel(Options{Client: client, ServerRoot: "/home/alice"})
	m.busy = false
	return m
}

func TestMenuActionsCapability(t *testing.T) {
	tests := []struct {
		name       string
		capability jupyter.Capability
		want       []menuAction
	}{
		{
			name:       "unknown shows everything",
			capability: jupyter.CapabilityUnknown,
			want:       []menuAction{actionReveal, actionTerminal, actionUnregister, actionRemove},
		},
		{
			name:       "available shows everything",
			capability: jupyter.CapabilityAvailable,
			want:       []menuAction{actionReveal, actionTerminal, actionUnregister, actionRemove},
		},
		{
			name:       "unavailable hides mutating actions",
			capability: jupyter.CapabilityUnavailable,
			want:       []menuAction{actionReveal, actionTerminal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.capability = tt.capability
			assert.Equal(t, tt.want, m.menuActions())
		})
	}
}

func TestKernelItemDescription(t *testing.T) {
	item := kernelItem{display: "Python (myenv)", kind: "local venv", location: "proj/.venv"}
	assert.Equal(t, "local venv · proj/.venv", item.Description())
	assert.Equal(t, "Python (myenv)", item.Title())

	system := kernelItem{display: "Python 3", kind: "system"}
	assert.Equal(t, "system", system.Description())
}

func TestUpdateKernelsMsgError(t *testing.T) {
	m := newTestModel(t)
	m.busy = true

	updated, _ := m.Update(kernelsMsg{err: assert.AnError})
	got := updated.(model)
	assert.False(t, got.busy)
	assert.True(t, got.statusErr)
	assert.Contains(t, got.status, assert.AnError.Error())
}

func TestUpdateKernelsMsgPopulatesList(t *testing.T) {
	m := newTestModel(t)
	items := []list.Item{
		kernelItem{name: "myenv", display: "Python (myenv)", kind: "local venv"},
	}

	updated, _ := m.Update(kernelsMsg{items: items})
	got := updated.(model)
	assert.False(t, got.busy)
	assert.Len(t, got.list.Items(), 1)
	assert.Contains(t, got.status, "1 kernels")
}

func TestMenuOpensOnSelect(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(kernelsMsg{items: []list.Item{
		kernelItem{name: "myenv", display: "Python (myenv)", kind: "local venv"},
	}})
	m = updated.(model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)

	assert.Equal(t, viewMenu, m.view)
	name, err := m.session.Selected()
	require.NoError(t, err)
	assert.Equal(t, "Python (myenv)", name)
}

func TestConfirmDeclineKeepsPlanUntouched(t *testing.T) {
	m := newTestModel(t)
	m.view = viewConfirm
	m.plan = &navigate.RemovePlan{}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	got := updated.(model)
	assert.Equal(t, viewList, got.view)
	assert.Nil(t, got.plan)
	assert.Contains(t, got.status, "Aborted")
}

func TestRemoveDoneReloadsKernels(t *testing.T) {
	m := newTestModel(t)
	m.view = viewConfirm

	updated, cmd := m.Update(removeDoneMsg{res: &navigate.RemoveResult{
		State:        navigate.RemoveDone,
		Path:         "/home/alice/proj/.venv",
		Unregistered: true,
		Deleted:      true,
	}})
	got := updated.(model)
	assert.Equal(t, viewList, got.view)
	assert.True(t, got.busy)
	assert.Contains(t, got.status, "Removed /home/alice/proj/.venv")
	assert.NotNil(t, cmd)
}
