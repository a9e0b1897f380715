package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli/output"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli/testutil"
)

func TestConsolePrompterConfirm(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		assumeYes bool
		want      bool
	}{
		{name: "yes short", input: "y\n", want: true},
		{name: "yes long", input: "yes\n", want: true},
		{name: "yes uppercase", input: "Y\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty defaults to no", input: "\n", want: false},
		{name: "garbage defaults to no", input: "sure\n", want: false},
		{name: "assume yes skips input", input: "", assumeYes: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := testutil.NewTestRenderer(output.ModeMarkdown)
			p := &consolePrompter{
				r:         tr.Renderer,
				in:        strings.NewReader(tt.input),
				assumeYes: tt.assumeYes,
			}
			got, err := p.Confirm(context.Background(), "Delete it?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.assumeYes {
				assert.Empty(t, tr.Output())
			} else {
				assert.Contains(t, tr.Output(), "[y/N]")
				testutil.AssertNoANSI(t, tr.Output())
			}
		})
	}
}

func TestConsolePrompterConfirmReadError(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeMarkdown)
	p := &consolePrompter{
		r:  tr.Renderer,
		in: strings.NewReader(""),
	}
	_, err := p.Confirm(context.Background(), "Delete it?")
	assert.Error(t, err)
}
