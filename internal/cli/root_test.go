package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli/config"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli/testutil"
)

// fakeJupyter is a minimal Jupyter server covering the endpoints the
// commands touch. Mutations are recorded for assertions.
type fakeJupyter struct {
	srv *httptest.Server

	unregistered []string
	deleted      []string
	terminals    int
}

func newFakeJupyter(t *testing.T) *fakeJupyter {
	t.Helper()
	f := &fakeJupyter{}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeJupyter) handle(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/api/kernelspecs":
		writeBody(w, map[string]any{
			"default": "python3",
			"kernelspecs": map[string]any{
				"python3": map[string]any{
					"name": "python3",
					"spec": map[string]any{
						"argv":         []string{"/usr/bin/python3", "-m", "ipykernel_launcher"},
						"display_name": "Python 3 (ipykernel)",
						"language":     "python",
					},
				},
				"myenv": map[string]any{
					"name": "myenv",
					"spec": map[string]any{
						"argv":         []string{"/home/alice/proj/.venv/bin/python", "-m", "ipykernel_launcher"},
						"display_name": "Python (myenv)",
						"language":     "python",
					},
				},
			},
		})

	case strings.HasPrefix(path, "/api/kernel-path/"):
		name := strings.TrimPrefix(path, "/api/kernel-path/")
		switch name {
		case "Python (myenv)":
			writeBody(w, map[string]any{
				"kernel_name":     "myenv",
				"display_name":    name,
				"resource_dir":    "/home/alice/.local/share/jupyter/kernels/myenv",
				"executable_path": "/home/alice/proj/.venv/bin/python",
				"env_path":        "/home/alice/proj/.venv",
				"is_global_conda": false,
			})
		case "Python 3 (ipykernel)":
			writeBody(w, map[string]any{
				"kernel_name":     "python3",
				"display_name":    name,
				"resource_dir":    "/usr/local/share/jupyter/kernels/python3",
				"executable_path": "/usr/bin/python3",
				"env_path":        nil,
				"is_global_conda": false,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			writeBody(w, map[string]any{"error": "Kernel with display name '" + name + "' not found"})
		}

	case path == "/nb-venv-kernels/environments":
		writeBody(w, map[string]any{
			"workspace_root": "/home/alice",
			"environments": []map[string]any{
				{
					"name":       "myenv",
					"type":       "venv",
					"exists":     true,
					"has_kernel": true,
					"path":       "/home/alice/proj/.venv",
				},
			},
		})

	case path == "/nb-venv-kernels/unregister":
		var req struct {
			Path string `json:"path"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.unregistered = append(f.unregistered, req.Path)
		writeBody(w, map[string]any{"success": true, "message": "Unregistered myenv."})

	case strings.HasPrefix(path, "/api/contents/") && r.Method == http.MethodDelete:
		f.deleted = append(f.deleted, strings.TrimPrefix(path, "/api/contents/"))
		w.WriteHeader(http.StatusNoContent)

	case path == "/api/terminals" && r.Method == http.MethodPost:
		f.terminals++
		writeBody(w, map[string]any{"name": "1"})

	default:
		http.NotFound(w, r)
	}
}

func writeBody(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// runCommand executes the root command against a clean config state.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestKernelsCommandJSON(t *testing.T) {
	f := newFakeJupyter(t)

	out, _, err := runCommand(t, "kernels",
		"--server-url", f.srv.URL,
		"--server-root", "/home/alice",
		"--output", "json",
	)
	require.NoError(t, err)

	var result struct {
		Default string `json:"default"`
		Kernels []struct {
			Name         string `json:"name"`
			DisplayName  string `json:"display_name"`
			Kind         string `json:"kind"`
			EnvPath      string `json:"env_path"`
			RelativePath string `json:"relative_path"`
		} `json:"kernels"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "python3", result.Default)
	require.Len(t, result.Kernels, 2)

	byName := map[string]string{}
	for _, k := range result.Kernels {
		byName[k.Name] = k.Kind
	}
	assert.Equal(t, "local venv", byName["myenv"])
	assert.Equal(t, "system", byName["python3"])
}

func TestEnvsCommand(t *testing.T) {
	f := newFakeJupyter(t)

	out, _, err := runCommand(t, "envs",
		"--server-url", f.srv.URL,
		"--output", "markdown",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "myenv")
	assert.Contains(t, out, "/home/alice/proj/.venv")
	testutil.AssertNoANSI(t, out)
}

func TestRevealCommand(t *testing.T) {
	f := newFakeJupyter(t)

	out, _, err := runCommand(t, "reveal", "myenv",
		"--server-url", f.srv.URL,
		"--server-root", "/home/alice",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "/lab/tree/proj/.venv")
}

func TestRevealCommandExactDisplayName(t *testing.T) {
	f := newFakeJupyter(t)

	out, _, err := runCommand(t, "reveal", "Python (myenv)",
		"--server-url", f.srv.URL,
		"--server-root", "/home/alice",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "/lab/tree/proj/.venv")
}

func TestRevealCommandUnknownKernel(t *testing.T) {
	f := newFakeJupyter(t)

	_, _, err := runCommand(t, "reveal", "no-such-kernel",
		"--server-url", f.srv.URL,
		"--server-root", "/home/alice",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no kernel matching "no-such-kernel"`)
}

func TestRevealCommandOutsideRoot(t *testing.T) {
	f := newFakeJupyter(t)

	out, _, err := runCommand(t, "reveal", "myenv",
		"--server-url", f.srv.URL,
		"--server-root", "/srv/workspace",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "outside the workspace")
	assert.Contains(t, out, "/lab/tree/")
	assert.NotContains(t, out, "/lab/tree/proj")
}

func TestTerminalCommand(t *testing.T) {
	f := newFakeJupyter(t)

	out, _, err := runCommand(t, "terminal", "myenv",
		"--server-url", f.srv.URL,
		"--server-root", "/home/alice",
	)
	require.NoError(t, err)
	assert.Equal(t, 1, f.terminals)
	assert.Contains(t, out, "/terminals/1")
}

func TestUnregisterCommand(t *testing.T) {
	f := newFakeJupyter(t)

	out, _, err := runCommand(t, "unregister", "myenv",
		"--server-url", f.srv.URL,
		"--server-root", "/home/alice",
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"/home/alice/proj/.venv"}, f.unregistered)
	assert.Empty(t, f.deleted)
	assert.Contains(t, out, "nb-venv-kernels register /home/alice/proj/.venv")
}

func TestRemoveCommandAssumeYes(t *testing.T) {
	f := newFakeJupyter(t)

	out, _, err := runCommand(t, "remove", "myenv", "--yes",
		"--server-url", f.srv.URL,
		"--server-root", "/home/alice",
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"/home/alice/proj/.venv"}, f.unregistered)
	assert.Equal(t, []string{"proj/.venv"}, f.deleted)
	assert.Contains(t, out, "Deleted /home/alice/proj/.venv")
}

func TestRemoveCommandDeclined(t *testing.T) {
	f := newFakeJupyter(t)

	chdir(t, t.TempDir())
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader("n\n"))
	root.SetArgs([]string{"remove", "myenv",
		"--server-url", f.srv.URL,
		"--server-root", "/home/alice",
	})
	require.NoError(t, root.Execute())

	assert.Empty(t, f.unregistered)
	assert.Empty(t, f.deleted)
	assert.Contains(t, out.String(), "Aborted")
}

func TestDoctorCommand(t *testing.T) {
	f := newFakeJupyter(t)

	out, _, err := runCommand(t, "doctor",
		"--server-url", f.srv.URL,
		"--output", "json",
	)
	require.NoError(t, err)

	var report struct {
		ServerReachable bool   `json:"server_reachable"`
		KernelCount     int    `json:"kernel_count"`
		KernelPathAPI   string `json:"kernel_path_api"`
		VenvService     string `json:"venv_service"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.ServerReachable)
	assert.Equal(t, 2, report.KernelCount)
	assert.Equal(t, "available", report.KernelPathAPI)
	assert.Equal(t, "available", report.VenvService)
}

func TestDoctorCommandUnreachable(t *testing.T) {
	out, _, err := runCommand(t, "doctor",
		"--server-url", "http://127.0.0.1:1",
		"--output", "json",
	)
	require.Error(t, err)

	// The report is still emitted so scripts can read what failed.
	var report struct {
		ServerReachable bool `json:"server_reachable"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.ServerReachable)
}

// chdir is a Go <1.24 stand-in for t.Chdir.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
