package navigate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandHome(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		fromPath string
		want     string
	}{
		{
			name:     "bare tilde with linux home",
			root:     "~",
			fromPath: "/home/alice/ws",
			want:     "/home/alice",
		},
		{
			name:     "tilde prefix with macos home",
			root:     "~/x",
			fromPath: "/Users/bob/y",
			want:     "/Users/bob/x",
		},
		{
			name:     "no home in path leaves tilde",
			root:     "~/work",
			fromPath: "/srv/data/proj",
			want:     "~/work",
		},
		{
			name:     "root without tilde passes through",
			root:     "/data/ws",
			fromPath: "/home/alice/proj",
			want:     "/data/ws",
		},
		{
			name:     "tilde not leading passes through",
			root:     "/data/~",
			fromPath: "/home/alice/proj",
			want:     "/data/~",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.root, tt.fromPath))
		})
	}
}

func TestToRelative(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		root   string
		want   string
		inRoot bool
	}{
		{
			name:   "suffix under root",
			path:   "/home/alice/proj/data",
			root:   "/home/alice",
			want:   "proj/data",
			inRoot: true,
		},
		{
			name:   "root itself is empty",
			path:   "/home/alice",
			root:   "/home/alice",
			want:   "",
			inRoot: true,
		},
		{
			name:   "trailing slashes ignored on both sides",
			path:   "/home/alice/",
			root:   "/home/alice//",
			want:   "",
			inRoot: true,
		},
		{
			name:   "tilde root expanded from path",
			path:   "/home/alice/proj/.venv",
			root:   "~",
			want:   "proj/.venv",
			inRoot: true,
		},
		{
			name:   "tilde subdir root",
			path:   "/Users/bob/ws/proj",
			root:   "~/ws",
			want:   "proj",
			inRoot: true,
		},
		{
			name:   "outside root",
			path:   "/opt/conda/envs/py311",
			root:   "/home/alice",
			inRoot: false,
		},
		{
			name:   "sibling with shared prefix is outside",
			path:   "/home/alice-archive/proj",
			root:   "/home/alice",
			inRoot: false,
		},
		{
			name:   "filesystem root",
			path:   "/usr/share/jupyter/kernels/python3",
			root:   "/",
			want:   "usr/share/jupyter/kernels/python3",
			inRoot: true,
		},
		{
			name:   "unexpandable tilde never matches",
			path:   "/srv/data/proj",
			root:   "~",
			inRoot: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToRelative(tt.path, tt.root)
			assert.Equal(t, tt.inRoot, ok)
			if tt.inRoot {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// Concatenating a root and a slash-free suffix must always invert back to
// the suffix.
func TestToRelativeInvertsConcatenation(t *testing.T) {
	roots := []string{"/home/alice", "/home/alice/", "/data/ws", "/"}
	suffixes := []string{"proj", "proj/.venv", "a/b/c", ".venv/bin"}

	for _, root := range roots {
		for _, suffix := range suffixes {
			joined := stripTrailingSlashes(root) + "/" + suffix
			if root == "/" {
				joined = "/" + suffix
			}
			got, ok := ToRelative(joined, root)
			assert.True(t, ok, "root=%q suffix=%q", root, suffix)
			assert.Equal(t, suffix, got, "root=%q suffix=%q", root, suffix)
		}
	}
}

func TestIsLocalEnv(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "unix venv segment", path: "/home/alice/proj/.venv", want: true},
		{name: "venv with subpath", path: "/home/alice/proj/.venv/bin", want: true},
		{name: "windows venv segment", path: `C:\proj\.venv`, want: true},
		{name: "conda base env", path: "/opt/conda/envs/base", want: false},
		{name: "venv-like prefix is not a segment", path: "/home/alice/.venvs/py", want: false},
		{name: "empty path", path: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLocalEnv(tt.path))
		})
	}
}

func TestEnvKind(t *testing.T) {
	tests := []struct {
		name          string
		envPath       string
		isGlobalConda bool
		want          string
	}{
		{name: "global conda wins", envPath: "/opt/conda", isGlobalConda: true, want: "global conda"},
		{name: "no env path is system", envPath: "", want: "system"},
		{name: "venv segment is local", envPath: "/home/alice/proj/.venv", want: "local venv"},
		{name: "anything else is an environment", envPath: "/opt/conda/envs/ds", want: "environment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvKind(tt.envPath, tt.isGlobalConda))
		})
	}
}
