// Package kernelspec discovers installed Jupyter kernelspecs on the local
// filesystem and derives the interpreter environment behind each one. It
// backs the kernel-path API server.
package kernelspec

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Spec is one discovered kernelspec.
type Spec struct {
	Name        string
	DisplayName string
	Language    string
	Argv        []string
	ResourceDir string
}

// ExecutablePath is the interpreter the kernel launches, argv[0].
func (s Spec) ExecutablePath() string {
	if len(s.Argv) == 0 {
		return ""
	}
	return s.Argv[0]
}

// kernelJSON mirrors the kernel.json file inside a kernelspec directory.
type kernelJSON struct {
	Argv        []string `json:"argv"`
	DisplayName string   `json:"display_name"`
	Language    string   `json:"language"`
}

// Finder scans kernelspec directories, caching the result until
// invalidated.
type Finder struct {
	paths  []string
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]Spec
}

// DefaultSearchPaths returns the kernel directories Jupyter consults, in
// precedence order: JUPYTER_PATH entries, the user data dir, active
// environment prefixes, then the system-wide locations.
func DefaultSearchPaths() []string {
	var dataDirs []string
	for _, p := range filepath.SplitList(os.Getenv("JUPYTER_PATH")) {
		if p != "" {
			dataDirs = append(dataDirs, p)
		}
	}
	if d := os.Getenv("JUPYTER_DATA_DIR"); d != "" {
		dataDirs = append(dataDirs, d)
	} else if home, err := os.UserHomeDir(); err == nil {
		dataDirs = append(dataDirs, filepath.Join(home, ".local", "share", "jupyter"))
	}
	for _, envVar := range []string{"VIRTUAL_ENV", "CONDA_PREFIX"} {
		if prefix := os.Getenv(envVar); prefix != "" {
			dataDirs = append(dataDirs, filepath.Join(prefix, "share", "jupyter"))
		}
	}
	dataDirs = append(dataDirs, "/usr/local/share/jupyter", "/usr/share/jupyter")

	paths := make([]string, 0, len(dataDirs))
	for _, d := range dataDirs {
		paths = append(paths, filepath.Join(d, "kernels"))
	}
	return paths
}

// NewFinder creates a Finder over the given kernel directories, or the
// default search paths when none are given.
func NewFinder(logger *slog.Logger, paths ...string) *Finder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(paths) == 0 {
		paths = DefaultSearchPaths()
	}
	return &Finder{paths: paths, logger: logger}
}

// KernelDirs returns the directories the finder scans. Used to wire
// filesystem watches.
func (f *Finder) KernelDirs() []string {
	return f.paths
}

// All returns every discovered kernelspec keyed by kernel name. Earlier
// search paths shadow later ones, matching Jupyter's own precedence.
func (f *Finder) All() (map[string]Spec, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cache != nil {
		return f.cache, nil
	}

	specs := make(map[string]Spec)
	for _, dir := range f.paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			// Most search paths won't exist on a given machine.
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name := entry.Name()
			if _, seen := specs[name]; seen {
				continue
			}
			resourceDir := filepath.Join(dir, name)
			spec, err := readSpec(name, resourceDir)
			if err != nil {
				f.logger.Debug("skipping kernelspec", "dir", resourceDir, "error", err)
				continue
			}
			specs[name] = spec
		}
	}

	f.cache = specs
	return specs, nil
}

// ByDisplayName finds the kernelspec with the given display name.
func (f *Finder) ByDisplayName(displayName string) (*Spec, bool, error) {
	specs, err := f.All()
	if err != nil {
		return nil, false, err
	}

	// Deterministic pick when two specs share a display name.
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := specs[name]
		if spec.DisplayName == displayName {
			return &spec, true, nil
		}
	}
	return nil, false, nil
}

// Invalidate drops the cached scan so the next lookup re-reads disk.
func (f *Finder) Invalidate() {
	f.mu.Lock()
	f.cache = nil
	f.mu.Unlock()
}

func readSpec(name, resourceDir string) (Spec, error) {
	data, err := os.ReadFile(filepath.Join(resourceDir, "kernel.json"))
	if err != nil {
		return Spec{}, fmt.Errorf("reading kernel.json: %w", err)
	}
	var kj kernelJSON
	if err := json.Unmarshal(data, &kj); err != nil {
		return Spec{}, fmt.Errorf("parsing kernel.json: %w", err)
	}
	return Spec{
		Name:        name,
		DisplayName: kj.DisplayName,
		Language:    kj.Language,
		Argv:        kj.Argv,
		ResourceDir: resourceDir,
	}, nil
}
