package kernelspec

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Named conda environment: /path/to/envs/<name>/bin/python or
	// /path/to/conda/<name>/bin/python.
	condaEnvPattern = regexp.MustCompile(`^(.*/(?:envs|conda)/[^/]+)(?:/bin/python.*)?$`)
	// Base conda installation roots.
	baseCondaPattern = regexp.MustCompile(`^(/opt/conda|/home/[^/]+/(?:mini)?conda3?|/usr/local/conda)(?:/bin/python.*)?$`)
	// Any interpreter living under a bin/ directory.
	binPythonPattern = regexp.MustCompile(`^(.*)/bin/python.*$`)
)

// ExtractEnvPath determines the environment root backing a kernel from its
// interpreter path and resource directory. The second return reports
// whether that root is a global conda installation (as opposed to a named
// environment or a virtualenv).
//
// The heuristics, in order: named conda env, base conda root, virtualenv
// identified by pyvenv.cfg, the share/jupyter/kernels prefix of the
// resource dir, and finally any bin/python parent that has a lib/
// directory.
func ExtractEnvPath(executablePath, resourceDir string) (string, bool) {
	if executablePath == "" {
		return "", false
	}

	real := executablePath
	if resolved, err := filepath.EvalSymlinks(executablePath); err == nil {
		real = resolved
	}

	if m := condaEnvPattern.FindStringSubmatch(real); m != nil {
		return m[1], false
	}
	if m := baseCondaPattern.FindStringSubmatch(real); m != nil {
		return m[1], true
	}

	if m := binPythonPattern.FindStringSubmatch(real); m != nil {
		venv := m[1]
		if _, err := os.Stat(filepath.Join(venv, "pyvenv.cfg")); err == nil {
			return venv, false
		}
	}

	if i := strings.Index(resourceDir, "/share/jupyter/kernels/"); i > 0 {
		if prefix := resourceDir[:i]; !isSystemPrefix(prefix) {
			return prefix, false
		}
	}

	if m := binPythonPattern.FindStringSubmatch(real); m != nil {
		env := m[1]
		if isSystemPrefix(env) {
			return "", false
		}
		if fi, err := os.Stat(filepath.Join(env, "lib")); err == nil && fi.IsDir() {
			return env, false
		}
	}

	return "", false
}

// isSystemPrefix filters out system interpreter prefixes. A kernel under
// /usr is installed system-wide, not inside an environment of its own.
func isSystemPrefix(p string) bool {
	switch p {
	case "/", "/usr", "/usr/local":
		return true
	}
	return false
}
