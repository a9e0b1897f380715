// Package navigate implements the logic behind the kernel launcher
// context-menu actions: reconciling kernel environment paths against the
// Jupyter server root, correlating kernel display names with registered
// virtual environments, and sequencing the reveal/terminal/unregister/remove
// workflows against the server's REST API.
package navigate

import (
	"regexp"
	"strings"
)

// homePattern extracts a home directory from an absolute path.
// Only Linux (/home/<user>) and macOS (/Users/<user>) layouts are
// recognized; anything else leaves tildes unexpanded.
var homePattern = regexp.MustCompile(`^(?:/home/[^/]+|/Users/[^/]+)`)

// ExpandHome expands a leading "~" or "~/..." in root using the home
// directory embedded in fromPath. The server reports its root with
// home-directory shorthand, while kernel paths arrive absolute; the home
// is therefore recovered from the kernel path itself. Roots without a
// tilde, and tildes that cannot be resolved, pass through unchanged.
func ExpandHome(root, fromPath string) string {
	if root != "~" && !strings.HasPrefix(root, "~/") {
		return root
	}
	home := homePattern.FindString(fromPath)
	if home == "" {
		return root
	}
	if root == "~" {
		return home
	}
	return home + root[1:]
}

// ToRelative maps an absolute path onto serverRoot, returning the path
// relative to the root. Trailing slashes on either operand are ignored.
// The root itself maps to the empty string. ok is false when the path
// lies outside the root entirely.
func ToRelative(absPath, serverRoot string) (string, bool) {
	root := stripTrailingSlashes(ExpandHome(serverRoot, absPath))
	p := stripTrailingSlashes(absPath)

	if p == root {
		return "", true
	}
	if root == "/" {
		if strings.HasPrefix(p, "/") {
			return strings.TrimPrefix(p, "/"), true
		}
		return "", false
	}
	if root != "" && strings.HasPrefix(p, root+"/") {
		return p[len(root)+1:], true
	}
	return "", false
}

// IsLocalEnv reports whether path points into a project-local .venv
// directory. Only those may be physically removed; anything else
// (conda envs, system interpreters) is treated as managed elsewhere.
func IsLocalEnv(path string) bool {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, seg := range segments {
		if seg == ".venv" {
			return true
		}
	}
	return false
}

// EnvKind labels the environment behind a kernel for display purposes.
func EnvKind(envPath string, isGlobalConda bool) string {
	switch {
	case isGlobalConda:
		return "global conda"
	case envPath == "":
		return "system"
	case IsLocalEnv(envPath):
		return "local venv"
	default:
		return "environment"
	}
}

func stripTrailingSlashes(p string) string {
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = p[:len(p)-1]
	}
	return p
}
