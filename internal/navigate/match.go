package navigate

import (
	"strings"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/jupyter"
)

// KindConda marks environments owned by an external conda installation.
// They appear in listings but cannot be unregistered through this path.
const KindConda = "conda"

// FindEnvironment correlates a kernel display name with a registered
// environment. Kernel labels are free-form strings like "Python (myenv)"
// generated elsewhere, so substring containment of the environment's name
// or user-assigned alias is the only stable correlation available.
// Matching is case-sensitive and the first match in listing order wins.
//
// Conda records are skipped; when the name would only have matched a conda
// record, ErrNotManaged is returned so the user learns why rather than
// getting a bare miss.
func FindEnvironment(displayName string, records []jupyter.Environment) (*jupyter.Environment, error) {
	for i := range records {
		if records[i].Type == KindConda {
			continue
		}
		if matchesRecord(displayName, &records[i]) {
			return &records[i], nil
		}
	}
	for i := range records {
		if records[i].Type == KindConda && matchesRecord(displayName, &records[i]) {
			return nil, ErrNotManaged
		}
	}
	return nil, ErrNotFound
}

func matchesRecord(displayName string, env *jupyter.Environment) bool {
	if env.Name != "" && strings.Contains(displayName, env.Name) {
		return true
	}
	return env.CustomName != "" && strings.Contains(displayName, env.CustomName)
}
