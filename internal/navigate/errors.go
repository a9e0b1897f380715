package navigate

import "errors"

// Sentinel errors for the four failure classes the actions report:
// missing selection, lookup misses, domain refusals, and mapping failures.
// Remote mutation failures are wrapped transport/server errors instead.
var (
	// ErrNoSelection means no kernel card was captured by the last
	// right-click (or no kernel name was passed on the command line).
	ErrNoSelection = errors.New("no kernel selected")

	// ErrNotFound means no registered environment matched the kernel's
	// display name.
	ErrNotFound = errors.New("no matching environment found")

	// ErrNotManaged means the matching environment belongs to an
	// externally managed family (conda) and cannot be unregistered here.
	ErrNotManaged = errors.New("environment is not managed by nb-venv-kernels")

	// ErrNotLocal means the environment is not a project-local .venv and
	// must not be physically removed.
	ErrNotLocal = errors.New("environment is not a local .venv")

	// ErrOutsideRoot means the path could not be mapped into the server
	// root. Deletion refuses to proceed in that case.
	ErrOutsideRoot = errors.New("path is outside the server root")
)
