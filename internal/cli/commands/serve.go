package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli/config"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var (
		port    int
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the kernel-path lookup API locally",
		Long: `Serve the kernel-path API against the local machine's kernelspecs. The
API maps a kernel display name to the environment behind it, the same
contract the launcher actions consume on a Jupyter server:

  GET /api/kernel-path/<display name>
  GET /api/status

Kernel directories are watched by default so newly registered kernels
show up without a restart.`,
		Example: `  # Serve on the default port
  kernelnav serve

  # Custom port, no filesystem watching
  kernelnav serve --port 9000 --no-watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, port, noWatch)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from config)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "disable watching kernel directories for changes")
	return cmd
}

func runServe(cmd *cobra.Command, port int, noWatch bool) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	serveCfg := cfg.GetServeConfig()
	if port == 0 {
		port = serveCfg.Port
	}
	watch := serveCfg.Watch && !noWatch

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Port:   port,
		Watch:  watch,
		Logger: logger,
	})
	return srv.Serve(ctx)
}
