// Package main is the kernelnav CLI: kernel launcher navigation actions
// for Jupyter servers.
package main

import (
	"os"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
