package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli/output"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/navigate"
)

// kernelLookupConcurrency bounds parallel kernel-path lookups.
const kernelLookupConcurrency = 4

// KernelInfo is the JSON output shape of the kernels command.
type KernelInfo struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	ResourceDir   string `json:"resource_dir,omitempty"`
	EnvPath       string `json:"env_path,omitempty"`
	RelativePath  string `json:"relative_path,omitempty"`
	Kind          string `json:"kind"`
	IsGlobalConda bool   `json:"is_global_conda"`
	LookupError   string `json:"lookup_error,omitempty"`
}

// NewKernelsCommand creates the kernels command.
func NewKernelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kernels",
		Short: "List the kernels the launcher shows as cards",
		Long: `List all kernelspecs known to the Jupyter server together with the
environment behind each one and where it sits relative to the workspace.

Output adapts to environment:
  - Terminal: styled table
  - Piped/Scripted: markdown table
  - --output json: machine-readable`,
		Example: `  # List kernels
  kernelnav kernels

  # List kernels as JSON
  kernelnav kernels --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKernels(cmd)
		},
	}
	return cmd
}

func runKernels(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	r := cmdCtx.Renderer

	list, err := cmdCtx.Client.KernelSpecs(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(list.KernelSpecs))
	for name := range list.KernelSpecs {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make([]KernelInfo, len(names))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(kernelLookupConcurrency)
	for i, name := range names {
		i := i
		spec := list.KernelSpecs[name]
		eg.Go(func() error {
			info := KernelInfo{Name: spec.Name, DisplayName: spec.Spec.DisplayName}
			path, err := cmdCtx.Client.KernelPath(egctx, spec.Spec.DisplayName)
			if err != nil {
				info.Kind = "unknown"
				info.LookupError = err.Error()
			} else {
				info.ResourceDir = path.ResourceDir
				info.EnvPath = path.EnvPath
				info.IsGlobalConda = path.IsGlobalConda
				info.Kind = navigate.EnvKind(path.EnvPath, path.IsGlobalConda)
				if rel, ok := navigate.ToRelative(dirOf(path.EnvPath, path.ResourceDir), cmdCtx.Cfg.ServerRoot); ok {
					info.RelativePath = rel
				}
			}
			infos[i] = info
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(struct {
			Default string       `json:"default"`
			Kernels []KernelInfo `json:"kernels"`
		}{Default: list.Default, Kernels: infos})
	}

	r.Header(1, fmt.Sprintf("Kernels (%d total)", len(infos)))
	titler := cases.Title(language.English)
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		loc := info.RelativePath
		if loc == "" && info.LookupError == "" {
			loc = "(outside workspace)"
		}
		if info.LookupError != "" {
			loc = info.LookupError
		}
		rows = append(rows, []string{info.Name, info.DisplayName, titler.String(info.Kind), loc})
	}
	output.RenderTable(r.Writer(), r.EffectiveMode(), []string{"name", "display name", "kind", "location"}, rows)
	return nil
}

func dirOf(envPath, resourceDir string) string {
	if envPath != "" {
		return envPath
	}
	return resourceDir
}
