package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli/config"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/cli/output"
	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/jupyter"
)

// doctorReport is the JSON output shape of the doctor command.
type doctorReport struct {
	ServerURL       string   `json:"server_url"`
	ServerRoot      string   `json:"server_root"`
	ConfigFile      string   `json:"config_file,omitempty"`
	ServerReachable bool     `json:"server_reachable"`
	KernelCount     int      `json:"kernel_count"`
	KernelPathAPI   string   `json:"kernel_path_api"`
	VenvService     string   `json:"venv_service"`
	Errors          []string `json:"errors,omitempty"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check connectivity and server-side capabilities",
		Long: `Probe the configured Jupyter server and report which capabilities are
present: the kernel-path endpoint that locates environments, and the
nb-venv-kernels companion service that backs unregister and remove.

A capability can also come back unknown when the probe itself fails,
e.g. when the server is unreachable.`,
		Example: `  # Check the configured server
  kernelnav doctor`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}
	return cmd
}

func runDoctor(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	r := cmdCtx.Renderer

	report := doctorReport{
		ServerURL:     cmdCtx.Cfg.ServerURL,
		ServerRoot:    cmdCtx.Cfg.ServerRoot,
		ConfigFile:    config.GetConfigFileUsed(),
		KernelPathAPI: jupyter.CapabilityUnknown.String(),
		VenvService:   jupyter.CapabilityUnknown.String(),
	}

	list, err := cmdCtx.Client.KernelSpecs(ctx)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
	} else {
		report.ServerReachable = true
		report.KernelCount = len(list.KernelSpecs)
		report.KernelPathAPI = probeKernelPath(ctx, cmdCtx.Client, list)
	}

	if report.ServerReachable {
		report.VenvService = probeVenvService(ctx, cmdCtx.Client, &report)
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(report); err != nil {
			return err
		}
		if !report.ServerReachable {
			return errors.New("doctor found problems")
		}
		return nil
	}

	r.Header(1, "Doctor")
	r.KeyValue("Server", report.ServerURL)
	r.KeyValue("Workspace root", report.ServerRoot)
	if report.ConfigFile != "" {
		r.KeyValue("Config file", report.ConfigFile)
	}
	r.Println()

	if report.ServerReachable {
		r.Success(fmt.Sprintf("Server reachable, %d kernels", report.KernelCount))
	} else {
		r.Error("Server unreachable")
	}
	reportCapability(r, "Kernel path endpoint", report.KernelPathAPI)
	reportCapability(r, "nb-venv-kernels service", report.VenvService)

	for _, msg := range report.Errors {
		r.Warning(msg)
	}
	if !report.ServerReachable {
		return errors.New("doctor found problems")
	}
	return nil
}

// probeKernelPath asks for the path of the default kernel. Any decoded
// response, including a kernel-level error, proves the endpoint exists.
func probeKernelPath(ctx context.Context, client *jupyter.Client, list *jupyter.KernelSpecList) string {
	spec, ok := list.KernelSpecs[list.Default]
	if !ok {
		for _, s := range list.KernelSpecs {
			spec = s
			break
		}
	}
	if spec.Name == "" {
		return jupyter.CapabilityUnknown.String()
	}
	if _, err := client.KernelPath(ctx, spec.Spec.DisplayName); err != nil {
		return jupyter.CapabilityUnavailable.String()
	}
	return jupyter.CapabilityAvailable.String()
}

func probeVenvService(ctx context.Context, client *jupyter.Client, report *doctorReport) string {
	if _, err := client.Environments(ctx); err != nil {
		if !errors.Is(err, jupyter.ErrVenvServiceUnavailable) {
			report.Errors = append(report.Errors, err.Error())
		}
	}
	return client.VenvCapability().String()
}

func reportCapability(r *output.Renderer, label, state string) {
	switch state {
	case jupyter.CapabilityAvailable.String():
		r.Success(label + " available")
	case jupyter.CapabilityUnavailable.String():
		r.Warning(label + " unavailable")
	default:
		r.Info(label + ": unknown")
	}
}
