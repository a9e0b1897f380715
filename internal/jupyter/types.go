package jupyter

// KernelPathInfo describes where a kernel's backing interpreter and
// environment live on the server's filesystem. Produced by the
// /api/kernel-path endpoint; read-only to this client.
type KernelPathInfo struct {
	KernelName     string `json:"kernel_name"`
	DisplayName    string `json:"display_name"`
	ResourceDir    string `json:"resource_dir"`
	ExecutablePath string `json:"executable_path"`
	EnvPath        string `json:"env_path"`
	IsGlobalConda  bool   `json:"is_global_conda"`
	Error          string `json:"error,omitempty"`
}

// Environment is a virtual environment registered with the companion
// nb-venv-kernels service.
type Environment struct {
	Name       string `json:"name"`
	CustomName string `json:"custom_name"`
	Type       string `json:"type"`
	Exists     bool   `json:"exists"`
	HasKernel  bool   `json:"has_kernel"`
	Path       string `json:"path"`
}

// EnvironmentList is the response of /nb-venv-kernels/environments.
type EnvironmentList struct {
	Environments  []Environment `json:"environments"`
	WorkspaceRoot string        `json:"workspace_root"`
}

// unregisterResponse is the response of /nb-venv-kernels/unregister.
type unregisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// KernelSpec is one entry of the /api/kernelspecs listing. These are the
// kernels the launcher shows as cards.
type KernelSpec struct {
	Name      string            `json:"name"`
	Spec      KernelSpecDetails `json:"spec"`
	Resources map[string]string `json:"resources,omitempty"`
}

// KernelSpecDetails mirrors the kernel.json payload inside a kernelspec.
type KernelSpecDetails struct {
	Argv        []string          `json:"argv"`
	DisplayName string            `json:"display_name"`
	Language    string            `json:"language"`
	Env         map[string]string `json:"env,omitempty"`
}

// KernelSpecList is the response of /api/kernelspecs.
type KernelSpecList struct {
	Default     string                `json:"default"`
	KernelSpecs map[string]KernelSpec `json:"kernelspecs"`
}

// Terminal is the response of POST /api/terminals.
type Terminal struct {
	Name string `json:"name"`
}
