package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/stellarshenson/jupyterlab-launcher-navigate-to-kernel-extension/internal/kernelspec"
)

// kernelPathResponse is the wire shape of the kernel-path endpoint.
// executable_path and env_path are null, not empty strings, when unknown:
// existing front-end consumers distinguish the two.
type kernelPathResponse struct {
	KernelName     string  `json:"kernel_name"`
	DisplayName    string  `json:"display_name"`
	ResourceDir    string  `json:"resource_dir"`
	ExecutablePath *string `json:"executable_path"`
	EnvPath        *string `json:"env_path"`
	IsGlobalConda  bool    `json:"is_global_conda"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleKernelPath resolves a kernel display name to its filesystem
// locations. The display name is the trailing, URL-encoded path segment;
// it may contain spaces, parentheses and slashes.
func (s *Server) handleKernelPath(w http.ResponseWriter, r *http.Request) {
	encoded := strings.TrimPrefix(r.URL.EscapedPath(), "/api/kernel-path/")
	displayName, err := url.PathUnescape(encoded)
	if err != nil || displayName == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid display name"})
		return
	}

	spec, found, err := s.finder.ByDisplayName(displayName)
	if err != nil {
		s.logger.Error("kernelspec scan failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: fmt.Sprintf("Kernel with display name '%s' not found", displayName),
		})
		return
	}

	execPath := spec.ExecutablePath()
	envPath, isGlobalConda := kernelspec.ExtractEnvPath(execPath, spec.ResourceDir)

	writeJSON(w, http.StatusOK, kernelPathResponse{
		KernelName:     spec.Name,
		DisplayName:    displayName,
		ResourceDir:    spec.ResourceDir,
		ExecutablePath: nullable(execPath),
		EnvPath:        nullable(envPath),
		IsGlobalConda:  isGlobalConda,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	specs, err := s.finder.All()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"kernels": len(specs),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
