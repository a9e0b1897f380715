// Package jupyter is a thin REST client for the Jupyter server endpoints
// the launcher actions consume: kernelspec listing, kernel path lookup,
// the contents API, the terminals API, and the optional nb-venv-kernels
// companion service.
package jupyter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// ErrVenvServiceUnavailable reports that the nb-venv-kernels companion
// service is not installed on the target server.
var ErrVenvServiceUnavailable = errors.New("nb-venv-kernels is not installed on the server")

// Config holds client construction options.
type Config struct {
	// BaseURL is the Jupyter server address, e.g. http://localhost:8888.
	BaseURL string
	// Token is the Jupyter API token; empty disables auth headers.
	Token   string
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client talks to a single Jupyter server.
type Client struct {
	base   string
	token  string
	http   *http.Client
	logger *slog.Logger

	mu      sync.Mutex
	venvCap Capability
}

// New creates a Client for the given server.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("server URL is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		base:   base,
		token:  cfg.Token,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

// BaseURL returns the normalized server address.
func (c *Client) BaseURL() string {
	return c.base
}

// endpoint joins path segments onto the base URL, escaping each segment.
func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return c.base + "/" + strings.Join(escaped, "/")
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	c.logger.Debug("jupyter request", "method", method, "url", endpoint)
	return c.http.Do(req)
}

// KernelPath looks up filesystem information for the kernel with the given
// display name. Error bodies are parsed even on non-2xx responses so the
// server's own message reaches the user verbatim.
func (c *Client) KernelPath(ctx context.Context, displayName string) (*KernelPathInfo, error) {
	resp, err := c.do(ctx, http.MethodGet, c.endpoint("api", "kernel-path", displayName), nil)
	if err != nil {
		return nil, fmt.Errorf("kernel path lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("kernel path lookup: reading response: %w", err)
	}

	var info KernelPathInfo
	if err := json.Unmarshal(data, &info); err != nil {
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("kernel path lookup failed: %s", resp.Status)
		}
		return nil, fmt.Errorf("kernel path lookup: decoding response: %w", err)
	}
	if info.Error != "" {
		return nil, fmt.Errorf("kernel path lookup failed: %s", info.Error)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("kernel path lookup failed: %s", resp.Status)
	}
	return &info, nil
}

// KernelSpecs lists the kernels the launcher shows as cards.
func (c *Client) KernelSpecs(ctx context.Context) (*KernelSpecList, error) {
	resp, err := c.do(ctx, http.MethodGet, c.endpoint("api", "kernelspecs"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing kernelspecs: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("listing kernelspecs failed: %s", resp.Status)
	}
	var list KernelSpecList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("listing kernelspecs: decoding response: %w", err)
	}
	return &list, nil
}

// Environments lists the virtual environments registered with the
// nb-venv-kernels companion service. The probe outcome is recorded as a
// capability so callers can hide the unregister/remove actions when the
// service is not installed.
func (c *Client) Environments(ctx context.Context) (*EnvironmentList, error) {
	resp, err := c.do(ctx, http.MethodGet, c.endpoint("nb-venv-kernels", "environments"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing environments: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusMethodNotAllowed:
		c.setVenvCapability(CapabilityUnavailable)
		return nil, fmt.Errorf("%w (%s)", ErrVenvServiceUnavailable, resp.Status)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("listing environments failed: %s", resp.Status)
	}

	var list EnvironmentList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("listing environments: decoding response: %w", err)
	}
	c.setVenvCapability(CapabilityAvailable)
	return &list, nil
}

// VenvCapability reports whether the companion service has been seen.
func (c *Client) VenvCapability() Capability {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.venvCap
}

func (c *Client) setVenvCapability(state Capability) {
	c.mu.Lock()
	c.venvCap = state
	c.mu.Unlock()
}

// Unregister removes the environment at path from the companion service's
// registry. The environment directory itself is left untouched. Returns
// the server's message, if any.
func (c *Client) Unregister(ctx context.Context, path string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, c.endpoint("nb-venv-kernels", "unregister"), map[string]string{"path": path})
	if err != nil {
		return "", fmt.Errorf("unregister request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("unregister request: reading response: %w", err)
	}

	var out unregisterResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("unregister failed: %s", resp.Status)
	}
	if !out.Success {
		if out.Error != "" {
			return "", fmt.Errorf("unregister failed: %s", out.Error)
		}
		return "", fmt.Errorf("unregister failed: %s", resp.Status)
	}
	return out.Message, nil
}

// DeleteContents deletes the file or directory at the workspace-relative
// path through the contents API. Non-success responses surface the body
// text as the error detail.
func (c *Client) DeleteContents(ctx context.Context, relPath string) error {
	segments := append([]string{"api", "contents"}, strings.Split(relPath, "/")...)
	resp, err := c.do(ctx, http.MethodDelete, c.endpoint(segments...), nil)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		detail := strings.TrimSpace(string(data))
		if detail == "" {
			detail = resp.Status
		}
		return fmt.Errorf("delete failed: %s", detail)
	}
	return nil
}

// CreateTerminal opens a new Jupyter terminal with the given working
// directory (workspace-relative; empty means the workspace root).
func (c *Client) CreateTerminal(ctx context.Context, cwd string) (*Terminal, error) {
	var body any
	if cwd != "" {
		body = map[string]string{"cwd": cwd}
	} else {
		body = map[string]string{}
	}
	resp, err := c.do(ctx, http.MethodPost, c.endpoint("api", "terminals"), body)
	if err != nil {
		return nil, fmt.Errorf("creating terminal: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("creating terminal failed: %s", resp.Status)
	}
	var term Terminal
	if err := json.NewDecoder(resp.Body).Decode(&term); err != nil {
		return nil, fmt.Errorf("creating terminal: decoding response: %w", err)
	}
	return &term, nil
}

// TreeURL returns the JupyterLab file-browser URL for a workspace-relative
// path.
func (c *Client) TreeURL(relPath string) string {
	if relPath == "" {
		return c.base + "/lab/tree/"
	}
	segments := strings.Split(relPath, "/")
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return c.base + "/lab/tree/" + strings.Join(escaped, "/")
}

// TerminalURL returns the JupyterLab URL for a named terminal.
func (c *Client) TerminalURL(name string) string {
	return c.base + "/terminals/" + url.PathEscape(name)
}
