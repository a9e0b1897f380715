package kernelspec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKernel(t *testing.T, dir, name, displayName string) string {
	t.Helper()
	resourceDir := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(resourceDir, 0o755))
	content := `{"argv":["/usr/bin/python3","-m","ipykernel_launcher","-f","{connection_file}"],"display_name":"` + displayName + `","language":"python"}`
	require.NoError(t, os.WriteFile(filepath.Join(resourceDir, "kernel.json"), []byte(content), 0o644))
	return resourceDir
}

func TestFinderAll(t *testing.T) {
	dir := t.TempDir()
	writeKernel(t, dir, "python3", "Python 3")
	writeKernel(t, dir, "myenv", "Python (myenv)")

	// Directories without kernel.json are skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "broken"), 0o755))

	f := NewFinder(nil, dir)
	specs, err := f.All()
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "Python 3", specs["python3"].DisplayName)
	assert.Equal(t, "python", specs["myenv"].Language)
	assert.Equal(t, "/usr/bin/python3", specs["myenv"].ExecutablePath())
	assert.Equal(t, filepath.Join(dir, "myenv"), specs["myenv"].ResourceDir)
}

func TestFinderEarlierPathsShadowLaterOnes(t *testing.T) {
	userDir := t.TempDir()
	systemDir := t.TempDir()
	writeKernel(t, userDir, "python3", "User Python")
	writeKernel(t, systemDir, "python3", "System Python")

	f := NewFinder(nil, userDir, systemDir)
	specs, err := f.All()
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "User Python", specs["python3"].DisplayName)
}

func TestFinderByDisplayName(t *testing.T) {
	dir := t.TempDir()
	writeKernel(t, dir, "myenv", "Python (myenv)")

	f := NewFinder(nil, dir)

	spec, found, err := f.ByDisplayName("Python (myenv)")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "myenv", spec.Name)

	_, found, err = f.ByDisplayName("Ghost")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFinderInvalidate(t *testing.T) {
	dir := t.TempDir()
	writeKernel(t, dir, "python3", "Python 3")

	f := NewFinder(nil, dir)
	specs, err := f.All()
	require.NoError(t, err)
	require.Len(t, specs, 1)

	writeKernel(t, dir, "late", "Late Arrival")

	// Cached until invalidated.
	specs, err = f.All()
	require.NoError(t, err)
	assert.Len(t, specs, 1)

	f.Invalidate()
	specs, err = f.All()
	require.NoError(t, err)
	assert.Len(t, specs, 2)
}

func TestFinderMissingDirsIgnored(t *testing.T) {
	f := NewFinder(nil, filepath.Join(t.TempDir(), "does-not-exist"))
	specs, err := f.All()
	require.NoError(t, err)
	assert.Empty(t, specs)
}
