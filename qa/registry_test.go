package qa

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePack(t *testing.T, root, classFolder, subject, content string) {
	t.Helper()
	dir := filepath.Join(root, classFolder, "subjects")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, subject+".json"), []byte(content), 0o644))
}

func TestBuildRegistryScansPacksTree(t *testing.T) {
	root := t.TempDir()
	writePack(t, root, "8th", "science", `{"chapters":[{"concepts":[{"topic":"Inertia"}]}]}`)
	writePack(t, root, "9th", "math", `[{"concepts":[{"topic":"Algebra"}]}]`)

	// A stray json outside a subjects dir must not be registered.
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.json"), []byte(`{}`), 0o644))

	registry, err := BuildRegistry(root)
	require.NoError(t, err)
	require.Len(t, registry, 2)

	loader, ok := registry["8th/subjects/science.json"]
	require.True(t, ok)
	pack, err := loader()
	require.NoError(t, err)
	assert.Equal(t, "Inertia", pack.Flatten()[0].Topic)

	_, ok = registry["9th/subjects/math.json"]
	assert.True(t, ok)
}

func TestResolveKeyPrefersExactClass(t *testing.T) {
	registry := Registry{
		"9th/subjects/math.json": func() (*Pack, error) { return &Pack{}, nil },
		"8th/subjects/math.json": func() (*Pack, error) { return &Pack{}, nil },
	}

	assert.Equal(t, "9th/subjects/math.json", registry.ResolveKey("9", "math"))
	assert.Equal(t, "8th/subjects/math.json", registry.ResolveKey("11", "math"))
	assert.Equal(t, "", registry.ResolveKey("9", ""))

	// Unregistered everywhere: the preferred name is still reported.
	assert.Equal(t, "9th/subjects/history.json", registry.ResolveKey("9", "history"))
}
