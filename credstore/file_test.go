package credstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blobsas/blobsas/credstore"
)

func TestLoadFromFile_ValidJSON(t *testing.T) {
	t.Parallel()

	content := `[
		{"account": "myaccount", "key": "bXlhY2NvdW50a2V5"},
		{"account": "staging", "key": "c3RhZ2luZ2tleQ=="}
	]`

	path := writeTestFile(t, content)

	keys, err := credstore.LoadFromFile(path)
	require.NoError(t, err)

	assert.Len(t, keys, 2)
	assert.Equal(t, "bXlhY2NvdW50a2V5", keys["myaccount"])
	assert.Equal(t, "c3RhZ2luZ2tleQ==", keys["staging"])
}

func TestLoadFromFile_EmptyArray(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, `[]`)

	keys, err := credstore.LoadFromFile(path)
	require.NoError(t, err)

	assert.Empty(t, keys)
}

func TestLoadFromFile_SkipsIncompleteEntries(t *testing.T) {
	t.Parallel()

	content := `[
		{"account": "", "key": "key1"},
		{"account": "acc2", "key": ""},
		{"account": "", "key": ""},
		{"account": "valid", "key": "validkey"}
	]`

	path := writeTestFile(t, content)

	keys, err := credstore.LoadFromFile(path)
	require.NoError(t, err)

	assert.Len(t, keys, 1)
	assert.Equal(t, "validkey", keys["valid"])
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := credstore.LoadFromFile("/nonexistent/path/credentials.json")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read credentials file")
}

func TestLoadFromFile_InvalidJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not json",
			content: "this is not json",
		},
		{
			name:    "json object instead of array",
			content: `{"account": "acc", "key": "key"}`,
		},
		{
			name:    "malformed json",
			content: `[{"account": "acc", "key": "key"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeTestFile(t, tt.content)

			_, err := credstore.LoadFromFile(path)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), "parse credentials file")
		})
	}
}

func TestLoadFromFile_DuplicateAccounts(t *testing.T) {
	t.Parallel()

	content := `[
		{"account": "dup", "key": "first"},
		{"account": "dup", "key": "second"}
	]`

	path := writeTestFile(t, content)

	keys, err := credstore.LoadFromFile(path)
	require.NoError(t, err)

	assert.Len(t, keys, 1)
	// Last one wins
	assert.Equal(t, "second", keys["dup"])
}

// writeTestFile is a test helper that creates a temporary file with the given content
func writeTestFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")

	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}
