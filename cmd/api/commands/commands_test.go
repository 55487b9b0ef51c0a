package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DataShow_Prints_Normalized_Document(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sixMonthGoals": ["Learn Rust"]}`), 0o644))

	var out bytes.Buffer
	require.NoError(t, showData(context.Background(), &out, path))

	assert.Contains(t, out.String(), `"Learn Rust"`)
	assert.Contains(t, out.String(), `"jul": {}`)
}

func Test_DataNormalize_Rewrites_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{\n// hand edited\n\"monthlyChecks\": {\"feb\": {\"1\": true,},},\n}"), 0o644))

	var out bytes.Buffer
	require.NoError(t, normalizeData(context.Background(), &out, path))
	assert.Contains(t, out.String(), "normalized")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "//")
	assert.Contains(t, string(raw), `"sixMonthGoals"`)
	assert.Contains(t, string(raw), `"dateChecks"`)
}

func Test_DataCommand_Runs_Show_Through_Cobra(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.json")

	cmd := NewDataCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"show", "--file", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"sixMonthChecks"`)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "show must not create the data file")
}
