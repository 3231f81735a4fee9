package dotEnvLoader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileFallsBackToProcessEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "from-process")

	envs, err := DotEnvLoader{Path: filepath.Join(t.TempDir(), "absent.env")}.Load()

	require.NoError(t, err)
	assert.Equal(t, "from-process", envs["TELEGRAM_TOKEN"])
}

func TestProcessEnvOverridesDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path,
		[]byte("TELEGRAM_TOKEN=from-file\nSPREADSHEET_ID=sheet-from-file\n"), 0o600))

	t.Setenv("TELEGRAM_TOKEN", "from-process")

	envs, err := DotEnvLoader{Path: path}.Load()

	require.NoError(t, err)
	assert.Equal(t, "from-process", envs["TELEGRAM_TOKEN"])
	assert.Equal(t, "sheet-from-file", envs["SPREADSHEET_ID"])
}
