package iofs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/persload/pkg/config"
	"github.com/gnames/persload/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs_HomeIsFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	home := filepath.Join(t.TempDir(), "home")
	require.NoError(t, os.WriteFile(home, []byte("not a dir"), 0644))

	err := EnsureDirs(home)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CreateDirError, gnErr.Code)
	assert.Equal(t, []any{config.ConfigDir(home)}, gnErr.Vars)
	assert.Contains(t, gnErr.Err.Error(), "iofs.touchDir",
		"error names the function that failed")
}

func TestEnsureConfigFile_NoConfigDir(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	// EnsureDirs was not called, so the config directory is missing
	home := t.TempDir()

	err := EnsureConfigFile(home)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.WriteConfigError, gnErr.Code)
	assert.Equal(t, []any{config.ConfigFilePath(home)}, gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, os.ErrNotExist)
}

func TestReadConfigError(t *testing.T) {
	cause := errors.New("yaml: line 3: did not find expected key")
	err := ReadConfigError("/home/ana/.config/persload/config.yaml", cause)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ReadConfigError, gnErr.Code)
	assert.Contains(t, gnErr.Msg, "delete the file")
	assert.ErrorIs(t, gnErr.Err, cause)
	assert.Contains(t, gnErr.Err.Error(), "config.yaml")
}
