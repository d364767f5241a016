package datasource

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go-doctor-directory/config"
	"go-doctor-directory/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledSource(t *testing.T) {
	source := NewDoctorSource(config.DataConfig{})
	assert.Equal(t, "bundled", source.Name())

	raw, err := source.Read(context.Background())
	require.NoError(t, err)

	var doctors []entity.Doctor
	require.NoError(t, json.Unmarshal(raw, &doctors))
	require.NotEmpty(t, doctors)

	seen := make(map[string]bool)
	for _, d := range doctors {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.Name)
		assert.False(t, seen[d.ID], "duplicate id %s", d.ID)
		seen[d.ID] = true

		_, ok := d.FeeAmount()
		assert.True(t, ok, "fees of %s", d.ID)
		_, ok = d.ExperienceYears()
		assert.True(t, ok, "experience of %s", d.ID)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doctors.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))

	source := NewDoctorSource(config.DataConfig{SourcePath: path})
	assert.Equal(t, path, source.Name())

	raw, err := source.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestFileSource_Missing(t *testing.T) {
	source := NewDoctorSource(config.DataConfig{SourcePath: filepath.Join(t.TempDir(), "missing.json")})

	_, err := source.Read(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSource_CancelledContext(t *testing.T) {
	source := NewDoctorSource(config.DataConfig{SourcePath: "unused.json"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
