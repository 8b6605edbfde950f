package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/migrations"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add fee tiers", "add_fee_tiers"},
		{"Add-Fee-Tiers", "add_fee_tiers"},
		{"add__fee__tiers", "add_fee_tiers"},
		{"Referral Rewards 2", "referral_rewards_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add property images", "Image gallery per property")
	require.NoError(t, err)
	assert.Equal(t, "000001", first.Version)
	assert.Equal(t, "000001_add_property_images.up.sql", filepath.Base(first.UpPath))

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Image gallery per property")

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")

	second, err := CreateMigration(dir, "index markets", "")
	require.NoError(t, err)
	assert.Equal(t, "000002", second.Version)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(nested, "init", "")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{
		"000002_create_properties.up.sql",
		"000002_create_properties.down.sql",
		"000001_create_users.up.sql",
		"000001_create_users.down.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.up.sql"), 0o755))

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_users", "000002_create_properties"}, names)

	next, err := NextVersion(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	names, err := ListMigrations("/nonexistent/path/to/migrations")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEmbeddedMigrations_ArePaired(t *testing.T) {
	entries, err := migrations.FS.ReadDir(".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		if base, ok := strings.CutSuffix(e.Name(), ".up.sql"); ok {
			ups[base] = true
		}
		if base, ok := strings.CutSuffix(e.Name(), ".down.sql"); ok {
			downs[base] = true
		}
	}
	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs, "every up migration needs a down migration")
}
