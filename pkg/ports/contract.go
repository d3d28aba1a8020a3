package ports

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProfileWriterContract runs a suite of tests to verify that a ProfileWriter
// (paired with the ProfileReader for its format) adheres to the interface contract.
func RunProfileWriterContract(t *testing.T, writer ProfileWriter, reader ProfileReader) {
	ctx := context.Background()

	t.Run("Write and Read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile")
		profile, err := domain.NewProfile("Nova", "192.168.1.10", 13337)
		require.NoError(t, err)

		require.NoError(t, writer.Write(ctx, profile, path), "Write should not return error")

		loaded, err := reader.Read(ctx, path)
		require.NoError(t, err, "Read should not return error")
		assert.Equal(t, profile.DisplayName(), loaded.DisplayName())
		assert.Equal(t, profile.Address(), loaded.Address())
		assert.Equal(t, profile.Port(), loaded.Port())
		assert.False(t, loaded.Local())
		assert.False(t, loaded.Debug())
	})

	t.Run("Port Boundaries", func(t *testing.T) {
		for _, port := range []int{domain.MinPort, domain.MaxPort} {
			path := filepath.Join(t.TempDir(), "profile")
			profile, err := domain.NewProfile("Nova", "localhost", port)
			require.NoError(t, err)
			require.NoError(t, writer.Write(ctx, profile, path))

			loaded, err := reader.Read(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, port, loaded.Port())
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile")
		first, _ := domain.NewProfile("First", "10.0.0.1", 1)
		second, _ := domain.NewProfile("Second", "10.0.0.2", 2)

		require.NoError(t, writer.Write(ctx, first, path))
		require.NoError(t, writer.Write(ctx, second, path))

		loaded, err := reader.Read(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "Second", loaded.DisplayName())
		assert.Equal(t, 2, loaded.Port())
	})

	t.Run("Character Data", func(t *testing.T) {
		for _, name := range []string{"Nóva ✦ 星", "<Nova & \"co\">", "  spaced  name "} {
			path := filepath.Join(t.TempDir(), "profile")
			profile, err := domain.NewProfile(name, "x3.example.org", 13337)
			require.NoError(t, err)
			require.NoError(t, writer.Write(ctx, profile, path))

			loaded, err := reader.Read(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, profile, loaded)
		}

		// Text that could not be stored verbatim never becomes a profile.
		for _, name := range []string{"No\x01va", "Nova\x00", "No\x1bva"} {
			_, err := domain.NewProfile(name, "localhost", 1)
			assert.ErrorIs(t, err, domain.ErrInvalidProfile)
		}
	})

	t.Run("Unwritable Destination", func(t *testing.T) {
		dir := t.TempDir()
		// A regular file where a directory is expected cannot be written through.
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		profile, _ := domain.NewProfile("Nova", "localhost", 1)
		err := writer.Write(ctx, profile, filepath.Join(blocker, "profile"))
		assert.ErrorIs(t, err, domain.ErrConfigWrite)
	})
}
