package database

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

// blockedDir returns a path that cannot be created because its parent is a regular file.
func blockedDir(t *testing.T) string {
	t.Helper()
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	return filepath.Join(blocker, "data")
}

func TestResolver_Candidates(t *testing.T) {
	t.Run("orders candidates by priority", func(t *testing.T) {
		r := &Resolver{
			AppDirName: "missioncontrol",
			LookupEnv: envFrom(map[string]string{
				"XDG_DATA_HOME": "/xdg",
				"HOME":          "/home/me",
				"APPDATA":       "/appdata",
			}),
			TempDir: func() string { return "/tmp" },
		}

		assert.Equal(t, []string{
			filepath.Join("/xdg", "missioncontrol"),
			filepath.Join("/home/me", ".local", "share", "missioncontrol"),
			filepath.Join("/home/me", ".missioncontrol"),
			filepath.Join("/appdata", "missioncontrol"),
			filepath.Join("/tmp", "missioncontrol"),
		}, r.Candidates())
	})

	t.Run("skips unset and empty variables", func(t *testing.T) {
		r := &Resolver{
			AppDirName: "missioncontrol",
			LookupEnv:  envFrom(map[string]string{"XDG_DATA_HOME": "", "APPDATA": "/appdata"}),
			TempDir:    func() string { return "/tmp" },
		}

		assert.Equal(t, []string{
			filepath.Join("/appdata", "missioncontrol"),
			filepath.Join("/tmp", "missioncontrol"),
		}, r.Candidates())
	})

	t.Run("puts the configured data dir first", func(t *testing.T) {
		r := &Resolver{
			DataDir:    "/custom",
			AppDirName: "missioncontrol",
			LookupEnv:  envFrom(map[string]string{"HOME": "/home/me"}),
			TempDir:    func() string { return "/tmp" },
		}

		candidates := r.Candidates()
		require.Len(t, candidates, 4)
		assert.Equal(t, "/custom", candidates[0])
	})
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("returns the first writable candidate", func(t *testing.T) {
		home := t.TempDir()
		r := &Resolver{
			AppDirName: "missioncontrol",
			FileName:   "todos.db",
			LookupEnv: envFrom(map[string]string{
				"XDG_DATA_HOME": filepath.Dir(blockedDir(t)),
				"HOME":          home,
			}),
			TempDir: func() string { return t.TempDir() },
		}

		path, err := r.Resolve()
		require.NoError(t, err)

		dir := filepath.Join(home, ".local", "share", "missioncontrol")
		assert.Equal(t, filepath.Join(dir, "todos.db"), path)

		// The directory exists, the probe is gone and the database is not created yet.
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		_, err = os.Stat(filepath.Join(dir, writeProbeFile))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("skips a directory that exists but fails the write check", func(t *testing.T) {
		xdg := t.TempDir()
		home := t.TempDir()
		// A directory in the probe file's place makes the write fail after MkdirAll succeeds.
		require.NoError(t, os.MkdirAll(filepath.Join(xdg, "missioncontrol", writeProbeFile), 0o755))
		r := &Resolver{
			AppDirName: "missioncontrol",
			FileName:   "todos.db",
			LookupEnv: envFrom(map[string]string{
				"XDG_DATA_HOME": xdg,
				"HOME":          home,
			}),
			TempDir: func() string { return t.TempDir() },
		}

		path, err := r.Resolve()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "missioncontrol", "todos.db"), path)
	})

	t.Run("falls back to the temp directory", func(t *testing.T) {
		tmp := t.TempDir()
		r := &Resolver{
			AppDirName: "missioncontrol",
			FileName:   "todos.db",
			LookupEnv:  envFrom(map[string]string{"HOME": filepath.Dir(blockedDir(t))}),
			TempDir:    func() string { return tmp },
		}

		path, err := r.Resolve()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmp, "missioncontrol", "todos.db"), path)
	})

	t.Run("fails with every attempt when nothing is writable", func(t *testing.T) {
		blocked := filepath.Dir(blockedDir(t))
		r := &Resolver{
			AppDirName: "missioncontrol",
			FileName:   "todos.db",
			LookupEnv: envFrom(map[string]string{
				"XDG_DATA_HOME": blocked,
				"HOME":          blocked,
				"APPDATA":       blocked,
			}),
			TempDir: func() string { return blocked },
		}

		path, err := r.Resolve()
		assert.Empty(t, path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoWritableLocation))

		var nwl *NoWritableLocationError
		require.True(t, errors.As(err, &nwl))
		require.Len(t, nwl.Attempts, 5)
		assert.Equal(t, r.Candidates(), []string{
			nwl.Attempts[0].Dir,
			nwl.Attempts[1].Dir,
			nwl.Attempts[2].Dir,
			nwl.Attempts[3].Dir,
			nwl.Attempts[4].Dir,
		})
		for _, a := range nwl.Attempts {
			assert.Error(t, a.Err)
			assert.Contains(t, err.Error(), a.Dir)
		}
	})

	t.Run("uses the default file name", func(t *testing.T) {
		dataDir := t.TempDir()
		r := &Resolver{
			DataDir:   dataDir,
			LookupEnv: envFrom(nil),
		}

		path, err := r.Resolve()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dataDir, "todos.db"), path)
	})
}
