package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/missioncontrol/internal/backup"
	"github.com/mrlokans/missioncontrol/internal/config"
)

func TestQueuePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "todos-tasks.db"), QueuePath("/data/todos.db"))
	assert.Equal(t, filepath.Join("/data", "todos-tasks"), QueuePath("/data/todos"))
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, client)

	tasksDBPath := filepath.Join(tmpDir, "test-tasks.db")
	assert.Equal(t, tasksDBPath, client.Path())
	_, err = os.Stat(tasksDBPath)
	assert.NoError(t, err, "tasks database should be created")

	err = client.Close()
	assert.NoError(t, err)
}

func TestClientStartStop(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)

	// Give it time to start
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	success := client.Stop(stopCtx)
	assert.True(t, success, "stop should succeed gracefully")
}

func TestClientStopWithoutStart(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	assert.True(t, client.Stop(context.Background()))
}

type fakeBackuper struct {
	calls chan string
	err   error
}

func (f *fakeBackuper) Run(ctx context.Context) (backup.Result, error) {
	if f.err != nil {
		return backup.Result{}, f.err
	}
	f.calls <- "ran"
	return backup.Result{Path: "/backups/todos-20240101-000000.db"}, nil
}

func TestEnqueueBackup(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	backuper := &fakeBackuper{calls: make(chan string, 1)}
	client.Register(NewDatabaseBackupQueue(backuper))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	id, err := client.EnqueueBackup(ctx, "manual")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case <-backuper.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("backup task was not executed within timeout")
	}
}

func TestDatabaseBackupProcessor(t *testing.T) {
	t.Run("propagates backup failures for retry", func(t *testing.T) {
		boom := errors.New("disk full")
		process := DatabaseBackupProcessor(&fakeBackuper{err: boom})

		err := process(context.Background(), DatabaseBackupTask{Reason: "scheduled"})

		assert.ErrorIs(t, err, boom)
	})

	t.Run("fails without a backuper", func(t *testing.T) {
		process := DatabaseBackupProcessor(nil)

		assert.Error(t, process(context.Background(), DatabaseBackupTask{}))
	})
}

// TestTask is a simple task for testing
type TestTask struct {
	Value string `json:"value"`
}

func (t TestTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "test_task",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
	}
}

func TestTaskEnqueue(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	executed := make(chan string, 1)
	queue := backlite.NewQueue(func(ctx context.Context, task TestTask) error {
		executed <- task.Value
		return nil
	})
	client.Register(queue)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(TestTask{Value: "hello"}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case val := <-executed:
		assert.Equal(t, "hello", val)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestDatabaseBackupTaskConfig(t *testing.T) {
	cfg := DatabaseBackupTask{}.Config()

	assert.Equal(t, "database_backup", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.Backoff)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestFromConfig(t *testing.T) {
	assert.Equal(t, DefaultConfig(), FromConfig(config.Tasks{}))

	cfg := FromConfig(config.Tasks{Workers: 4, ReleaseAfter: time.Minute})
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}
