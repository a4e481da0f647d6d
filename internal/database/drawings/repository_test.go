package drawings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/missioncontrol/internal/config"
	"github.com/mrlokans/missioncontrol/internal/database"
	"github.com/mrlokans/missioncontrol/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	manager := database.NewManager(
		config.Database{DataDir: t.TempDir(), FileName: "test_drawings.db"},
		database.WithOpener(database.OpenSQLite(logger.Silent)),
	)

	db, err := manager.Handle(context.Background())
	require.NoError(t, err)

	cleanup := func() {
		manager.Close()
	}

	return NewRepository(manager), db, cleanup
}

func TestRepository_Save(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	first, err := repo.Save(ctx, entities.SaveDrawing{Elements: `[{"id":"a"}]`, AppState: `{"zoom":1}`, ProjectID: 1})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.False(t, first.UpdatedAt.IsZero())

	second, err := repo.Save(ctx, entities.SaveDrawing{Elements: `[{"id":"b"}]`, AppState: `{"zoom":2}`, ProjectID: 1})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM drawings WHERE project_id = 1").Scan(&count).Error)
	assert.Equal(t, int64(1), count, "saving replaces the previous drawing")

	current, err := repo.Current(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second, current)
	assert.Equal(t, `[{"id":"b"}]`, current.Elements)
	assert.Equal(t, `{"zoom":2}`, current.AppState)
}

func TestRepository_Save_EmptyContent(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := repo.Save(ctx, entities.SaveDrawing{Elements: `[{"id":"a"}]`, AppState: `{}`, ProjectID: 1})
	require.NoError(t, err)

	_, err = repo.Save(ctx, entities.SaveDrawing{Elements: "[]", AppState: "{}", ProjectID: 1})
	require.NoError(t, err)

	current, err := repo.Current(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "[]", current.Elements)
}

func TestRepository_Save_IsolatedPerProject(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, db.Exec("INSERT INTO projects (name) VALUES ('Sketches')").Error)

	_, err := repo.Save(ctx, entities.SaveDrawing{Elements: "[1]", AppState: "{}", ProjectID: 1})
	require.NoError(t, err)
	_, err = repo.Save(ctx, entities.SaveDrawing{Elements: "[2]", AppState: "{}", ProjectID: 2})
	require.NoError(t, err)

	one, err := repo.Current(ctx, 1)
	require.NoError(t, err)
	two, err := repo.Current(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, "[1]", one.Elements)
	assert.Equal(t, "[2]", two.Elements)
}

func TestRepository_Save_UnknownProject(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Save(context.Background(), entities.SaveDrawing{Elements: "[]", AppState: "{}", ProjectID: 999})

	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestRepository_Current_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Current(context.Background(), 1)

	assert.True(t, errors.Is(err, database.ErrNotFound))
}
