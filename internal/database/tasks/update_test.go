package tasks

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/missioncontrol/internal/database"
	"github.com/mrlokans/missioncontrol/internal/entities"
)

func render(stmt Statement) []byte {
	return []byte(fmt.Sprintf("%s\nargs: %v\n", stmt.SQL, stmt.Args))
}

func TestBuildUpdate_Golden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))

	text := "  buy milk\n"
	done := true
	undone := false
	duration := 50

	cases := []struct {
		name   string
		update entities.TaskUpdate
	}{
		{"text_only", entities.TaskUpdate{Text: &text}},
		{"completed_only", entities.TaskUpdate{Completed: &done}},
		{"duration_only", entities.TaskUpdate{Duration: &duration}},
		{"all_fields", entities.TaskUpdate{Text: &text, Completed: &undone, Duration: &duration}},
		{"completed_and_duration", entities.TaskUpdate{Duration: &duration, Completed: &done}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stmt, err := BuildUpdate(7, tc.update)
			require.NoError(t, err)
			g.Assert(t, tc.name, render(stmt))
		})
	}
}

func TestBuildUpdate_Errors(t *testing.T) {
	t.Run("no fields", func(t *testing.T) {
		stmt, err := BuildUpdate(7, entities.TaskUpdate{})

		assert.True(t, errors.Is(err, database.ErrNoFieldsToUpdate))
		assert.Empty(t, stmt.SQL)
	})

	t.Run("blank text", func(t *testing.T) {
		blank := " "

		_, err := BuildUpdate(7, entities.TaskUpdate{Text: &blank})

		assert.True(t, errors.Is(err, database.ErrInvalidInput))
	})

	t.Run("non-positive duration", func(t *testing.T) {
		zero := 0

		_, err := BuildUpdate(7, entities.TaskUpdate{Duration: &zero})

		assert.True(t, errors.Is(err, database.ErrInvalidInput))
	})
}

func TestBuildUpdate_PlaceholdersMatchArgs(t *testing.T) {
	text := "x"
	done := true
	duration := 1

	stmt, err := BuildUpdate(3, entities.TaskUpdate{Text: &text, Completed: &done, Duration: &duration})
	require.NoError(t, err)

	placeholders := 0
	for _, r := range stmt.SQL {
		if r == '?' {
			placeholders++
		}
	}
	assert.Equal(t, placeholders, len(stmt.Args))
	assert.Equal(t, int64(3), stmt.Args[len(stmt.Args)-1], "id binds last")
}
