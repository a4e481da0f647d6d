package tasks

import (
	"fmt"
	"strings"

	"github.com/mrlokans/missioncontrol/internal/database"
	"github.com/mrlokans/missioncontrol/internal/entities"
)

// Statement is SQL text with its positional arguments in order.
type Statement struct {
	SQL  string
	Args []any
}

// BuildUpdate assembles an UPDATE for the fields present in u, in the fixed
// order text, completed, duration. The statement targets one row and returns
// the full updated row. No fields is an error, not a no-op.
func BuildUpdate(id int64, u entities.TaskUpdate) (Statement, error) {
	if u.IsEmpty() {
		return Statement{}, database.ErrNoFieldsToUpdate
	}

	var sets []string
	var args []any

	if u.Text != nil {
		text := strings.TrimSpace(*u.Text)
		if text == "" {
			return Statement{}, fmt.Errorf("%w: task text must not be empty", database.ErrInvalidInput)
		}
		sets = append(sets, "text = ?")
		args = append(args, text)
	}
	if u.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, boolToInt(*u.Completed))
	}
	if u.Duration != nil {
		if *u.Duration <= 0 {
			return Statement{}, fmt.Errorf("%w: duration must be positive, got %d", database.ErrInvalidInput, *u.Duration)
		}
		sets = append(sets, "duration = ?")
		args = append(args, *u.Duration)
	}

	args = append(args, id)
	return Statement{
		SQL:  "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ? RETURNING " + taskColumns,
		Args: args,
	}, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
