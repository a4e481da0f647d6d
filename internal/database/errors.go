package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNoWritableLocation means no candidate directory could hold the database file.
	ErrNoWritableLocation = errors.New("no writable location for database")
	// ErrConnectionFailed means every connection attempt failed.
	ErrConnectionFailed = errors.New("database connection failed")
	// ErrSchema means the connection opened but the schema could not be provisioned.
	ErrSchema = errors.New("database schema error")

	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrNotFound         = errors.New("record not found")
	ErrLastProject      = errors.New("cannot delete the last project")
	ErrProjectNameTaken = errors.New("project name already exists")
	ErrInvalidInput     = errors.New("invalid input")
)

// PathAttempt records why a candidate data directory was rejected.
type PathAttempt struct {
	Dir string
	Err error
}

// NoWritableLocationError lists every directory that was tried, in order.
type NoWritableLocationError struct {
	Attempts []PathAttempt
}

func (e *NoWritableLocationError) Error() string {
	if len(e.Attempts) == 0 {
		return ErrNoWritableLocation.Error() + ": no candidate directories"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s (%v)", a.Dir, a.Err))
	}
	return fmt.Sprintf("%s: tried %s", ErrNoWritableLocation, strings.Join(parts, "; "))
}

func (e *NoWritableLocationError) Is(target error) bool {
	return target == ErrNoWritableLocation
}

// ConnectionFailedError carries the last driver error after all attempts were used.
type ConnectionFailedError struct {
	DSN      string
	Attempts int
	Err      error
}

func (e *ConnectionFailedError) Error() string {
	return fmt.Sprintf("%s after %d attempt(s) to %s: %v", ErrConnectionFailed, e.Attempts, e.DSN, e.Err)
}

func (e *ConnectionFailedError) Unwrap() error { return e.Err }

func (e *ConnectionFailedError) Is(target error) bool {
	return target == ErrConnectionFailed
}

// SchemaError names the provisioning step that failed.
type SchemaError struct {
	Step string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: failed to %s: %v", ErrSchema, e.Step, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// IsInitError reports whether err came from bringing the connection up
// rather than from a query.
func IsInitError(err error) bool {
	return errors.Is(err, ErrNoWritableLocation) ||
		errors.Is(err, ErrConnectionFailed) ||
		errors.Is(err, ErrSchema)
}

// IsUniqueViolation reports whether err is a sqlite UNIQUE constraint failure.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// IsForeignKeyViolation reports whether err is a sqlite FOREIGN KEY constraint failure.
func IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
