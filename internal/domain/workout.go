package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a resource does not exist or is not owned
	// by the acting user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// User is the registered account that owns all other entities.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Category groups exercises for a single user.
type Category struct {
	ID     string
	Name   string
	UserID string
}

// Exercise is a named movement, optionally linked to one of the owner's
// categories. The category link is the only mutable field.
type Exercise struct {
	ID         string
	Name       string
	CategoryID *string
	UserID     string
}

// Record is one logged set group. ExerciseName and Volume are write-time
// snapshots: they are computed once at creation and never re-derived, so a
// record survives renames and deletion of its exercise unchanged.
type Record struct {
	ID           string
	Date         string
	ExerciseID   string
	ExerciseName string
	Weight       float64
	Reps         int
	Sets         int
	Memo         string
	Volume       float64
	UserID       string
	CreatedAt    time.Time
}

// Stats aggregates a user's full record set.
type Stats struct {
	TotalWorkouts int
	TotalVolume   int64
	MaxWeight     float64
}

// Repository captures persistence operations. Every owner-scoped call takes
// the acting user's id as an explicit parameter so the owner predicate cannot
// be omitted by a new caller. Lookups report absence as (nil, nil); deletes
// report it as a false first return.
type Repository interface {
	// CreateUser persists the user and its seed exercises in one
	// transaction. Returns ErrDuplicateEmail if the email is taken.
	CreateUser(ctx context.Context, user User, seed []Exercise) error
	UserByEmail(ctx context.Context, email string) (*User, error)
	UserByID(ctx context.Context, id string) (*User, error)

	CreateCategory(ctx context.Context, category Category) error
	ListCategories(ctx context.Context, ownerID string) ([]Category, error)
	// DeleteCategory unlinks dependent exercises and removes the category
	// in one transaction.
	DeleteCategory(ctx context.Context, ownerID, categoryID string) (bool, error)

	CreateExercise(ctx context.Context, exercise Exercise) error
	ListExercises(ctx context.Context, ownerID string) ([]Exercise, error)
	ExerciseByID(ctx context.Context, ownerID, exerciseID string) (*Exercise, error)
	SetExerciseCategory(ctx context.Context, ownerID, exerciseID string, categoryID *string) (*Exercise, error)
	DeleteExercise(ctx context.Context, ownerID, exerciseID string) (bool, error)

	CreateRecord(ctx context.Context, record Record) error
	ListRecords(ctx context.Context, ownerID string) ([]Record, error)
	DeleteRecord(ctx context.Context, ownerID, recordID string) (bool, error)
}
