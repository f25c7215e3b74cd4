// Package memory stores the workout tracker state in process memory for
// local development and tests.
package memory

import (
	"context"
	"sync"

	"example.com/workout/internal/domain"
)

// Repository implements domain.Repository over mutex-guarded maps. Multi-row
// writes hold the lock for their full duration, which gives the same
// all-or-nothing observability as a database transaction.
type Repository struct {
	mu         sync.RWMutex
	users      map[string]domain.User
	categories map[string]domain.Category
	exercises  map[string]domain.Exercise
	records    map[string]domain.Record
}

// NewRepository constructs an empty Repository.
func NewRepository() *Repository {
	return &Repository{
		users:      make(map[string]domain.User),
		categories: make(map[string]domain.Category),
		exercises:  make(map[string]domain.Exercise),
		records:    make(map[string]domain.Record),
	}
}

// CreateUser implements domain.Repository.
func (r *Repository) CreateUser(ctx context.Context, user domain.User, seed []domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}

	r.users[user.ID] = user
	for _, exercise := range seed {
		r.exercises[exercise.ID] = exercise
	}
	return nil
}

// UserByEmail implements domain.Repository.
func (r *Repository) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

// UserByID implements domain.Repository.
func (r *Repository) UserByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// CreateCategory implements domain.Repository.
func (r *Repository) CreateCategory(ctx context.Context, category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories[category.ID] = category
	return nil
}

// ListCategories implements domain.Repository.
func (r *Repository) ListCategories(ctx context.Context, ownerID string) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Category, 0)
	for _, category := range r.categories {
		if category.UserID == ownerID {
			out = append(out, category)
		}
	}
	return out, nil
}

// DeleteCategory unlinks dependent exercises before removing the category.
// Both happen under one lock, so no partial state is ever observable.
func (r *Repository) DeleteCategory(ctx context.Context, ownerID, categoryID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.categories[categoryID]
	if !ok || category.UserID != ownerID {
		return false, nil
	}

	for id, exercise := range r.exercises {
		if exercise.CategoryID != nil && *exercise.CategoryID == categoryID {
			exercise.CategoryID = nil
			r.exercises[id] = exercise
		}
	}
	delete(r.categories, categoryID)
	return true, nil
}

// CreateExercise implements domain.Repository.
func (r *Repository) CreateExercise(ctx context.Context, exercise domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.exercises[exercise.ID] = exercise
	return nil
}

// ListExercises implements domain.Repository.
func (r *Repository) ListExercises(ctx context.Context, ownerID string) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Exercise, 0)
	for _, exercise := range r.exercises {
		if exercise.UserID == ownerID {
			out = append(out, exercise)
		}
	}
	return out, nil
}

// ExerciseByID implements domain.Repository.
func (r *Repository) ExerciseByID(ctx context.Context, ownerID, exerciseID string) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exercise, ok := r.exercises[exerciseID]
	if !ok || exercise.UserID != ownerID {
		return nil, nil
	}
	return &exercise, nil
}

// SetExerciseCategory implements domain.Repository.
func (r *Repository) SetExerciseCategory(ctx context.Context, ownerID, exerciseID string, categoryID *string) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exercise, ok := r.exercises[exerciseID]
	if !ok || exercise.UserID != ownerID {
		return nil, nil
	}
	exercise.CategoryID = categoryID
	r.exercises[exerciseID] = exercise
	return &exercise, nil
}

// DeleteExercise implements domain.Repository.
func (r *Repository) DeleteExercise(ctx context.Context, ownerID, exerciseID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exercise, ok := r.exercises[exerciseID]
	if !ok || exercise.UserID != ownerID {
		return false, nil
	}
	delete(r.exercises, exerciseID)
	return true, nil
}

// CreateRecord implements domain.Repository.
func (r *Repository) CreateRecord(ctx context.Context, record domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.ID] = record
	return nil
}

// ListRecords implements domain.Repository.
func (r *Repository) ListRecords(ctx context.Context, ownerID string) ([]domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Record, 0)
	for _, record := range r.records {
		if record.UserID == ownerID {
			out = append(out, record)
		}
	}
	return out, nil
}

// DeleteRecord implements domain.Repository.
func (r *Repository) DeleteRecord(ctx context.Context, ownerID, recordID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[recordID]
	if !ok || record.UserID != ownerID {
		return false, nil
	}
	delete(r.records, recordID)
	return true, nil
}
