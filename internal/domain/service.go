// Package domain defines the business logic for the workout tracker.
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"example.com/workout/internal/observability"
)

// defaultExerciseNames are seeded for every new user, uncategorized. They
// match the vocabulary the original tracker shipped with.
var defaultExerciseNames = []string{
	"ベンチプレス",
	"スクワット",
	"デッドリフト",
	"懸垂",
	"ショルダープレス",
	"バーベルロー",
}

// Service orchestrates workout tracker workflows.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a user and seeds the default exercises atomically.
// passwordHash must already be hashed by the caller.
func (s *Service) Register(ctx context.Context, email, passwordHash string) (*User, error) {
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	seed := make([]Exercise, 0, len(defaultExerciseNames))
	for _, name := range defaultExerciseNames {
		seed = append(seed, Exercise{
			ID:     uuid.NewString(),
			Name:   name,
			UserID: user.ID,
		})
	}

	if err := s.repo.CreateUser(ctx, user, seed); err != nil {
		return nil, err
	}
	observability.RecordUserRegistered()
	return &user, nil
}

// UserByEmail fetches a user for credential checks.
func (s *Service) UserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UserByID resolves the acting user from a verified token subject.
func (s *Service) UserByID(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.UserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// CreateCategory adds a category owned by ownerID.
func (s *Service) CreateCategory(ctx context.Context, ownerID, name string) (*Category, error) {
	category := Category{
		ID:     uuid.NewString(),
		Name:   name,
		UserID: ownerID,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns all categories owned by ownerID.
func (s *Service) ListCategories(ctx context.Context, ownerID string) ([]Category, error) {
	return s.repo.ListCategories(ctx, ownerID)
}

// DeleteCategory removes a category after nulling the category link of every
// dependent exercise. Unlink and delete commit together or not at all.
func (s *Service) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	deleted, err := s.repo.DeleteCategory(ctx, ownerID, categoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// CreateExercise adds an exercise, optionally linked to a category.
func (s *Service) CreateExercise(ctx context.Context, ownerID, name string, categoryID *string) (*Exercise, error) {
	exercise := Exercise{
		ID:         uuid.NewString(),
		Name:       name,
		CategoryID: categoryID,
		UserID:     ownerID,
	}
	if err := s.repo.CreateExercise(ctx, exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

// ListExercises returns all exercises owned by ownerID.
func (s *Service) ListExercises(ctx context.Context, ownerID string) ([]Exercise, error) {
	return s.repo.ListExercises(ctx, ownerID)
}

// UpdateExerciseCategory changes the category link, the only mutable field.
func (s *Service) UpdateExerciseCategory(ctx context.Context, ownerID, exerciseID string, categoryID *string) (*Exercise, error) {
	exercise, err := s.repo.SetExerciseCategory(ctx, ownerID, exerciseID, categoryID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, ErrNotFound
	}
	return exercise, nil
}

// DeleteExercise removes an exercise. Records keep the snapshotted name, so
// deletion does not cascade to them.
func (s *Service) DeleteExercise(ctx context.Context, ownerID, exerciseID string) error {
	deleted, err := s.repo.DeleteExercise(ctx, ownerID, exerciseID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// CreateRecordInput captures the payload from the API layer.
type CreateRecordInput struct {
	OwnerID    string
	Date       string
	ExerciseID string
	Weight     float64
	Reps       int
	Sets       int
	Memo       string
}

// CreateRecord logs a workout record. The exercise lookup is owner-scoped:
// an exercise belonging to another user and a missing exercise both yield
// ErrNotFound. Volume and the exercise name are snapshotted at creation.
func (s *Service) CreateRecord(ctx context.Context, input CreateRecordInput) (*Record, error) {
	exercise, err := s.repo.ExerciseByID(ctx, input.OwnerID, input.ExerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, ErrNotFound
	}

	sets := input.Sets
	if sets <= 0 {
		sets = 1
	}

	record := Record{
		ID:           uuid.NewString(),
		Date:         input.Date,
		ExerciseID:   exercise.ID,
		ExerciseName: exercise.Name,
		Weight:       input.Weight,
		Reps:         input.Reps,
		Sets:         sets,
		Memo:         input.Memo,
		Volume:       input.Weight * float64(input.Reps) * float64(sets),
		UserID:       input.OwnerID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}
	observability.RecordWorkoutPersisted(record.CreatedAt)
	return &record, nil
}

// ListRecords returns all records owned by ownerID.
func (s *Service) ListRecords(ctx context.Context, ownerID string) ([]Record, error) {
	return s.repo.ListRecords(ctx, ownerID)
}

// DeleteRecord removes a record.
func (s *Service) DeleteRecord(ctx context.Context, ownerID, recordID string) error {
	deleted, err := s.repo.DeleteRecord(ctx, ownerID, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Stats recomputes aggregate metrics over the owner's full record set on
// every call. Workouts count distinct dates, total volume truncates to an
// integer, and max weight is zero for an empty set.
func (s *Service) Stats(ctx context.Context, ownerID string) (Stats, error) {
	records, err := s.repo.ListRecords(ctx, ownerID)
	if err != nil {
		return Stats{}, err
	}

	dates := make(map[string]struct{}, len(records))
	var totalVolume float64
	var maxWeight float64
	for _, record := range records {
		dates[record.Date] = struct{}{}
		totalVolume += record.Volume
		if record.Weight > maxWeight {
			maxWeight = record.Weight
		}
	}

	return Stats{
		TotalWorkouts: len(dates),
		TotalVolume:   int64(totalVolume),
		MaxWeight:     maxWeight,
	}, nil
}
