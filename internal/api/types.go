package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/workout/internal/domain"
)

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate ensures request correctness.
func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate ensures request correctness.
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// TokenResponse carries the bearer token issued at login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CategoryRequest is the payload for POST /categories.
type CategoryRequest struct {
	Name string `json:"name"`
}

// Validate ensures request correctness.
func (r CategoryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// ExerciseRequest is the payload for POST /exercises.
type ExerciseRequest struct {
	Name       string  `json:"name"`
	CategoryID *string `json:"category_id"`
}

// Validate ensures request correctness.
func (r ExerciseRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// ExerciseUpdateRequest changes an exercise's category link; null unlinks.
type ExerciseUpdateRequest struct {
	CategoryID *string `json:"category_id"`
}

// RecordRequest is the payload for POST /records. Sets defaults to 1 when
// omitted or zero.
type RecordRequest struct {
	Date       string  `json:"date"`
	ExerciseID string  `json:"exercise_id"`
	Weight     float64 `json:"weight"`
	Reps       int     `json:"reps"`
	Sets       int     `json:"sets"`
	Memo       string  `json:"memo"`
}

// Validate ensures request correctness.
func (r RecordRequest) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("date is required")
	}
	if strings.TrimSpace(r.ExerciseID) == "" {
		return errors.New("exercise_id is required")
	}
	if r.Weight < 0 {
		return errors.New("weight must be >= 0")
	}
	if r.Reps < 0 {
		return errors.New("reps must be >= 0")
	}
	if r.Sets < 0 {
		return errors.New("sets must be >= 0")
	}
	return nil
}

// UserView exposes the caller-visible subset of a user.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryView is the response shape for a category.
type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ExerciseView is the response shape for an exercise.
type ExerciseView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CategoryID *string `json:"category_id"`
}

// RecordView is the response shape for a workout record.
type RecordView struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	ExerciseID   string    `json:"exercise_id"`
	ExerciseName string    `json:"exercise_name"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	Sets         int       `json:"sets"`
	Memo         string    `json:"memo,omitempty"`
	Volume       float64   `json:"volume"`
	CreatedAt    time.Time `json:"created_at"`
}

// StatsView is the response shape for GET /stats.
type StatsView struct {
	TotalWorkouts int     `json:"total_workouts"`
	TotalVolume   int64   `json:"total_volume"`
	MaxWeight     float64 `json:"max_weight"`
}

func toUserView(user domain.User) UserView {
	return UserView{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt}
}

func toCategoryView(category domain.Category) CategoryView {
	return CategoryView{ID: category.ID, Name: category.Name}
}

func toExerciseView(exercise domain.Exercise) ExerciseView {
	return ExerciseView{ID: exercise.ID, Name: exercise.Name, CategoryID: exercise.CategoryID}
}

func toRecordView(record domain.Record) RecordView {
	return RecordView{
		ID:           record.ID,
		Date:         record.Date,
		ExerciseID:   record.ExerciseID,
		ExerciseName: record.ExerciseName,
		Weight:       record.Weight,
		Reps:         record.Reps,
		Sets:         record.Sets,
		Memo:         record.Memo,
		Volume:       record.Volume,
		CreatedAt:    record.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

// writeUnauthorized adds the bearer challenge header required on 401s.
func writeUnauthorized(w http.ResponseWriter, code, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, code, detail)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
