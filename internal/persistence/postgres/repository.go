// Package postgres provides the pgx-backed repository for the workout tracker.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/workout/internal/domain"
)

const uniqueViolation = "23505"

// Repository provides Postgres-backed persistence for users, categories,
// exercises and workout records. Every owner-scoped statement carries the
// user id in its WHERE clause.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateUser persists the user and its seed exercises in a single
// transaction. A unique violation on the email column maps to
// domain.ErrDuplicateEmail and leaves no rows behind.
func (r *Repository) CreateUser(ctx context.Context, user domain.User, seed []domain.Exercise) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const insertUser = `INSERT INTO users (id, email, password_hash, created_at) VALUES ($1,$2,$3,$4)`
	if _, err = tx.Exec(ctx, insertUser, user.ID, user.Email, user.PasswordHash, user.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			err = domain.ErrDuplicateEmail
		}
		return err
	}

	const insertExercise = `INSERT INTO exercises (id, name, category_id, user_id) VALUES ($1,$2,$3,$4)`
	for _, exercise := range seed {
		if _, err = tx.Exec(ctx, insertExercise, exercise.ID, exercise.Name, exercise.CategoryID, exercise.UserID); err != nil {
			return err
		}
	}

	err = tx.Commit(ctx)
	return err
}

// UserByEmail returns (nil, nil) when no user has the email.
func (r *Repository) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE email=$1`

	row := r.pool.QueryRow(ctx, query, email)
	var user domain.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UserByID returns (nil, nil) when the user does not exist.
func (r *Repository) UserByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	var user domain.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateCategory implements domain.Repository.
func (r *Repository) CreateCategory(ctx context.Context, category domain.Category) error {
	const stmt = `INSERT INTO categories (id, name, user_id) VALUES ($1,$2,$3)`
	_, err := r.pool.Exec(ctx, stmt, category.ID, category.Name, category.UserID)
	return err
}

// ListCategories implements domain.Repository.
func (r *Repository) ListCategories(ctx context.Context, ownerID string) ([]domain.Category, error) {
	const query = `SELECT id, name, user_id FROM categories WHERE user_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.UserID); err != nil {
			return nil, err
		}
		out = append(out, category)
	}
	return out, rows.Err()
}

// DeleteCategory nulls the category link of dependent exercises and deletes
// the category in one transaction. When the category is absent or owned by
// someone else the transaction rolls back, undoing the unlink as well.
func (r *Repository) DeleteCategory(ctx context.Context, ownerID, categoryID string) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	const unlink = `UPDATE exercises SET category_id=NULL WHERE category_id=$1 AND user_id=$2`
	if _, err := tx.Exec(ctx, unlink, categoryID, ownerID); err != nil {
		return false, err
	}

	const del = `DELETE FROM categories WHERE id=$1 AND user_id=$2`
	tag, err := tx.Exec(ctx, del, categoryID, ownerID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// CreateExercise implements domain.Repository.
func (r *Repository) CreateExercise(ctx context.Context, exercise domain.Exercise) error {
	const stmt = `INSERT INTO exercises (id, name, category_id, user_id) VALUES ($1,$2,$3,$4)`
	_, err := r.pool.Exec(ctx, stmt, exercise.ID, exercise.Name, exercise.CategoryID, exercise.UserID)
	return err
}

// ListExercises implements domain.Repository.
func (r *Repository) ListExercises(ctx context.Context, ownerID string) ([]domain.Exercise, error) {
	const query = `SELECT id, name, category_id, user_id FROM exercises WHERE user_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Exercise, 0)
	for rows.Next() {
		var exercise domain.Exercise
		if err := rows.Scan(&exercise.ID, &exercise.Name, &exercise.CategoryID, &exercise.UserID); err != nil {
			return nil, err
		}
		out = append(out, exercise)
	}
	return out, rows.Err()
}

// ExerciseByID returns (nil, nil) when the exercise is absent or not owned
// by ownerID.
func (r *Repository) ExerciseByID(ctx context.Context, ownerID, exerciseID string) (*domain.Exercise, error) {
	const query = `SELECT id, name, category_id, user_id FROM exercises WHERE id=$1 AND user_id=$2`

	row := r.pool.QueryRow(ctx, query, exerciseID, ownerID)
	var exercise domain.Exercise
	if err := row.Scan(&exercise.ID, &exercise.Name, &exercise.CategoryID, &exercise.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &exercise, nil
}

// SetExerciseCategory updates the category link and returns the updated row.
func (r *Repository) SetExerciseCategory(ctx context.Context, ownerID, exerciseID string, categoryID *string) (*domain.Exercise, error) {
	const stmt = `UPDATE exercises SET category_id=$1 WHERE id=$2 AND user_id=$3 RETURNING id, name, category_id, user_id`

	row := r.pool.QueryRow(ctx, stmt, categoryID, exerciseID, ownerID)
	var exercise domain.Exercise
	if err := row.Scan(&exercise.ID, &exercise.Name, &exercise.CategoryID, &exercise.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &exercise, nil
}

// DeleteExercise implements domain.Repository. Records are untouched: they
// carry their own snapshot of the exercise name.
func (r *Repository) DeleteExercise(ctx context.Context, ownerID, exerciseID string) (bool, error) {
	const stmt = `DELETE FROM exercises WHERE id=$1 AND user_id=$2`

	tag, err := r.pool.Exec(ctx, stmt, exerciseID, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CreateRecord implements domain.Repository.
func (r *Repository) CreateRecord(ctx context.Context, record domain.Record) error {
	const stmt = `INSERT INTO workout_records (id, date, exercise_id, exercise_name, weight, reps, sets, memo, volume, user_id, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	_, err := r.pool.Exec(ctx, stmt,
		record.ID,
		record.Date,
		record.ExerciseID,
		record.ExerciseName,
		record.Weight,
		record.Reps,
		record.Sets,
		record.Memo,
		record.Volume,
		record.UserID,
		record.CreatedAt,
	)
	return err
}

// ListRecords implements domain.Repository.
func (r *Repository) ListRecords(ctx context.Context, ownerID string) ([]domain.Record, error) {
	const query = `SELECT id, date, exercise_id, exercise_name, weight, reps, sets, memo, volume, user_id, created_at
        FROM workout_records WHERE user_id=$1 ORDER BY date, id`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Record, 0)
	for rows.Next() {
		var record domain.Record
		if err := rows.Scan(
			&record.ID,
			&record.Date,
			&record.ExerciseID,
			&record.ExerciseName,
			&record.Weight,
			&record.Reps,
			&record.Sets,
			&record.Memo,
			&record.Volume,
			&record.UserID,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// DeleteRecord implements domain.Repository.
func (r *Repository) DeleteRecord(ctx context.Context, ownerID, recordID string) (bool, error) {
	const stmt = `DELETE FROM workout_records WHERE id=$1 AND user_id=$2`

	tag, err := r.pool.Exec(ctx, stmt, recordID, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
