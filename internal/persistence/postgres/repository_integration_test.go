//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"example.com/workout/internal/domain"
)

func setupRepository(t *testing.T) *Repository {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("workout"),
		postgrescontainer.WithUsername("workout"),
		postgrescontainer.WithPassword("workout"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))
	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	return NewRepository(pool)
}

func createUser(t *testing.T, repo *Repository, email string) domain.User {
	t.Helper()
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "hashed",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(context.Background(), user, nil))
	return user
}

func TestRepositoryDuplicateEmailRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	user := createUser(t, repo, "lifter@example.com")

	clash := domain.User{
		ID:           uuid.NewString(),
		Email:        "lifter@example.com",
		PasswordHash: "other",
		CreatedAt:    time.Now().UTC(),
	}
	seed := []domain.Exercise{{ID: uuid.NewString(), Name: "Squat", UserID: clash.ID}}
	err := repo.CreateUser(ctx, clash, seed)
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	// Neither the user nor its seed exercises were inserted.
	stored, err := repo.UserByID(ctx, clash.ID)
	require.NoError(t, err)
	require.Nil(t, stored)
	exercises, err := repo.ListExercises(ctx, clash.ID)
	require.NoError(t, err)
	require.Empty(t, exercises)

	original, err := repo.UserByEmail(ctx, "lifter@example.com")
	require.NoError(t, err)
	require.NotNil(t, original)
	require.Equal(t, user.ID, original.ID)
}

func TestRepositoryCreateUserSeedsExercisesAtomically(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        "seeded@example.com",
		PasswordHash: "hashed",
		CreatedAt:    time.Now().UTC(),
	}
	seed := make([]domain.Exercise, 0, 6)
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		seed = append(seed, domain.Exercise{ID: uuid.NewString(), Name: name, UserID: user.ID})
	}
	require.NoError(t, repo.CreateUser(ctx, user, seed))

	exercises, err := repo.ListExercises(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, exercises, 6)
}

func TestRepositoryDeleteCategoryUnlinksInOneTransaction(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)
	user := createUser(t, repo, "lifter@example.com")

	category := domain.Category{ID: uuid.NewString(), Name: "Legs", UserID: user.ID}
	require.NoError(t, repo.CreateCategory(ctx, category))

	linked := make([]string, 0, 3)
	for _, name := range []string{"Squat", "Leg Press", "Lunge"} {
		exercise := domain.Exercise{
			ID:         uuid.NewString(),
			Name:       name,
			CategoryID: &category.ID,
			UserID:     user.ID,
		}
		require.NoError(t, repo.CreateExercise(ctx, exercise))
		linked = append(linked, exercise.ID)
	}

	deleted, err := repo.DeleteCategory(ctx, user.ID, category.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	categories, err := repo.ListCategories(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, categories)

	for _, id := range linked {
		exercise, err := repo.ExerciseByID(ctx, user.ID, id)
		require.NoError(t, err)
		require.NotNil(t, exercise)
		require.Nil(t, exercise.CategoryID)
	}
}

func TestRepositoryDeleteCategoryNotOwnedLeavesLinksIntact(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)
	alice := createUser(t, repo, "alice@example.com")
	mallory := createUser(t, repo, "mallory@example.com")

	category := domain.Category{ID: uuid.NewString(), Name: "Push", UserID: alice.ID}
	require.NoError(t, repo.CreateCategory(ctx, category))
	exercise := domain.Exercise{
		ID:         uuid.NewString(),
		Name:       "Bench Press",
		CategoryID: &category.ID,
		UserID:     alice.ID,
	}
	require.NoError(t, repo.CreateExercise(ctx, exercise))

	deleted, err := repo.DeleteCategory(ctx, mallory.ID, category.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	// The rolled-back transaction must not have unlinked anything.
	stored, err := repo.ExerciseByID(ctx, alice.ID, exercise.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.CategoryID)
	require.Equal(t, category.ID, *stored.CategoryID)
}

func TestRepositoryOwnerScoping(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)
	alice := createUser(t, repo, "alice@example.com")
	mallory := createUser(t, repo, "mallory@example.com")

	exercise := domain.Exercise{ID: uuid.NewString(), Name: "Row", UserID: alice.ID}
	require.NoError(t, repo.CreateExercise(ctx, exercise))

	record := domain.Record{
		ID:           uuid.NewString(),
		Date:         "2024-01-01",
		ExerciseID:   exercise.ID,
		ExerciseName: exercise.Name,
		Weight:       60,
		Reps:         8,
		Sets:         3,
		Volume:       1440,
		UserID:       alice.ID,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateRecord(ctx, record))

	got, err := repo.ExerciseByID(ctx, mallory.ID, exercise.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	deleted, err := repo.DeleteRecord(ctx, mallory.ID, record.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	records, err := repo.ListRecords(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Row", records[0].ExerciseName)
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	files := []string{
		"../../../db/postgres/migrations/0001_init.up.sql",
	}

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	for _, rel := range files {
		path := resolvePath(t, rel)
		contents, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		_, execErr := pool.Exec(ctx, string(contents))
		require.NoError(t, execErr)
	}
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(500 * time.Millisecond)
	}
}
