package exercise

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/liftlog/internal/testutil"
	"github.com/at-ishikawa/liftlog/internal/validation"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestDBRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewDBRepository(testutil.NewDB(t))

	created, err := repo.Create(ctx, CreateInput{
		Name:        "  Front Squat ",
		Description: strPtr("quad focused"),
		BodyParts:   []BodyPart{BodyPartLegs, BodyPartCore},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Front Squat", created.Name)
	assert.True(t, created.IsActive)
	require.NotNil(t, created.Category)
	assert.Equal(t, "legs", *created.Category)
	assert.Equal(t, []BodyPart{BodyPartLegs, BodyPartCore}, created.BodyParts)

	_, err = repo.Create(ctx, CreateInput{Name: "Bench Press", BodyParts: []BodyPart{BodyPartChest}})
	require.NoError(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Bench Press", all[0].Name, "ordered by name")
	assert.Equal(t, "Front Squat", all[1].Name)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "quad focused", *got.Description)
	assert.Equal(t, []BodyPart{BodyPartLegs, BodyPartCore}, got.BodyParts)

	parts, err := repo.BodyPartsFor(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []BodyPart{BodyPartLegs, BodyPartCore}, parts)

	byName, err := repo.FindByName(ctx, "Bench Press")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, []BodyPart{BodyPartChest}, byName.BodyParts)

	missing, err := repo.FindByName(ctx, "Nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDBRepository_Create_Validation(t *testing.T) {
	repo := NewDBRepository(testutil.NewDB(t))

	tests := []struct {
		name  string
		input CreateInput
	}{
		{name: "blank name", input: CreateInput{Name: "   "}},
		{name: "unknown body part", input: CreateInput{Name: "Hip Thrust", BodyParts: []BodyPart{"glutes"}}},
		{name: "duplicate body part", input: CreateInput{Name: "Push Up", BodyParts: []BodyPart{BodyPartChest, BodyPartChest}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, validation.IsValidationError(err))
		})
	}
}

func TestDBRepository_FindByBodyPart(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewDBRepository(db)

	squat := testutil.CreateExercise(t, db, "Squat", "legs")
	testutil.CreateExercise(t, db, "Deadlift", "back", "legs")
	testutil.CreateExercise(t, db, "Bench Press", "chest")
	require.NoError(t, repo.Update(ctx, squat, UpdateInput{IsActive: boolPtr(false)}))

	tests := []struct {
		name string
		part BodyPart
		want []string
	}{
		{name: "legs excludes inactive", part: BodyPartLegs, want: []string{"Deadlift"}},
		{name: "chest", part: BodyPartChest, want: []string{"Bench Press"}},
		{name: "no filter returns all active", part: "", want: []string{"Bench Press", "Deadlift"}},
		{name: "nothing tagged", part: BodyPartCardio, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindByBodyPart(ctx, tt.part)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, e := range got {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestDBRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewDBRepository(db)

	created, err := repo.Create(ctx, CreateInput{
		Name:        "Row",
		Description: strPtr("cable"),
		BodyParts:   []BodyPart{BodyPartBack},
	})
	require.NoError(t, err)

	t.Run("name only keeps body parts", func(t *testing.T) {
		require.NoError(t, repo.Update(ctx, created.ID, UpdateInput{Name: strPtr("Seated Row")}))
		got, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Seated Row", got.Name)
		assert.Equal(t, "cable", *got.Description)
		assert.Equal(t, []BodyPart{BodyPartBack}, got.BodyParts)
	})

	t.Run("body parts are replaced", func(t *testing.T) {
		require.NoError(t, repo.Update(ctx, created.ID, UpdateInput{BodyParts: []BodyPart{BodyPartArms, BodyPartBack}}))
		got, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []BodyPart{BodyPartArms, BodyPartBack}, got.BodyParts)
		assert.Equal(t, "arms", *got.Category)
	})

	t.Run("empty description clears it", func(t *testing.T) {
		require.NoError(t, repo.Update(ctx, created.ID, UpdateInput{Description: strPtr("")}))
		got, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
	})

	t.Run("duplicate body parts are rejected", func(t *testing.T) {
		err := repo.Update(ctx, created.ID, UpdateInput{BodyParts: []BodyPart{BodyPartBack, BodyPartBack}})
		require.Error(t, err)
		assert.True(t, validation.IsValidationError(err))
		got, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []BodyPart{BodyPartArms, BodyPartBack}, got.BodyParts)
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Update(ctx, 999, UpdateInput{}))
	})

	t.Run("missing exercise", func(t *testing.T) {
		err := repo.Update(ctx, 999, UpdateInput{Name: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDBRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewDBRepository(db)

	squat := testutil.CreateExercise(t, db, "Squat", "legs")
	bench := testutil.CreateExercise(t, db, "Bench Press", "chest")
	sessionID := testutil.CreateSession(t, db, squat, time.Now(), testutil.WithRepsAndSets(5, 5))
	testutil.CreateSet(t, db, sessionID, 1, 5, 100)
	testutil.CreateSession(t, db, bench, time.Now(), testutil.WithRepsAndSets(8, 3))
	menuID := testutil.CreateMenu(t, db, "Full body", squat, bench)

	require.NoError(t, repo.Delete(ctx, squat))

	counts := map[string]string{
		"workout_sessions":    "SELECT COUNT(*) FROM workout_sessions",
		"workout_sets":        "SELECT COUNT(*) FROM workout_sets",
		"exercise_body_parts": "SELECT COUNT(*) FROM exercise_body_parts",
	}
	want := map[string]int{"workout_sessions": 1, "workout_sets": 0, "exercise_body_parts": 1}
	for table, query := range counts {
		var n int
		require.NoError(t, db.Get(&n, query))
		assert.Equal(t, want[table], n, table)
	}

	var items int
	require.NoError(t, db.Get(&items, "SELECT COUNT(*) FROM training_menu_items WHERE menu_id = ?", menuID))
	assert.Equal(t, 1, items, "menu items of the deleted exercise cascade")

	assert.ErrorIs(t, repo.Delete(ctx, squat), ErrNotFound)
}

func TestDBRepository_FindAll_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, category, description, created_at, is_active FROM exercises ORDER BY name ASC").
		WillReturnError(fmt.Errorf("connection refused"))

	repo := NewDBRepository(sqlx.NewDb(db, "sqlite"))
	_, err = repo.FindAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_Create_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO exercises \\(name, category, description, is_active\\) VALUES \\(\\?, \\?, \\?, 1\\)").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO exercise_body_parts \\(exercise_id, body_part\\) VALUES \\(\\?, \\?\\)").
		WithArgs(int64(7), "legs").
		WillReturnError(fmt.Errorf("disk full"))
	mock.ExpectRollback()

	repo := NewDBRepository(sqlx.NewDb(db, "sqlite"))
	_, err = repo.Create(context.Background(), CreateInput{Name: "Squat", BodyParts: []BodyPart{BodyPartLegs}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBodyPart_Info(t *testing.T) {
	assert.Equal(t, "Chest", BodyPartChest.Info().Label)
	assert.True(t, BodyPartCardio.IsKnown())
	assert.False(t, BodyPart("glutes").IsKnown())
	assert.Equal(t, "glutes", BodyPart("glutes").Info().Label)
}
