package menu

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

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func menuNames(menus []Menu) []string {
	names := make([]string, len(menus))
	for i, m := range menus {
		names[i] = m.Name
	}
	return names
}

func TestDBRepository_MenuCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewDBRepository(testutil.NewDB(t))

	push, err := repo.Create(ctx, CreateInput{Name: " Push ", Description: strPtr("chest and triceps")})
	require.NoError(t, err)
	assert.Equal(t, "Push", push.Name)
	assert.Nil(t, push.LastCompletedAt)

	pull, err := repo.Create(ctx, CreateInput{Name: "Pull", Description: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, pull.Description)

	_, err = repo.Create(ctx, CreateInput{Name: "  "})
	assert.True(t, validation.IsValidationError(err))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pull", "Push"}, menuNames(all), "newest first")

	require.NoError(t, repo.Update(ctx, push.ID, UpdateInput{Name: strPtr("Push A"), Description: strPtr("")}))
	got, err := repo.FindByID(ctx, push.ID)
	require.NoError(t, err)
	assert.Equal(t, "Push A", got.Name)
	assert.Nil(t, got.Description)

	byName, err := repo.FindByName(ctx, "Pull")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, pull.ID, byName.ID)
	none, err := repo.FindByName(ctx, "Legs")
	require.NoError(t, err)
	assert.Nil(t, none)

	assert.NoError(t, repo.Update(ctx, 999, UpdateInput{}))
	assert.ErrorIs(t, repo.Update(ctx, 999, UpdateInput{Name: strPtr("x")}), ErrNotFound)

	require.NoError(t, repo.Delete(ctx, pull.ID))
	_, err = repo.FindByID(ctx, pull.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, pull.ID), ErrNotFound)
}

func TestDBRepository_Items(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewDBRepository(db)

	squat := testutil.CreateExercise(t, db, "Squat", "legs")
	bench := testutil.CreateExercise(t, db, "Bench Press", "chest")
	row := testutil.CreateExercise(t, db, "Barbell Row", "back")
	m, err := repo.Create(ctx, CreateInput{Name: "Full body"})
	require.NoError(t, err)

	first, err := repo.AddItem(ctx, m.ID, squat)
	require.NoError(t, err)
	assert.Equal(t, 0, first.SortOrder)
	second, err := repo.AddItem(ctx, m.ID, bench)
	require.NoError(t, err)
	assert.Equal(t, 1, second.SortOrder)
	third, err := repo.AddItem(ctx, m.ID, row)
	require.NoError(t, err)
	assert.Equal(t, 2, third.SortOrder)

	count, err := repo.ItemCount(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, repo.Reorder(ctx, m.ID, []OrderUpdate{
		{ItemID: third.ID, SortOrder: 0},
		{ItemID: first.ID, SortOrder: 1},
		{ItemID: second.ID, SortOrder: 2},
	}))
	items, err := repo.Items(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Barbell Row", items[0].ExerciseName)
	assert.Equal(t, "Squat", items[1].ExerciseName)
	assert.Equal(t, "Bench Press", items[2].ExerciseName)

	err = repo.Reorder(ctx, m.ID, []OrderUpdate{{ItemID: first.ID, SortOrder: 5}, {ItemID: 999, SortOrder: 0}})
	assert.ErrorIs(t, err, ErrItemNotFound)
	items, err = repo.Items(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Squat", items[1].ExerciseName, "failed reorder rolls back")

	require.NoError(t, repo.RemoveItem(ctx, third.ID))
	assert.ErrorIs(t, repo.RemoveItem(ctx, third.ID), ErrItemNotFound)

	fourth, err := repo.AddItem(ctx, m.ID, row)
	require.NoError(t, err)
	assert.Equal(t, 3, fourth.SortOrder, "max plus one after removal")

	require.NoError(t, repo.Delete(ctx, m.ID))
	count, err = repo.ItemCount(ctx, m.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDBRepository_UpdateGoal(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewDBRepository(db)

	squat := testutil.CreateExercise(t, db, "Squat", "legs")
	menuID := testutil.CreateMenu(t, db, "Legs")
	item, err := repo.AddItem(ctx, menuID, squat)
	require.NoError(t, err)

	tests := []struct {
		name     string
		goal     Goal
		want     string
		wantGoal Goal
	}{
		{
			name:     "sets and reps",
			goal:     Goal{Sets: intPtr(5), Reps: intPtr(5)},
			want:     "5 sets × 5 reps",
			wantGoal: Goal{Sets: intPtr(5), Reps: intPtr(5)},
		},
		{
			name:     "text clears numbers",
			goal:     Goal{Sets: intPtr(3), Text: "  pyramid to heavy single "},
			want:     "pyramid to heavy single",
			wantGoal: Goal{Text: "pyramid to heavy single"},
		},
		{
			name:     "numbers clear text",
			goal:     Goal{Sets: intPtr(3), Duration: intPtr(45)},
			want:     "3 sets × 45s",
			wantGoal: Goal{Sets: intPtr(3), Duration: intPtr(45)},
		},
		{
			name:     "empty goal clears everything",
			goal:     Goal{Text: "   "},
			want:     "",
			wantGoal: Goal{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, repo.UpdateGoal(ctx, item.ID, tt.goal))
			got, err := repo.FindItem(ctx, item.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatGoal(*got))
			assert.Equal(t, tt.wantGoal, GoalOf(*got))
		})
	}

	err = repo.UpdateGoal(ctx, item.ID, Goal{Reps: intPtr(5), Duration: intPtr(30)})
	assert.True(t, validation.IsValidationError(err))
	err = repo.UpdateGoal(ctx, item.ID, Goal{Sets: intPtr(0)})
	assert.True(t, validation.IsValidationError(err))
	assert.ErrorIs(t, repo.UpdateGoal(ctx, 999, Goal{}), ErrItemNotFound)
	_, err = repo.FindItem(ctx, 999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDBRepository_Completion(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewDBRepository(db)

	push := testutil.CreateMenu(t, db, "Push")
	pull := testutil.CreateMenu(t, db, "Pull")
	testutil.CreateMenu(t, db, "Legs")

	at := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	require.NoError(t, repo.MarkCompleted(ctx, push, at))
	require.NoError(t, repo.MarkCompleted(ctx, pull, at.Add(24*time.Hour)))
	assert.ErrorIs(t, repo.MarkCompleted(ctx, 999, at), ErrNotFound)

	recent, err := repo.RecentlyCompleted(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pull", "Push"}, menuNames(recent))
	require.NotNil(t, recent[1].LastCompletedAt)
	assert.True(t, recent[1].LastCompletedAt.Equal(at))

	limited, err := repo.RecentlyCompleted(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pull"}, menuNames(limited))
}

func TestDBRepository_ItemCount_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM training_menu_items WHERE menu_id = \\?").
		WithArgs(int64(4)).
		WillReturnError(fmt.Errorf("database is locked"))

	repo := NewDBRepository(sqlx.NewDb(db, "sqlite"))
	_, err = repo.ItemCount(context.Background(), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormatWithGoal(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{name: "no goal", item: Item{}, want: "Squat"},
		{name: "sets only", item: Item{TargetSets: intPtr(4)}, want: "Squat (4 sets)"},
		{name: "reps without sets", item: Item{TargetReps: intPtr(8)}, want: "Squat"},
		{name: "text", item: Item{TargetSets: intPtr(4), TargetText: strPtr("heavy")}, want: "Squat (heavy)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWithGoal("Squat", tt.item))
		})
	}
}
