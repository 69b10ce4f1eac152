package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_progress "github.com/at-ishikawa/liftlog/internal/mocks/progress"
	"github.com/at-ishikawa/liftlog/internal/progress"
)

func newFileService(t *testing.T) (*Service, progress.Store) {
	t.Helper()
	store, err := progress.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewService(store), store
}

func TestService_Load(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   Settings
	}{
		{name: "nothing saved", want: Default()},
		{name: "unreadable", stored: "{", want: Default()},
		{
			name:   "saved",
			stored: `{"restTimerEnabled":false,"restTimerMinutes":2,"restTimerSeconds":0}`,
			want:   Settings{RestTimerEnabled: false, RestTimerMinutes: 2, RestTimerSeconds: 0},
		},
		{
			name:   "missing fields keep defaults",
			stored: `{"restTimerMinutes":3}`,
			want:   Settings{RestTimerEnabled: true, RestTimerMinutes: 3, RestTimerSeconds: 30},
		},
		{
			name:   "out of range values are clamped",
			stored: `{"restTimerEnabled":true,"restTimerMinutes":15,"restTimerSeconds":-5}`,
			want:   Settings{RestTimerEnabled: true, RestTimerMinutes: 9, RestTimerSeconds: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			service, store := newFileService(t)
			if tt.stored != "" {
				require.NoError(t, store.Set(ctx, Key, []byte(tt.stored)))
			}
			got, err := service.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	service, _ := newFileService(t)

	got, err := service.ToggleRestTimer(ctx)
	require.NoError(t, err)
	assert.False(t, got.RestTimerEnabled)

	got, err = service.SetRestTime(ctx, 12, 75)
	require.NoError(t, err)
	assert.Equal(t, Settings{RestTimerEnabled: false, RestTimerMinutes: 9, RestTimerSeconds: 59}, got)

	got, err = service.ToggleRestTimer(ctx)
	require.NoError(t, err)
	assert.True(t, got.RestTimerEnabled)

	loaded, err := service.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, loaded)
	assert.Equal(t, 9*time.Minute+59*time.Second, loaded.RestDuration())
}

func TestService_StoreErrors(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := mock_progress.NewMockStore(ctrl)
	service := NewService(store)

	store.EXPECT().Get(gomock.Any(), Key).Return(nil, errors.New("connection refused"))
	_, err := service.ToggleRestTimer(ctx)
	assert.ErrorContains(t, err, "connection refused")

	store.EXPECT().Get(gomock.Any(), Key).Return(nil, progress.ErrKeyNotFound)
	store.EXPECT().Set(gomock.Any(), Key, []byte(`{"restTimerEnabled":true,"restTimerMinutes":0,"restTimerSeconds":45}`)).Return(errors.New("read only"))
	_, err = service.SetRestTime(ctx, 0, 45)
	assert.ErrorContains(t, err, "read only")
}

func TestDefault(t *testing.T) {
	assert.Equal(t, 90*time.Second, Default().RestDuration())
}
