package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotJorge/tienda-informatica/internal/domain"
	apperrors "github.com/NotJorge/tienda-informatica/internal/platform/errors"
)

func newClientService(repo *mockClientRepo) (*ClientService, *memoryCache[domain.Client], *recordingNotifier) {
	cache := newMemoryCache[domain.Client]()
	notifier := &recordingNotifier{}
	return NewClientService(repo, cache, notifier, &mockImageStore{}), cache, notifier
}

func TestClientService_Create_BroadcastsOnClientChannel(t *testing.T) {
	repo := &mockClientRepo{
		createFn: func(_ context.Context, c *domain.Client) (*domain.Client, error) {
			created := *c
			created.ID = 7
			return &created, nil
		},
	}
	svc, cache, notifier := newClientService(repo)

	created, err := svc.Create(context.Background(), domain.ClientCreateRequest{
		Username: "jperez",
		Name:     "Juan Perez",
		Email:    "juan@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)

	events := notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, domain.ChannelClient, events[0].entity)
	assert.Equal(t, domain.OperationCreate, events[0].op)
	assert.True(t, cache.contains("7"))
}

func TestClientService_Create_DuplicateUsername(t *testing.T) {
	repo := &mockClientRepo{
		createFn: func(context.Context, *domain.Client) (*domain.Client, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	svc, _, notifier := newClientService(repo)

	_, err := svc.Create(context.Background(), domain.ClientCreateRequest{
		Username: "jperez",
		Name:     "Juan Perez",
		Email:    "juan@example.com",
	})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.Empty(t, notifier.recorded())
}

func TestClientService_Delete_MissingClient(t *testing.T) {
	svc, _, notifier := newClientService(&mockClientRepo{})

	err := svc.Delete(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrClientNotFound)
	assert.Empty(t, notifier.recorded(), "delete of a missing client must not broadcast")
}

func TestClientService_Delete_EvictsCache(t *testing.T) {
	repo := &mockClientRepo{
		deleteFn: func(context.Context, int64) error { return nil },
	}
	svc, cache, notifier := newClientService(repo)
	cache.Put(context.Background(), "3", domain.Client{ID: 3})

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.False(t, cache.contains("3"))

	events := notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, domain.OperationDelete, events[0].op)
	assert.Equal(t, domain.ChannelClient, events[0].entity)
}

func TestClientService_Create_InvalidEmail(t *testing.T) {
	svc, _, notifier := newClientService(&mockClientRepo{})

	_, err := svc.Create(context.Background(), domain.ClientCreateRequest{
		Username: "jperez",
		Name:     "Juan Perez",
		Email:    "not-an-email",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeValidation, apperrors.AsStructuredError(err).Type)
	assert.Empty(t, notifier.recorded())
}
