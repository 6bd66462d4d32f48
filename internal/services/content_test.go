package services

import (
	"context"
	"testing"

	"github.com/blogpessoal/blogapi/internal/events"
	"github.com/blogpessoal/blogapi/internal/store"
	"github.com/blogpessoal/blogapi/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPostService_PublishesOnSuccessfulWrites(t *testing.T) {
	repo := new(MockPostRepository)
	publisher := &recordingPublisher{}
	svc := NewPostService(repo, publisher)
	ctx := context.Background()

	post := types.Post{Title: "t", Description: "d", Theme: types.Theme{ID: 1}}
	repo.On("Create", mock.Anything, post).Return(types.Post{ID: 9, Title: "t"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(types.Post{ID: 9, Title: "t2"}, nil)
	repo.On("Delete", mock.Anything, 9).Return(nil).Once()
	repo.On("Delete", mock.Anything, 9).Return(store.ErrNotFound).Once()

	_, err := svc.Create(ctx, post)
	require.NoError(t, err)
	_, err = svc.Update(ctx, types.Post{ID: 9, Title: "t2"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, 9))
	assert.ErrorIs(t, svc.Delete(ctx, 9), store.ErrNotFound)

	assert.Equal(t, []recordedEvent{
		{Type: events.PostCreated, ID: 9},
		{Type: events.PostUpdated, ID: 9},
		{Type: events.PostDeleted, ID: 9},
	}, publisher.events)
	repo.AssertExpectations(t)
}

func TestPostService_NoEventOnFailure(t *testing.T) {
	repo := new(MockPostRepository)
	publisher := &recordingPublisher{}
	svc := NewPostService(repo, publisher)

	repo.On("Create", mock.Anything, mock.Anything).Return(types.Post{}, store.ErrThemeNotFound)
	repo.On("Update", mock.Anything, mock.Anything).Return(types.Post{}, store.ErrNotFound)

	_, err := svc.Create(context.Background(), types.Post{Theme: types.Theme{ID: 77}})
	assert.ErrorIs(t, err, store.ErrThemeNotFound)
	_, err = svc.Update(context.Background(), types.Post{ID: 5})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, publisher.events)
}

func TestThemeService(t *testing.T) {
	repo := new(MockThemeRepository)
	publisher := &recordingPublisher{}
	svc := NewThemeService(repo, publisher)
	ctx := context.Background()

	repo.On("List", mock.Anything).Return([]types.Theme{}, nil)
	repo.On("Create", mock.Anything, types.Theme{Description: "TEMA 1"}).Return(types.Theme{ID: 1, Description: "TEMA 1"}, nil)
	repo.On("Delete", mock.Anything, 1).Return(store.ErrThemeInUse)

	themes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, themes)

	created, err := svc.Create(ctx, types.Theme{Description: "TEMA 1"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	assert.ErrorIs(t, svc.Delete(ctx, 1), store.ErrThemeInUse)
	assert.Equal(t, []recordedEvent{{Type: events.ThemeCreated, ID: 1}}, publisher.events)
}

func TestServicesDefaultToNopPublisher(t *testing.T) {
	repo := new(MockThemeRepository)
	repo.On("Update", mock.Anything, mock.Anything).Return(types.Theme{ID: 2}, nil)

	svc := NewThemeService(repo, nil)
	_, err := svc.Update(context.Background(), types.Theme{ID: 2, Description: "x"})
	assert.NoError(t, err)
}
