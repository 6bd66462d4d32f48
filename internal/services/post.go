package services

import (
	"context"

	"github.com/blogpessoal/blogapi/internal/events"
	"github.com/blogpessoal/blogapi/types"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	List(ctx context.Context) ([]types.Post, error)
	GetByID(ctx context.Context, id int) (types.Post, error)
	Create(ctx context.Context, post types.Post) (types.Post, error)
	Update(ctx context.Context, post types.Post) (types.Post, error)
	Delete(ctx context.Context, id int) error
}

// PostService encapsulates post use-cases.
type PostService struct {
	repo   PostRepository
	events events.Publisher
}

func NewPostService(repo PostRepository, publisher events.Publisher) *PostService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &PostService{repo: repo, events: publisher}
}

func (s *PostService) List(ctx context.Context) ([]types.Post, error) {
	return s.repo.List(ctx)
}

func (s *PostService) GetByID(ctx context.Context, id int) (types.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, post types.Post) (types.Post, error) {
	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return types.Post{}, err
	}
	s.events.Publish(ctx, events.PostCreated, created.ID)
	return created, nil
}

func (s *PostService) Update(ctx context.Context, post types.Post) (types.Post, error) {
	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return types.Post{}, err
	}
	s.events.Publish(ctx, events.PostUpdated, updated.ID)
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(ctx, events.PostDeleted, id)
	return nil
}
