package services

import (
	"context"

	"github.com/blogpessoal/blogapi/internal/events"
	"github.com/blogpessoal/blogapi/types"
)

// ThemeRepository defines persistence operations for themes.
type ThemeRepository interface {
	List(ctx context.Context) ([]types.Theme, error)
	GetByID(ctx context.Context, id int) (types.Theme, error)
	Create(ctx context.Context, theme types.Theme) (types.Theme, error)
	Update(ctx context.Context, theme types.Theme) (types.Theme, error)
	Delete(ctx context.Context, id int) error
}

// ThemeService encapsulates theme use-cases.
type ThemeService struct {
	repo   ThemeRepository
	events events.Publisher
}

func NewThemeService(repo ThemeRepository, publisher events.Publisher) *ThemeService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &ThemeService{repo: repo, events: publisher}
}

func (s *ThemeService) List(ctx context.Context) ([]types.Theme, error) {
	return s.repo.List(ctx)
}

func (s *ThemeService) GetByID(ctx context.Context, id int) (types.Theme, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ThemeService) Create(ctx context.Context, theme types.Theme) (types.Theme, error) {
	created, err := s.repo.Create(ctx, theme)
	if err != nil {
		return types.Theme{}, err
	}
	s.events.Publish(ctx, events.ThemeCreated, created.ID)
	return created, nil
}

func (s *ThemeService) Update(ctx context.Context, theme types.Theme) (types.Theme, error) {
	updated, err := s.repo.Update(ctx, theme)
	if err != nil {
		return types.Theme{}, err
	}
	s.events.Publish(ctx, events.ThemeUpdated, updated.ID)
	return updated, nil
}

// Delete removes a theme. It fails with store.ErrThemeInUse while posts
// still reference it.
func (s *ThemeService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(ctx, events.ThemeDeleted, id)
	return nil
}
