package services

import (
	"context"
	"sync"

	"github.com/blogpessoal/blogapi/types"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(types.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(types.User), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(ctx context.Context) ([]types.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.Post), args.Error(1)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int) (types.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.Post), args.Error(1)
}

func (m *MockPostRepository) Create(ctx context.Context, post types.Post) (types.Post, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(types.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post types.Post) (types.Post, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(types.Post), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockThemeRepository struct {
	mock.Mock
}

func (m *MockThemeRepository) List(ctx context.Context) ([]types.Theme, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.Theme), args.Error(1)
}

func (m *MockThemeRepository) GetByID(ctx context.Context, id int) (types.Theme, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.Theme), args.Error(1)
}

func (m *MockThemeRepository) Create(ctx context.Context, theme types.Theme) (types.Theme, error) {
	args := m.Called(ctx, theme)
	return args.Get(0).(types.Theme), args.Error(1)
}

func (m *MockThemeRepository) Update(ctx context.Context, theme types.Theme) (types.Theme, error) {
	args := m.Called(ctx, theme)
	return args.Get(0).(types.Theme), args.Error(1)
}

func (m *MockThemeRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type recordedEvent struct {
	Type string
	ID   int
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, ID: id})
}
