package server

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/blogpessoal/blogapi/internal/storage"
	"github.com/blogpessoal/blogapi/internal/store"
	"github.com/blogpessoal/blogapi/types"
)

// memStore mirrors the Postgres constraints: unique emails, post theme
// foreign keys and restricted theme deletes.
type memStore struct {
	mu     sync.Mutex
	nextID int
	users  map[int]types.User
	themes map[int]types.Theme
	posts  map[int]types.Post
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[int]types.User),
		themes: make(map[int]types.Theme),
		posts:  make(map[int]types.Post),
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

func (m *memStore) PingContext(context.Context) error { return nil }

type memThemes struct{ *memStore }

func (m memThemes) List(context.Context) ([]types.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	themes := make([]types.Theme, 0, len(m.themes))
	for _, theme := range m.themes {
		themes = append(themes, theme)
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].ID < themes[j].ID })
	return themes, nil
}

func (m memThemes) GetByID(_ context.Context, id int) (types.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	theme, ok := m.themes[id]
	if !ok {
		return types.Theme{}, store.ErrNotFound
	}
	return theme, nil
}

func (m memThemes) Create(_ context.Context, theme types.Theme) (types.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	theme.ID = m.id()
	m.themes[theme.ID] = theme
	return theme, nil
}

func (m memThemes) Update(_ context.Context, theme types.Theme) (types.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.themes[theme.ID]; !ok {
		return types.Theme{}, store.ErrNotFound
	}
	m.themes[theme.ID] = theme
	return theme, nil
}

func (m memThemes) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.themes[id]; !ok {
		return store.ErrNotFound
	}
	for _, post := range m.posts {
		if post.Theme.ID == id {
			return store.ErrThemeInUse
		}
	}
	delete(m.themes, id)
	return nil
}

type memPosts struct{ *memStore }

func (m memPosts) List(context.Context) ([]types.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	posts := make([]types.Post, 0, len(m.posts))
	for _, post := range m.posts {
		post.Theme = m.themes[post.Theme.ID]
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (m memPosts) GetByID(_ context.Context, id int) (types.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return types.Post{}, store.ErrNotFound
	}
	post.Theme = m.themes[post.Theme.ID]
	return post, nil
}

func (m memPosts) Create(_ context.Context, post types.Post) (types.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	theme, ok := m.themes[post.Theme.ID]
	if !ok {
		return types.Post{}, store.ErrThemeNotFound
	}
	post.ID = m.id()
	post.CreatedAt = time.Now().UTC()
	post.Theme = theme
	m.posts[post.ID] = post
	return post, nil
}

func (m memPosts) Update(_ context.Context, post types.Post) (types.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.posts[post.ID]
	if !ok {
		return types.Post{}, store.ErrNotFound
	}
	theme, ok := m.themes[post.Theme.ID]
	if !ok {
		return types.Post{}, store.ErrThemeNotFound
	}
	post.CreatedAt = existing.CreatedAt
	post.Theme = theme
	m.posts[post.ID] = post
	return post, nil
}

func (m memPosts) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

type memUsers struct{ *memStore }

func (m memUsers) GetByID(_ context.Context, id int) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m memUsers) Create(_ context.Context, user types.User) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return types.User{}, store.ErrDuplicateEmail
		}
	}
	user.ID = m.id()
	m.users[user.ID] = user
	return user, nil
}

type memObject struct {
	data        []byte
	contentType string
}

type memPhotos struct {
	mu      sync.Mutex
	objects map[string]memObject
}

func newMemPhotos() *memPhotos {
	return &memPhotos{objects: make(map[string]memObject)}
}

func (m *memPhotos) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memObject{data: data, contentType: contentType}
	return nil
}

func (m *memPhotos) Get(_ context.Context, key string) (storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return storage.Object{}, storage.ErrObjectNotFound
	}
	return storage.Object{
		Body:        io.NopCloser(strings.NewReader(string(obj.data))),
		ContentType: obj.contentType,
		Size:        int64(len(obj.data)),
	}, nil
}

func (m *memPhotos) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return storage.ErrObjectNotFound
	}
	delete(m.objects, key)
	return nil
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("connection refused") }
