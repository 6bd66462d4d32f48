package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/blogpessoal/blogapi/internal/services"
	"github.com/blogpessoal/blogapi/internal/store"
	"github.com/blogpessoal/blogapi/types"
	"github.com/go-chi/chi/v5"
)

const (
	postsCollectionURI   = "/api/Postagens"
	msgPostNotFound      = "Postagem não encontrada"
	msgPostThemeNotFound = "Tema informado não existe"
)

// PostHandler provides HTTP handlers for posts.
type PostHandler struct {
	postService *services.PostService
	logger      *slog.Logger
}

func NewPostHandler(postService *services.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{postService: postService, logger: logger}
}

// PostRouter registers post routes on the given router.
func PostRouter(r chi.Router, postService *services.PostService, logger *slog.Logger) {
	handler := NewPostHandler(postService, logger)

	r.Get("/", handler.ListPosts)
	r.Get("/id/{postID}", handler.GetPost)
	r.Post("/", handler.CreatePost)
	r.Put("/", handler.UpdatePost)
	r.Delete("/deletar/{postID}", handler.DeletePost)
}

// PostRequest is the create/update payload. ID is ignored on create and the
// creation date is always server-assigned.
type PostRequest struct {
	ID          int             `json:"id" validate:"gte=0"`
	Title       string          `json:"titulo" validate:"required,max=255"`
	Description string          `json:"descricao" validate:"required"`
	Photo       string          `json:"foto" validate:"omitempty,max=2048"`
	Creator     string          `json:"criador" validate:"max=255"`
	Theme       ThemeRefRequest `json:"tema"`
}

// ThemeRefRequest identifies the post's theme. Only the id is read.
type ThemeRefRequest struct {
	ID          int    `json:"id" validate:"required,gt=0"`
	Description string `json:"descricao"`
}

func (req PostRequest) toPost() types.Post {
	return types.Post{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Photo:       req.Photo,
		Creator:     req.Creator,
		Theme:       types.Theme{ID: req.Theme.ID},
	}
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		writeInternalError(w, r, h.logger, "falha ao listar postagens", err)
		return
	}
	if len(posts) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.postService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgPostNotFound)
			return
		}
		writeInternalError(w, r, h.logger, "falha ao buscar postagem", err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readPostRequest(w, r)
	if !ok {
		return
	}

	created, err := h.postService.Create(r.Context(), req.toPost())
	if err != nil {
		if errors.Is(err, store.ErrThemeNotFound) {
			writeError(w, http.StatusBadRequest, msgPostThemeNotFound)
			return
		}
		writeInternalError(w, r, h.logger, "falha ao criar postagem", err)
		return
	}

	w.Header().Set("Location", postsCollectionURI)
	writeJSON(w, http.StatusCreated, created)
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readPostRequest(w, r)
	if !ok {
		return
	}
	if req.ID < 1 {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}

	updated, err := h.postService.Update(r.Context(), req.toPost())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusBadRequest, msgPostNotFound)
		case errors.Is(err, store.ErrThemeNotFound):
			writeError(w, http.StatusBadRequest, msgPostThemeNotFound)
		default:
			writeInternalError(w, r, h.logger, "falha ao atualizar postagem", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.postService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgPostNotFound)
			return
		}
		writeInternalError(w, r, h.logger, "falha ao deletar postagem", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readPostRequest decodes and validates the body. A blank creator defaults
// to the authenticated user's email.
func (h *PostHandler) readPostRequest(w http.ResponseWriter, r *http.Request) (PostRequest, bool) {
	var req PostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return PostRequest{}, false
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Creator = strings.TrimSpace(req.Creator)
	req.Photo = strings.TrimSpace(req.Photo)
	if req.Creator == "" {
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			req.Creator = claims.Email
		}
	}

	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return PostRequest{}, false
	}
	return req, true
}
