package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/blogpessoal/blogapi/internal/services"
	"github.com/blogpessoal/blogapi/internal/store"
	"github.com/blogpessoal/blogapi/types"
	"github.com/go-chi/chi/v5"
)

const (
	themesCollectionURI = "/api/Temas"
	msgThemeNotFound    = "Tema não encontrado"
	msgThemeInUse       = "Tema possui postagens associadas"
)

// ThemeHandler provides HTTP handlers for themes.
type ThemeHandler struct {
	themeService *services.ThemeService
	logger       *slog.Logger
}

func NewThemeHandler(themeService *services.ThemeService, logger *slog.Logger) *ThemeHandler {
	return &ThemeHandler{themeService: themeService, logger: logger}
}

// ThemeRouter registers theme routes on the given router.
func ThemeRouter(r chi.Router, themeService *services.ThemeService, logger *slog.Logger) {
	handler := NewThemeHandler(themeService, logger)

	r.Get("/", handler.ListThemes)
	r.Get("/id/{themeID}", handler.GetTheme)
	r.Post("/", handler.CreateTheme)
	r.Put("/", handler.UpdateTheme)
	r.Delete("/deletar/{themeID}", handler.DeleteTheme)
}

// ThemeRequest is the create/update payload. ID is ignored on create.
type ThemeRequest struct {
	ID          int    `json:"id" validate:"gte=0"`
	Description string `json:"descricao" validate:"required,max=255"`
}

func (h *ThemeHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.themeService.List(r.Context())
	if err != nil {
		writeInternalError(w, r, h.logger, "falha ao listar temas", err)
		return
	}
	if len(themes) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, themes)
}

func (h *ThemeHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "themeID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	theme, err := h.themeService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgThemeNotFound)
			return
		}
		writeInternalError(w, r, h.logger, "falha ao buscar tema", err)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

func (h *ThemeHandler) CreateTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.themeService.Create(r.Context(), types.Theme{Description: req.Description})
	if err != nil {
		writeInternalError(w, r, h.logger, "falha ao criar tema", err)
		return
	}

	w.Header().Set("Location", themesCollectionURI)
	writeJSON(w, http.StatusCreated, created)
}

func (h *ThemeHandler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID < 1 {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}

	updated, err := h.themeService.Update(r.Context(), types.Theme{ID: req.ID, Description: req.Description})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, msgThemeNotFound)
			return
		}
		writeInternalError(w, r, h.logger, "falha ao atualizar tema", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ThemeHandler) DeleteTheme(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "themeID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.themeService.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, msgThemeNotFound)
		case errors.Is(err, store.ErrThemeInUse):
			writeError(w, http.StatusConflict, msgThemeInUse)
		default:
			writeInternalError(w, r, h.logger, "falha ao deletar tema", err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
