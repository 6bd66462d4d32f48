package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/blogpessoal/blogapi/internal/services"
	"github.com/blogpessoal/blogapi/internal/store"
	"github.com/blogpessoal/blogapi/types"
	"github.com/go-chi/chi/v5"
)

const (
	usersByEmailURI       = "/api/Usuarios/email/"
	msgUserNotFound       = "Usuario não encontrado"
	msgDuplicateEmail     = "E-mail já cadastrado"
	msgInvalidCredentials = "E-mail ou senha inválidos"
)

// UserHandler provides registration, login and user lookup.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
	logger      *slog.Logger
}

func NewUserHandler(userService *services.UserService, authService *services.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{userService: userService, authService: authService, logger: logger}
}

// UserRouter registers user routes. Registration and login stay anonymous.
func UserRouter(r chi.Router, userService *services.UserService, authService *services.AuthService, authMiddleware func(http.Handler) http.Handler, logger *slog.Logger) {
	handler := NewUserHandler(userService, authService, logger)

	r.Post("/cadastrar", handler.Register)
	r.Post("/logar", handler.Login)
	r.With(authMiddleware).Get("/email/{email}", handler.GetByEmail)
}

type RegisterRequest struct {
	Name     string `json:"nome" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"senha" validate:"required,min=6,bcryptmax"`
	Photo    string `json:"foto" validate:"omitempty,max=2048"`
	Type     string `json:"tipo" validate:"omitempty,oneof=NORMAL ADMINISTRADOR"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Photo = strings.TrimSpace(req.Photo)
	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := types.User{
		Name:  req.Name,
		Email: req.Email,
		Photo: req.Photo,
		Type:  req.Type,
	}
	created, err := h.authService.Register(r.Context(), user, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusUnauthorized, msgDuplicateEmail)
			return
		}
		writeInternalError(w, r, h.logger, "falha ao cadastrar usuario", err)
		return
	}

	w.Header().Set("Location", usersByEmailURI+url.PathEscape(created.Email))
	writeJSON(w, http.StatusCreated, created)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		writeInternalError(w, r, h.logger, "falha ao autenticar", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(chi.URLParam(r, "email"))
	if email == "" {
		writeError(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	user, err := h.userService.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		writeInternalError(w, r, h.logger, "falha ao buscar usuario", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
