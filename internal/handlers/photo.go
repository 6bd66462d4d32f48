package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/blogpessoal/blogapi/internal/services"
	"github.com/blogpessoal/blogapi/internal/storage"
	"github.com/go-chi/chi/v5"
)

const (
	maxPhotoBytes    = 5 << 20
	photoFormField   = "foto"
	photosURIPrefix  = "/api/Fotos/"
	msgPhotoNotFound = "Foto não encontrada"
	msgInvalidPhoto  = "arquivo de imagem inválido"
	msgPhotoTooLarge = "imagem excede o tamanho máximo de 5 MiB"
)

// PhotoResponse points at an uploaded photo.
type PhotoResponse struct {
	URL string `json:"url"`
}

type PhotoHandler struct {
	photoService *services.PhotoService
	logger       *slog.Logger
}

func NewPhotoHandler(photoService *services.PhotoService, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{photoService: photoService, logger: logger}
}

// PhotoRouter registers photo routes. Downloads are public so stored URLs
// can be embedded directly.
func PhotoRouter(r chi.Router, photoService *services.PhotoService, authMiddleware func(http.Handler) http.Handler, logger *slog.Logger) {
	handler := NewPhotoHandler(photoService, logger)

	r.Get("/{key}", handler.GetPhoto)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", handler.UploadPhoto)
		r.Delete("/{key}", handler.DeletePhoto)
	})
}

func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes+(1<<20))
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgPhotoTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, "formulário multipart inválido")
		return
	}

	file, header, err := r.FormFile(photoFormField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "campo 'foto' é obrigatório")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoBytes {
		writeError(w, http.StatusRequestEntityTooLarge, msgPhotoTooLarge)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidPhoto)
		return
	}
	if len(data) > maxPhotoBytes {
		writeError(w, http.StatusRequestEntityTooLarge, msgPhotoTooLarge)
		return
	}

	key, err := h.photoService.Upload(r.Context(), data)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPhoto) {
			writeError(w, http.StatusBadRequest, msgInvalidPhoto)
			return
		}
		writeInternalError(w, r, h.logger, "falha ao salvar foto", err)
		return
	}

	location := photosURIPrefix + key
	w.Header().Set("Location", location)
	writeJSON(w, http.StatusCreated, PhotoResponse{URL: location})
}

func (h *PhotoHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	obj, err := h.photoService.Open(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			writeError(w, http.StatusNotFound, msgPhotoNotFound)
			return
		}
		writeInternalError(w, r, h.logger, "falha ao ler foto", err)
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		h.logger.WarnContext(r.Context(), "photo stream interrupted", slog.Any("error", err))
	}
}

func (h *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	if err := h.photoService.Delete(r.Context(), chi.URLParam(r, "key")); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			writeError(w, http.StatusNotFound, msgPhotoNotFound)
			return
		}
		writeInternalError(w, r, h.logger, "falha ao remover foto", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
