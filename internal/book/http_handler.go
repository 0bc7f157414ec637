package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AP-Porag/book-management-app/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createBookReq struct {
	Title            string `json:"title" validate:"required"`
	Author           string `json:"author"`
	Genre            string `json:"genre"`
	Description      string `json:"description"`
	Thumbnail        string `json:"thumbnail"`
	Rating           string `json:"rating"`
	Year             string `json:"year"`
	ShortDescription string `json:"shortDescription"`
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid input", validationErrors)
		return
	}

	created, err := h.service.Create(r.Context(), httpx.UserIDFrom(r), CreateParams{
		Title:            req.Title,
		Author:           req.Author,
		Genre:            req.Genre,
		Description:      req.Description,
		Thumbnail:        req.Thumbnail,
		Rating:           req.Rating,
		Year:             req.Year,
		ShortDescription: req.ShortDescription,
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Server Error", nil)
		return
	}

	httpx.JSON(w, http.StatusCreated, created)
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Server Error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// updateBookReq carries a partial update: absent fields stay untouched.
// There is no owner field, an owner key in the payload is dropped at
// decode time.
type updateBookReq struct {
	Title            *string `json:"title"`
	Author           *string `json:"author"`
	Genre            *string `json:"genre"`
	Description      *string `json:"description"`
	Thumbnail        *string `json:"thumbnail"`
	Rating           *string `json:"rating"`
	Year             *string `json:"year"`
	ShortDescription *string `json:"shortDescription"`
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.Title != nil && *req.Title == "" {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid input", []httpx.ValidationError{
			{Field: "title", Message: "title must not be empty"},
		})
		return
	}

	updated, err := h.service.Update(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r), UpdateParams{
		Title:            req.Title,
		Author:           req.Author,
		Genre:            req.Genre,
		Description:      req.Description,
		Thumbnail:        req.Thumbnail,
		Rating:           req.Rating,
		Year:             req.Year,
		ShortDescription: req.ShortDescription,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, "Book not found", nil)
		case errors.Is(err, ErrForbidden):
			httpx.JSONError(w, http.StatusForbidden, "Not authorized", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "Server Error", nil)
		}
		return
	}

	httpx.JSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, "Book not found", nil)
		case errors.Is(err, ErrForbidden):
			httpx.JSONError(w, http.StatusForbidden, "Not authorized", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "Server Error", nil)
		}
		return
	}

	httpx.JSON(w, http.StatusOK, httpx.MessageResponse{Message: "Book removed successfully"})
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := ParsePageRequest(query.Get("page"), query.Get("limit"))

	page, err := h.service.List(r.Context(), httpx.UserIDFrom(r), req)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Server Error", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, page)
}
