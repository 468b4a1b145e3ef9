package handler

import (
	"errors"
	"io"
	"net/http"

	"blog_backend/internal/api/middleware"
	"blog_backend/internal/app/service"
	"blog_backend/internal/common"
	"blog_backend/internal/platform/media"

	"github.com/go-chi/chi/v5"
)

const maxUploadMemory = 32 << 20

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(ps *service.PostService) *PostHandler {
	return &PostHandler{postService: ps}
}

func (h *PostHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listPosts)   // GET /post
	r.Get("/{id}", h.getPost) // GET /post/{id}

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/", h.createPost) // POST /post (multipart)
		authed.Put("/", h.updatePost)  // PUT /post (multipart)
	})
}

func (h *PostHandler) createPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	cover, err := readPostForm(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid form: "+err.Error())
		return
	}

	post, err := h.postService.CreatePost(r.Context(), userID, postRequestFromForm(r), cover)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, post)
}

func (h *PostHandler) updatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	cover, err := readPostForm(r)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid form: "+err.Error())
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), r.FormValue("id"), userID, postRequestFromForm(r), cover)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, post)
}

func (h *PostHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListPosts(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, post)
}

func postRequestFromForm(r *http.Request) service.PostRequest {
	return service.PostRequest{
		Title:   r.FormValue("title"),
		Summary: r.FormValue("summary"),
		Content: r.FormValue("content"),
	}
}

// readPostForm parses the body and returns the optional "file" part.
// Non-multipart bodies are accepted and simply carry no file.
func readPostForm(r *http.Request) (*media.File, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	if r.MultipartForm == nil {
		return nil, nil
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &media.File{Data: data, ContentType: contentType, Filename: header.Filename}, nil
}
