package handler

import (
	"errors"
	"net/http"

	"blog_backend/internal/api/middleware"
	"blog_backend/internal/app/service"
	"blog_backend/internal/common"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(cs *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: cs}
}

// Update and delete are deliberately unauthenticated.
func (h *CommentHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.Authenticator).Post("/", h.createComment) // POST /comment
	r.Get("/{id}", h.listComments)                              // GET /comment/{postID}
	r.Put("/{id}", h.updateComment)                             // PUT /comment/{commentID}
	r.Delete("/{id}", h.deleteComment)                          // DELETE /comment/{commentID}
}

func (h *CommentHandler) createComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	comment, err := h.commentService.CreateComment(r.Context(), userID, req)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) updateComment(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	comment, err := h.commentService.UpdateComment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondCommentError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) deleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.commentService.DeleteComment(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondCommentError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Comment deleted successfully"})
}

func respondCommentError(w http.ResponseWriter, err error) {
	if errors.Is(err, common.ErrNotFound) {
		common.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}
	common.RespondWithServiceError(w, err)
}
