package handler

import (
	"net/http"

	"blog_backend/internal/api/middleware"
	"blog_backend/internal/app/service"
	"blog_backend/internal/common"
	"blog_backend/internal/common/security"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.With(middleware.Authenticator).Get("/profile", h.profile)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}

	http.SetCookie(w, sessionCookie(resp.Token))
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing session")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, session)
}

// logout only clears the client cookie; an already issued token stays valid.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	cookie := sessionCookie("")
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
	common.RespondWithJSON(w, http.StatusOK, "ok")
}

// The frontend lives on another site, so the cookie must be SameSite=None and Secure.
func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     security.SessionCookieName,
		Value:    value,
		Path:     "/",
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	}
}
