package api

import (
	"net/http"
	"time"

	"blog_backend/internal/api/handler"
	"blog_backend/internal/api/middleware"
	"blog_backend/internal/app/service"
	"blog_backend/internal/common"
	"blog_backend/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokens *security.TokenIssuer,
	allowedOrigin string,
	authService *service.AuthService,
	postService *service.PostService,
	commentService *service.CommentService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(middleware.CORS(allowedOrigin))

	// Reads the session cookie and puts the verified token (or the error) in
	// context; middleware.Authenticator enforces it per route.
	r.Use(jwtauth.Verify(tokens.JWTAuth(), security.TokenFromCookie))

	// Keep-alive target
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, "ok")
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(authService)
	r.Group(authHandler.RegisterRoutes)

	postHandler := handler.NewPostHandler(postService)
	r.Route("/post", postHandler.RegisterRoutes)

	commentHandler := handler.NewCommentHandler(commentService)
	r.Route("/comment", commentHandler.RegisterRoutes)

	return r
}
