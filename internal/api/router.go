package api

import (
	"fmt"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/postarmory/postarmory/docs"
	"github.com/postarmory/postarmory/internal/api/handlers"
	"github.com/postarmory/postarmory/internal/api/middleware"
	"github.com/postarmory/postarmory/internal/config"
	"github.com/rs/cors"
)

func SetupRouter() http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	authMux := http.NewServeMux()
	authMux.HandleFunc("/sign-up", handlers.RegisterUser)
	authMux.HandleFunc("/login", handlers.LoginUser)
	authMux.HandleFunc("/google/login", handlers.HandleGoogleLogin)
	authMux.HandleFunc("/google/callback", handlers.HandleGoogleCallback)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	protectedMux.HandleFunc("/settings", handlers.Settings)
	protectedMux.HandleFunc("/generate", handlers.GeneratePosts)
	protectedMux.HandleFunc("/generate-image", handlers.GenerateImage)

	postsMux := http.NewServeMux()
	postsMux.HandleFunc("/{id}", handlers.PostByID)
	postsMux.HandleFunc("/{id}/publish", handlers.PublishPost)

	protectedMux.HandleFunc("/posts", handlers.Posts)
	protectedMux.Handle("/posts/", http.StripPrefix("/posts", postsMux))

	protectedMux.HandleFunc("/auth/logout", handlers.Logout)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.AuthMiddleware(protectedMux),
		),
	)

	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
