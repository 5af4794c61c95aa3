package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"notes-service/internal/config"
	"notes-service/internal/db"
	"notes-service/internal/handler"
	"notes-service/internal/repository"
	"notes-service/internal/router"
	"notes-service/internal/service/email"
	oauth2svc "notes-service/internal/service/oauth2"
	"notes-service/internal/usecase"
	"notes-service/pkg/jwtutil"
	"notes-service/pkg/middleware"
)

// Run wires the service together and blocks until shutdown.
func Run(cfg config.AppConfig) error {
	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		return err
	}

	pool, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)

	tokens := jwtutil.NewManager(cfg.JWTSecret)
	mailer := email.NewEmailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.SenderEmail)
	google := oauth2svc.NewGoogleVerifier(cfg.GoogleClientID)

	authUC := usecase.NewAuthUsecase(userRepo, mailer, tokens, google)
	noteUC := usecase.NewNoteUsecase(noteRepo)

	authHandler := handler.NewAuthHandler(authUC)
	noteHandler := handler.NewNoteHandler(noteUC)
	auth := middleware.NewAuthMiddleware(tokens)

	r := chi.NewRouter()
	router.SetupRoutes(r, authHandler, noteHandler, auth)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
		return err
	}

	log.Println("shutdown complete")
	return nil
}
