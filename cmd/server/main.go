package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notable/internal/server/api"
	"notable/internal/server/services"
	"notable/internal/server/storage"
	"notable/pkg/version"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "notable-server",
	Short: "Notable - notes with one-time-passcode and Google login",
	Long:  "Server component for Notable providing the auth and notes HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		runServe(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the notes server",
	Run:   runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetVersion("notable-server"))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	log.Printf("%s", version.GetVersion("notable-server"))

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	store, err := storage.NewStore(dataDir)
	if err != nil {
		log.Fatalf("Failed to open data dir: %v", err)
	}

	userRepo := storage.NewUserRepository(store)
	otpRepo := storage.NewOtpRepository(store)
	noteRepo := storage.NewNoteRepository(store)

	// Email delivery is optional; without it codes are only reachable via
	// the non-production reveal path.
	var emailService *services.EmailService
	if svc, err := services.NewEmailService(); err != nil {
		log.Printf("Warning: email delivery not configured: %v", err)
	} else {
		emailService = svc
	}

	var googleService *services.GoogleService
	if svc, err := services.NewGoogleService(); err != nil {
		log.Printf("Warning: Google login not configured: %v", err)
	} else {
		googleService = svc
	}

	authService := services.NewAuthService(userRepo, otpRepo, emailService, googleService)
	noteService := services.NewNoteService(noteRepo, userRepo)

	ctx := context.Background()
	if err := authService.CleanupExpiredOtps(ctx); err != nil {
		log.Printf("Warning: failed to clean up expired codes: %v", err)
	}

	authHandler := api.NewAuthHandler(authService)
	notesHandler := api.NewNotesHandler(noteService)

	r := api.NewRouter(authHandler, notesHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
