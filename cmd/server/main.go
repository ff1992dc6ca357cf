package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/postarmory/postarmory/internal/api"
	"github.com/postarmory/postarmory/internal/config"
	"github.com/postarmory/postarmory/internal/crypto"
	"github.com/postarmory/postarmory/internal/repositories"
)

// @title PostArmory API
// @version 1.0
// @description AI-assisted social media post generation and publishing.
func main() {
	// A weak master secret undermines every stored credential, so refuse to
	// start without a proper one.
	if err := crypto.Init(config.Envs.EncryptionKey); err != nil {
		log.Fatal("ENCRYPTION_KEY: ", err)
	}

	repositories.ConnectDatabase()

	r2 := config.Envs.R2
	if r2.AccountID != "" {
		if err := repositories.InitR2(r2.AccessKeyID, r2.SecretAccessKey, r2.AccountID, r2.BucketName, r2.Region); err != nil {
			log.Fatal("Failed to initialize R2:", err)
		}
	} else {
		log.Println("R2 not configured, generated images will be returned inline only")
	}

	port := config.Envs.Port

	mux := api.SetupRouter()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting PostArmory server on port: %s", port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on port %s: %v", port, err)
	}
}
