package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/naniedobe1/PoleBrothers/config"
	"github.com/naniedobe1/PoleBrothers/controllers"
	"github.com/naniedobe1/PoleBrothers/services"
)

// Entrypoint for the upload URL issuer: the small edge service that hands
// out presigned PUT URLs to capturing devices.
func main() {
	_ = godotenv.Load(".env")

	cfg := config.Load()
	if err := cfg.ValidateIssuer(); err != nil {
		log.Fatalln(err)
	}

	signer, err := services.NewObjectSigner(cfg)
	if err != nil {
		log.Fatalln("Failed to initialize storage client:", err)
	}
	if err := signer.EnsureBucket(context.Background()); err != nil {
		log.Fatalln("Failed to ensure bucket:", err)
	}

	issuer := &controllers.Issuer{Signer: signer}
	r := issuer.Router()

	fmt.Printf("Upload URL issuer starting on port %s\n", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalln(err)
	}
}
