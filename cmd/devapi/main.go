package main

import (
	"log"

	"aniversario/internal/app"
	"aniversario/internal/config"
	"aniversario/internal/database"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.LoadDevAPIConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatal(err)
	}

	r, err := app.NewDevAPI(cfg, db)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("devapi listening addr=%s uploads=%s", cfg.Addr(), cfg.UploadsDir)
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal(err)
	}
}
