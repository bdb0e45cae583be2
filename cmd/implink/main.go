package main

import (
	"log"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ imp-link-manager failed to start: %v", err)
	}
}
