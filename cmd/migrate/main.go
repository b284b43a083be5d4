package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/wolfman30/sy-number-bot/internal/app/bootstrap"
)

func main() {
	_ = godotenv.Load()
	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	// migrate force <version>
	force := -1
	if len(os.Args) >= 3 && os.Args[1] == "force" {
		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("invalid version: %v", err)
		}
		force = version
	}

	if err := bootstrap.RunMigrations(databaseURL, force); err != nil {
		log.Fatal(err)
	}
	if force >= 0 {
		fmt.Printf("forced version to %d\n", force)
		return
	}
	fmt.Println("migrations complete")
}
