package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/worklane/hrms/internal/bootstrap"
	"github.com/worklane/hrms/internal/database"
)

func main() {
	action := flag.String("action", "seed", "Action to perform: migrate, seed, clear")
	flag.Parse()

	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.DB.Close()

	seeder := database.NewSeeder(app.DB)

	switch *action {
	case "migrate":
		if err := seeder.Migrate(ctx); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		fmt.Println("schema created")

	case "seed":
		if err := seeder.Migrate(ctx); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		if err := seeder.Seed(ctx); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("demo data loaded")

	case "clear":
		if err := seeder.Clear(ctx); err != nil {
			log.Fatalf("clear failed: %v", err)
		}
		fmt.Println("all rows deleted")

	default:
		fmt.Printf("unknown action: %s\n", *action)
		flag.PrintDefaults()
	}
}
