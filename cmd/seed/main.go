// Command seed runs the database seeder for Plaza.
package main

import (
	"flag"
	"log"

	"plaza/internal/config"
	"plaza/internal/database"
	"plaza/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numBlogs := flag.Int("blogs", 200, "Number of blogs to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Seeding: %d users, %d blogs, clean=%v", *numUsers, *numBlogs, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{Users: *numUsers, Blogs: *numBlogs})
	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}
	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
