// Command main runs the database seeder for Pulse.
package main

import (
	"flag"
	"log"

	"pulse/internal/config"
	"pulse/internal/database"
	"pulse/internal/seed"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	numUsers := flag.Int("users", cfg.SeedUsers, "Number of users to create")
	maxPosts := flag.Int("posts", cfg.SeedMaxPosts, "Maximum posts per user")
	maxLikes := flag.Int("likes", cfg.SeedMaxLikes, "Maximum likes per user")
	daysBack := flag.Int("days", cfg.SeedMaxDaysBack, "Spread activity over the past N days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, up to %d posts and %d likes each, clean=%v\n",
		*numUsers, *maxPosts, *maxLikes, *shouldClean)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:        *numUsers,
		MaxPostsPerUser: *maxPosts,
		MaxLikesPerUser: *maxLikes,
		MaxDaysBack:     *daysBack,
		ShouldClean:     *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All seeded users share the password: SeedPass123!")
}
