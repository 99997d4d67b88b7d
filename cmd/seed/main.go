// Command main runs the database seeder for Ripple.
package main

import (
	"flag"
	"log"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPosts := flag.Int("posts", 120, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (fast, dev only)")
	profilePath := flag.String("profile", "", "Seed from a YAML profile (ignores other flags)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	opts := seed.DefaultOptions()
	opts.NumUsers = *numUsers
	opts.NumPosts = *numPosts
	opts.ShouldClean = *shouldClean
	opts.SkipBcrypt = *skipBcrypt

	if *profilePath != "" {
		profile, err := seed.LoadProfile(*profilePath)
		if err != nil {
			log.Fatalf("❌ Failed to load profile: %v", err)
		}
		log.Printf("Applying profile %q (ignoring other flags)\n", profile.Name)
		opts = profile.Options()
	} else {
		log.Printf("Target: %d users, %d posts, clean=%v\n", opts.NumUsers, opts.NumPosts, opts.ShouldClean)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
