// Command seed populates the development database with demo data and
// makes sure the protected admin account exists.
package main

import (
	"flag"
	"log"

	"cinelog/internal/config"
	"cinelog/internal/database"
	"cinelog/internal/seed"
)

func main() {
	users := flag.Int("users", seed.DefaultOptions.Users, "number of demo users to create")
	blogs := flag.Int("blogs", seed.DefaultOptions.Blogs, "number of demo blogs to create")
	reviews := flag.Int("reviews", seed.DefaultOptions.Reviews, "number of demo reviews to create")
	adminOnly := flag.Bool("admin-only", false, "only bootstrap the protected admin account")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if _, err := seed.EnsureProtectedAdmin(db, cfg.ProtectedAdminEmail, cfg.ProtectedAdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap protected admin: %v", err)
	}
	if *adminOnly {
		log.Println("Protected admin ready.")
		return
	}

	if err := seed.Run(db, seed.Options{Users: *users, Blogs: *blogs, Reviews: *reviews}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
