// Package main provides admin management utilities for Cinelog.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"cinelog/internal/config"
	"cinelog/internal/database"
	"cinelog/internal/models"
	"cinelog/internal/repository"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin promote <user_id>      - Promote user to admin")
		fmt.Println("  go run ./cmd/admin demote <user_id>       - Demote user from admin")
		fmt.Println("  go run ./cmd/admin approve <user_id>      - Approve a pending account")
		fmt.Println("  go run ./cmd/admin list-admins            - List all admins")
		fmt.Println("  go run ./cmd/admin list-pending           - List pending access requests")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "promote":
		setAdmin(ctx, db, users, cfg.ProtectedAdminEmail, requireIDArg(), true)
	case "demote":
		setAdmin(ctx, db, users, cfg.ProtectedAdminEmail, requireIDArg(), false)
	case "approve":
		approve(ctx, users, requireIDArg())
	case "list-admins":
		listAdmins(db)
	case "list-pending":
		listPending(ctx, users)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func requireIDArg() uint {
	if len(os.Args) < 3 {
		fmt.Println("A <user_id> argument is required")
		os.Exit(1)
	}
	id, err := strconv.ParseUint(os.Args[2], 10, 32)
	if err != nil || id == 0 {
		fmt.Printf("Invalid user ID: %s\n", os.Args[2])
		os.Exit(1)
	}
	return uint(id)
}

func setAdmin(ctx context.Context, db *gorm.DB, users repository.UserRepository, protectedEmail string, id uint, wantAdmin bool) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %d not found\n", id)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.IsAdmin == wantAdmin {
		state := "not an admin"
		if wantAdmin {
			state = "already an admin"
		}
		fmt.Printf("User %s (ID: %d) is %s\n", user.Username, user.ID, state)
		return
	}

	// ToggleAdmin enforces the protected-admin rule for demotion.
	updated, err := users.ToggleAdmin(ctx, id, protectedEmail)
	if err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	verb := "demoted"
	if updated.IsAdmin {
		verb = "promoted"
	}
	fmt.Printf("Successfully %s %s (ID: %d)\n", verb, updated.Username, updated.ID)
}

func approve(ctx context.Context, users repository.UserRepository, id uint) {
	user, err := users.Approve(ctx, id)
	if err != nil {
		log.Fatalf("Failed to approve account: %v", err)
	}
	fmt.Printf("Account %s (ID: %d) approved\n", user.Username, user.ID)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		log.Fatalf("Failed to fetch admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found in the system")
		return
	}
	fmt.Println("Admins:")
	for _, a := range admins {
		fmt.Printf("  %d\t%s\t%s\n", a.ID, a.Username, a.Email)
	}
}

func listPending(ctx context.Context, users repository.UserRepository) {
	pending, err := users.ListPending(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch pending requests: %v", err)
	}

	if len(pending) == 0 {
		fmt.Println("No pending access requests")
		return
	}
	fmt.Println("Pending access requests:")
	for _, u := range pending {
		fmt.Printf("  %d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.CreatedAt.Format("2006-01-02"))
	}
}
