// Package seed creates demo data for development and bootstraps the
// protected admin account.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"cinelog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data Run creates.
type Options struct {
	Users   int
	Blogs   int
	Reviews int
}

// DefaultOptions is a small but lively data set.
var DefaultOptions = Options{Users: 12, Blogs: 25, Reviews: 40}

// EnsureProtectedAdmin creates the protected admin account if it does not
// exist yet. The password is stored hashed like any other account's.
func EnsureProtectedAdmin(db *gorm.DB, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if !existing.IsAdmin || !existing.IsApproved {
			if err := db.Model(&existing).Updates(map[string]any{
				"is_admin": true, "is_approved": true,
			}).Error; err != nil {
				return nil, err
			}
			existing.IsAdmin = true
			existing.IsApproved = true
		}
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := models.User{
		Username:   "admin",
		Email:      email,
		Password:   string(hash),
		IsAdmin:    true,
		IsApproved: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}
	slog.Info("protected admin account created", "email", email)
	return &admin, nil
}

// Run populates the database with fake users, blogs, reviews, comments
// and likes. All seeded accounts share the password "password1234!ABC".
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte("password1234!ABC"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := models.User{
			Username:   fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:      fmt.Sprintf("seed%d_%s", i, strings.ToLower(gofakeit.Email())),
			Password:   string(hash),
			Bio:        gofakeit.Sentence(8),
			IsApproved: i%4 != 0, // leave some accounts pending for the approval queue
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil
	}

	approved := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.IsApproved {
			approved = append(approved, u)
		}
	}
	if len(approved) == 0 {
		return nil
	}

	blogs := make([]models.Blog, 0, opts.Blogs)
	for i := 0; i < opts.Blogs; i++ {
		author := approved[rand.Intn(len(approved))]
		blog := models.Blog{
			Title:     gofakeit.Sentence(5),
			Content:   gofakeit.Paragraph(2, 4, 8, "\n\n"),
			Tags:      models.StringList{gofakeit.HipsterWord(), gofakeit.HipsterWord()},
			UserID:    author.ID,
			Published: true,
			CreatedAt: gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
		}
		if err := db.Create(&blog).Error; err != nil {
			return fmt.Errorf("seeding blog %d: %w", i, err)
		}
		blogs = append(blogs, blog)
	}

	for i := 0; i < opts.Reviews; i++ {
		critic := approved[rand.Intn(len(approved))]
		review := models.Review{
			MovieID:    fmt.Sprintf("tt%07d", gofakeit.Number(1, 9999999)),
			MovieTitle: gofakeit.MovieName(),
			Rating:     gofakeit.Number(1, 10),
			Content:    gofakeit.Paragraph(1, 3, 10, " "),
			UserID:     critic.ID,
		}
		// Duplicate (user,movie) pairs are possible with random IDs, skip them.
		if err := db.Create(&review).Error; err != nil {
			continue
		}
	}

	for _, blog := range blogs {
		for _, fan := range approved {
			if rand.Intn(3) != 0 {
				continue
			}
			rel := models.Relation{
				SubjectID: fan.ID,
				ObjectID:  strconv.FormatUint(uint64(blog.ID), 10),
				Kind:      models.RelationBlogLike,
			}
			if err := db.Create(&rel).Error; err != nil {
				return fmt.Errorf("seeding like: %w", err)
			}
			if rand.Intn(2) == 0 {
				comment := models.Comment{
					Text:       gofakeit.Sentence(10),
					TargetType: models.CommentTargetBlog,
					TargetID:   blog.ID,
					UserID:     fan.ID,
				}
				if err := db.Create(&comment).Error; err != nil {
					return fmt.Errorf("seeding comment: %w", err)
				}
			}
		}
	}

	slog.Info("seed complete", "users", len(users), "blogs", len(blogs))
	return nil
}
