// Package seed provides helpers to create demo data for the application
// database. Intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"snapfeed/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Run populates the database with fake users and posts. Post URLs point at
// placeholder images; no media store upload happens during seeding.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := db.Exec("DELETE FROM posts").Error; err != nil {
			return fmt.Errorf("clean posts: %w", err)
		}
		if err := db.Exec("DELETE FROM users").Error; err != nil {
			return fmt.Errorf("clean users: %w", err)
		}
	}

	// Same hash for every seed user so demo logins work with "password123".
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := &models.User{
			Username: gofakeit.Username(),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	for i := 0; i < opts.NumPosts; i++ {
		owner := users[rand.Intn(len(users))]
		fileType := models.FileTypeImage
		url := gofakeit.ImageURL(640, 480)
		if rand.Intn(5) == 0 {
			fileType = models.FileTypeVideo
			url = "https://cdn.example.com/videos/" + gofakeit.UUID() + ".mp4"
		}

		post := &models.Post{
			UserID:    owner.ID,
			Caption:   gofakeit.Sentence(8),
			URL:       url,
			FileType:  fileType,
			FileName:  gofakeit.UUID(),
			CreatedAt: gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
	}
	log.Printf("Seeded %d posts", opts.NumPosts)

	return nil
}
