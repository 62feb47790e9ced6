package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"blogapi/internal/config"
	"blogapi/internal/db"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/repository"
	"blogapi/internal/service"
)

// SeedUser is one entry of the fixture: a user and the posts they author.
type SeedUser struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Posts    []string `json:"posts"`
}

type seedResult struct {
	usersCreated int
	usersSkipped int
	postsCreated int
}

func main() {
	source := flag.String("fixture", "seed.json", "path or http(s) URL of the JSON fixture")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	log.Printf("Loading fixture from: %s", *source)
	users, err := loadFixture(*source)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}
	log.Printf("Loaded %d users", len(users))

	userRepo := repository.NewUserRepository(gormDB)
	credentials := service.NewCredentialService(userRepo, nil, cfg.BcryptCost)
	posts := service.NewPostService(repository.NewPostRepository(gormDB), nil, 0, nil, nil)

	res, err := seed(context.Background(), credentials, posts, users)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", res.usersCreated)
	log.Printf("  - Existing users skipped: %d", res.usersSkipped)
	log.Printf("  - Posts created: %d", res.postsCreated)
}

// loadFixture reads the fixture from a local file or over HTTP.
func loadFixture(source string) ([]SeedUser, error) {
	var body []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch fixture: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fixture server returned status code: %d", resp.StatusCode)
		}
		if body, err = io.ReadAll(resp.Body); err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
	} else {
		var err error
		if body, err = os.ReadFile(source); err != nil {
			return nil, fmt.Errorf("failed to read fixture: %w", err)
		}
	}

	var users []SeedUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return users, nil
}

// seed registers every fixture user that does not exist yet and creates
// their posts. Users already present are left alone, posts included.
func seed(ctx context.Context, credentials service.CredentialService, posts service.PostService, users []SeedUser) (seedResult, error) {
	var res seedResult
	for _, u := range users {
		userID, err := credentials.Register(ctx, u.Username, u.Password)
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			log.Printf("Skipping existing user: %s", u.Username)
			res.usersSkipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("error registering user %q: %w", u.Username, err)
		}
		res.usersCreated++

		for _, content := range u.Posts {
			if _, err := posts.Create(ctx, userID, strings.TrimSpace(u.Username), content); err != nil {
				return res, fmt.Errorf("error creating post for %q: %w", u.Username, err)
			}
			res.postsCreated++
		}
	}
	return res, nil
}
