package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	NumPosts        int
	CommentsPerPost int
	// ReactionRate is the chance, per user and post, that the user reacted.
	ReactionRate float64
	// FollowRate is the chance, per ordered user pair, of a follow edge.
	FollowRate float64
	ShouldClean bool
	SkipBcrypt  bool
}

// DefaultOptions returns a small but fully connected data set, enough to
// exercise every feed and the suggestion ranking.
func DefaultOptions() Options {
	return Options{
		NumUsers:        25,
		NumPosts:        120,
		CommentsPerPost: 3,
		ReactionRate:    0.25,
		FollowRate:      0.15,
		ShouldClean:     false,
	}
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, FactoryOptions{SkipBcrypt: opts.SkipBcrypt})

	users, err := createUsers(db, factory, opts.NumUsers, opts.SkipBcrypt)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createSocialMesh(factory, users, posts, opts); err != nil {
		return fmt.Errorf("failed to create social mesh: %w", err)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE reactions, comments, follows, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, factory *Factory, count int, skipBcrypt bool) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include some specific users for consistency if cleaning
	if count >= 3 {
		password := "password123"
		if !skipBcrypt {
			hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			password = string(hashed)
		}
		baseUsers := []string{"alice", "bob", "test"}
		for _, name := range baseUsers {
			user := &models.User{
				Name:     name,
				Email:    fmt.Sprintf("%s@example.com", name),
				Password: password,
				Bio:      "One of the OGs.",
				Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", name),
			}
			if err := db.Create(user).Error; err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createPosts(factory *Factory, users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, count)

	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		post, err := factory.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}

// createSocialMesh wires the generated users and posts together: follow
// edges, reactions, and comments, so the feeds and the popularity ranking
// have something to show.
func createSocialMesh(factory *Factory, users []*models.User, posts []*models.Post, opts Options) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var follows int
	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID || r.Float64() >= opts.FollowRate {
				continue
			}
			if err := factory.CreateFollow(follower, followee); err != nil {
				return err
			}
			follows++
		}
	}
	log.Printf("✓ %d follow edges created", follows)

	var reactions int
	for _, post := range posts {
		for _, user := range users {
			if r.Float64() >= opts.ReactionRate {
				continue
			}
			kind := models.ReactionLike
			// Dislikes are rarer than likes.
			if r.Float64() < 0.2 {
				kind = models.ReactionDislike
			}
			if err := factory.CreateReaction(user, post, kind); err != nil {
				return err
			}
			reactions++
		}
	}
	log.Printf("✓ %d reactions created", reactions)

	var comments int
	for _, post := range posts {
		n := r.Intn(opts.CommentsPerPost + 1)
		for i := 0; i < n; i++ {
			commenter := users[r.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, post); err != nil {
				return err
			}
			comments++
		}
	}
	log.Printf("✓ %d comments created", comments)

	return nil
}
