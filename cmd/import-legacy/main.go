// Command main imports a legacy JSON export (users.json and posts.json from
// the old Node backend) into the Ripple database. Legacy string ids are
// remapped to the new numeric ids; follow, reaction and comment references
// are resolved through that mapping.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type legacyUser struct {
	ID         string   `json:"_id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Avatar     string   `json:"avatar"`
	Bio        string   `json:"bio"`
	Followers  []string `json:"followers"`
	Followings []string `json:"followings"`
}

type legacyComment struct {
	UserID    string `json:"userId"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type legacyPost struct {
	ID        string          `json:"_id"`
	UserID    string          `json:"userId"`
	Text      string          `json:"text"`
	Image     string          `json:"image"`
	LikedBy   []string        `json:"likedBy"`
	UnlikedBy []string        `json:"unlikedBy"`
	Comments  []legacyComment `json:"comments"`
	CreatedAt string          `json:"createdAt"`
}

func main() {
	usersPath := flag.String("users", "users.json", "Path to the legacy users export")
	postsPath := flag.String("posts", "posts.json", "Path to the legacy posts export")
	dryRun := flag.Bool("dry-run", false, "Parse and report without writing to the database")
	flag.Parse()

	users, err := readJSON[legacyUser](*usersPath)
	if err != nil {
		log.Fatalf("Failed to read users export: %v", err)
	}
	posts, err := readJSON[legacyPost](*postsPath)
	if err != nil {
		log.Fatalf("Failed to read posts export: %v", err)
	}

	log.Printf("Parsed %d users, %d posts", len(users), len(posts))
	if *dryRun {
		log.Println("Dry run, nothing written.")
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := importAll(db, users, posts); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Println("Import complete.")
}

func readJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return items, nil
}

// importAll writes the whole export in one transaction so a half-imported
// database never survives a failure.
func importAll(db *gorm.DB, users []legacyUser, posts []legacyPost) error {
	return db.Transaction(func(tx *gorm.DB) error {
		idMap := make(map[string]uint, len(users))

		for _, lu := range users {
			user := models.User{
				Name:     lu.Name,
				Email:    lu.Email,
				Password: lu.Password,
				Avatar:   lu.Avatar,
				Bio:      lu.Bio,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("import user %s: %w", lu.Email, err)
			}
			idMap[lu.ID] = user.ID
		}
		log.Printf("✓ %d users imported", len(idMap))

		// The legacy export stored the graph twice, on both sides of the
		// edge. The followings arrays are authoritative; followers are a
		// derived view and are ignored.
		var edges int
		for _, lu := range users {
			followerID := idMap[lu.ID]
			for _, legacyID := range lu.Followings {
				followeeID, ok := idMap[legacyID]
				if !ok || followeeID == followerID {
					continue
				}
				edge := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
					return fmt.Errorf("import follow edge %s -> %s: %w", lu.ID, legacyID, err)
				}
				edges++
			}
		}
		log.Printf("✓ %d follow edges imported", edges)

		var reactions, comments int
		for _, lp := range posts {
			authorID, ok := idMap[lp.UserID]
			if !ok {
				log.Printf("Skipping post %s: unknown author %s", lp.ID, lp.UserID)
				continue
			}
			post := models.Post{
				UserID:    authorID,
				Content:   lp.Text,
				ImageURL:  lp.Image,
				CreatedAt: parseLegacyTime(lp.CreatedAt),
			}
			if err := tx.Create(&post).Error; err != nil {
				return fmt.Errorf("import post %s: %w", lp.ID, err)
			}

			n, err := importReactions(tx, idMap, post.ID, lp)
			if err != nil {
				return err
			}
			reactions += n

			for _, lc := range lp.Comments {
				commenterID, ok := idMap[lc.UserID]
				if !ok {
					continue
				}
				comment := models.Comment{
					PostID:    post.ID,
					UserID:    commenterID,
					Content:   lc.Text,
					CreatedAt: parseLegacyTime(lc.CreatedAt),
				}
				if err := tx.Create(&comment).Error; err != nil {
					return fmt.Errorf("import comment on post %s: %w", lp.ID, err)
				}
				comments++
			}
		}
		log.Printf("✓ %d posts, %d reactions, %d comments imported", len(posts), reactions, comments)

		return nil
	})
}

// importReactions resolves a post's likedBy/unlikedBy arrays. A user listed
// in both keeps only the like, matching how the API would have converged.
func importReactions(tx *gorm.DB, idMap map[string]uint, postID uint, lp legacyPost) (int, error) {
	kinds := make(map[uint]string)
	for _, legacyID := range lp.UnlikedBy {
		if userID, ok := idMap[legacyID]; ok {
			kinds[userID] = models.ReactionDislike
		}
	}
	for _, legacyID := range lp.LikedBy {
		if userID, ok := idMap[legacyID]; ok {
			kinds[userID] = models.ReactionLike
		}
	}

	for userID, kind := range kinds {
		reaction := models.Reaction{UserID: userID, PostID: postID, Kind: kind}
		if err := tx.Create(&reaction).Error; err != nil {
			return 0, fmt.Errorf("import reaction on post %s: %w", lp.ID, err)
		}
	}
	return len(kinds), nil
}

func parseLegacyTime(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Now()
}
