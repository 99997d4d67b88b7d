package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a named seeding preset loaded from a YAML file, so teams can
// share "demo", "load-test" and similar data shapes without editing flags.
type Profile struct {
	Name            string  `yaml:"name"`
	Users           int     `yaml:"users"`
	Posts           int     `yaml:"posts"`
	CommentsPerPost int     `yaml:"commentsPerPost"`
	ReactionRate    float64 `yaml:"reactionRate"`
	FollowRate      float64 `yaml:"followRate"`
	Clean           bool    `yaml:"clean"`
	SkipBcrypt      bool    `yaml:"skipBcrypt"`
}

// LoadProfile reads and validates a seeding profile from path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse seed profile %s: %w", path, err)
	}

	if p.Users <= 0 {
		return nil, fmt.Errorf("seed profile %s: users must be positive", path)
	}
	if p.Posts < 0 || p.CommentsPerPost < 0 {
		return nil, fmt.Errorf("seed profile %s: counts must not be negative", path)
	}
	if p.ReactionRate < 0 || p.ReactionRate > 1 || p.FollowRate < 0 || p.FollowRate > 1 {
		return nil, fmt.Errorf("seed profile %s: rates must be between 0 and 1", path)
	}

	return &p, nil
}

// Options converts the profile into seeder options.
func (p *Profile) Options() Options {
	return Options{
		NumUsers:        p.Users,
		NumPosts:        p.Posts,
		CommentsPerPost: p.CommentsPerPost,
		ReactionRate:    p.ReactionRate,
		FollowRate:      p.FollowRate,
		ShouldClean:     p.Clean,
		SkipBcrypt:      p.SkipBcrypt,
	}
}
