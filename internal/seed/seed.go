// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"plaza/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls the size and shape of the generated dataset.
type Options struct {
	Users    int
	Blogs    int
	MaxDays  int // spread created_at over this many days back
	Password string
}

// Seeder builds domain entities and persists them to the database.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	if opts.Password == "" {
		opts.Password = "password123"
	}
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// ClearAll truncates every seeded table.
func (s *Seeder) ClearAll() error {
	return s.db.Exec(
		"TRUNCATE TABLE notifications, comment_likes, comments, favorites, blogs, user_blocks, follows, users RESTART IDENTITY CASCADE",
	).Error
}

// Run generates users, a follow mesh, blogs, favorites and comment threads.
func (s *Seeder) Run() error {
	users, err := s.seedUsers()
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := s.seedFollowMesh(users); err != nil {
		return fmt.Errorf("seed follows: %w", err)
	}
	blogs, err := s.seedBlogs(users)
	if err != nil {
		return fmt.Errorf("seed blogs: %w", err)
	}
	if err := s.seedComments(users, blogs); err != nil {
		return fmt.Errorf("seed comments: %w", err)
	}
	return s.seedFavorites(users, blogs)
}

func (s *Seeder) pastTime() time.Time {
	daysBack := s.rng.Intn(s.opts.MaxDays)
	return time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(s.rng.Intn(24))*time.Hour -
			time.Duration(s.rng.Intn(60))*time.Minute)
}

func (s *Seeder) seedUsers() ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.opts.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		user := &models.User{
			Username: username,
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hash),
			Role:     models.RoleUser,
			IsActive: true,
			Bio:      gofakeit.Sentence(8),
			Avatar:   fmt.Sprintf("https://api.dicebear.com/7.x/bottts/svg?seed=%s", username),
		}
		user.CreatedAt = s.pastTime()
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	// One known admin account for local testing.
	if len(users) > 0 {
		if err := s.db.Model(users[0]).Update("role", models.RoleAdmin).Error; err != nil {
			return nil, err
		}
	}
	return users, nil
}

// seedFollowMesh wires a sparse random follow graph and sets the denormalized
// counters to match it exactly.
func (s *Seeder) seedFollowMesh(users []*models.User) error {
	following := make(map[uint]int)
	followers := make(map[uint]int)

	for _, follower := range users {
		count := s.rng.Intn(len(users)/3 + 1)
		seen := map[uint]bool{follower.ID: true}
		for j := 0; j < count; j++ {
			target := users[s.rng.Intn(len(users))]
			if seen[target.ID] {
				continue
			}
			seen[target.ID] = true
			if err := s.db.Create(&models.Follow{
				FollowerID: follower.ID,
				FollowedID: target.ID,
			}).Error; err != nil {
				return err
			}
			following[follower.ID]++
			followers[target.ID]++
		}
	}

	for _, u := range users {
		if err := s.db.Model(&models.User{}).Where("id = ?", u.ID).
			Updates(map[string]interface{}{
				"following_count": following[u.ID],
				"followers_count": followers[u.ID],
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedBlogs(users []*models.User) ([]*models.Blog, error) {
	blogs := make([]*models.Blog, 0, s.opts.Blogs)
	for i := 0; i < s.opts.Blogs; i++ {
		author := users[s.rng.Intn(len(users))]
		blog := &models.Blog{
			Title:     gofakeit.Sentence(6),
			Content:   gofakeit.Paragraph(3, 5, 12, "\n\n"),
			UserID:    author.ID,
			ViewCount: s.rng.Intn(5000),
		}
		blog.CreatedAt = s.pastTime()
		if err := s.db.Create(blog).Error; err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}
	return blogs, nil
}

// seedComments creates top-level comments with occasional replies, keeping
// parent_id pointed at the top-level comment and like_count equal to the
// generated like rows.
func (s *Seeder) seedComments(users []*models.User, blogs []*models.Blog) error {
	for _, blog := range blogs {
		for i := 0; i < s.rng.Intn(6); i++ {
			author := users[s.rng.Intn(len(users))]
			top := &models.Comment{
				Content:      gofakeit.Sentence(10),
				UserID:       author.ID,
				BlogID:       blog.ID,
				FromUserName: author.Username,
			}
			if err := s.db.Create(top).Error; err != nil {
				return err
			}
			if err := s.seedLikes(users, top); err != nil {
				return err
			}

			for j := 0; j < s.rng.Intn(3); j++ {
				replier := users[s.rng.Intn(len(users))]
				reply := &models.Comment{
					Content:       gofakeit.Sentence(8),
					UserID:        replier.ID,
					BlogID:        blog.ID,
					ParentID:      &top.ID,
					ReplyToUserID: &author.ID,
					FromUserName:  replier.Username,
					ToUserName:    author.Username,
				}
				if err := s.db.Create(reply).Error; err != nil {
					return err
				}
				if err := s.seedLikes(users, reply); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Seeder) seedLikes(users []*models.User, comment *models.Comment) error {
	count := s.rng.Intn(4)
	seen := map[uint]bool{}
	likes := 0
	for i := 0; i < count; i++ {
		liker := users[s.rng.Intn(len(users))]
		if seen[liker.ID] {
			continue
		}
		seen[liker.ID] = true
		if err := s.db.Create(&models.CommentLike{
			UserID:    liker.ID,
			CommentID: comment.ID,
		}).Error; err != nil {
			return err
		}
		likes++
	}
	if likes == 0 {
		return nil
	}
	return s.db.Model(&models.Comment{}).Where("id = ?", comment.ID).
		Update("like_count", likes).Error
}

func (s *Seeder) seedFavorites(users []*models.User, blogs []*models.Blog) error {
	for _, blog := range blogs {
		count := s.rng.Intn(5)
		seen := map[uint]bool{}
		favorites := 0
		for i := 0; i < count; i++ {
			fan := users[s.rng.Intn(len(users))]
			if seen[fan.ID] {
				continue
			}
			seen[fan.ID] = true
			if err := s.db.Create(&models.Favorite{
				UserID: fan.ID,
				BlogID: blog.ID,
			}).Error; err != nil {
				return err
			}
			favorites++
		}
		if favorites == 0 {
			continue
		}
		if err := s.db.Model(&models.Blog{}).Where("id = ?", blog.ID).
			Update("favorite_count", favorites).Error; err != nil {
			return err
		}
	}
	return nil
}
