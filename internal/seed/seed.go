// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pinboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder populates the database with fake users, tickets and news
// posts.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seedable data, dependents first.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.MediaAsset{},
		&models.NewsPost{},
		&models.Ticket{},
		&models.User{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	log.Println("Cleared existing seed data")
	return nil
}

// CreateUser persists a fake user. All seeded users share the
// password "password123".
func (s *Seeder) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		PhotoURL:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		PasswordHash: string(hashed),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateTicket persists a fake ticket for the user, sometimes already
// resolved, with a created date spread over the past month.
func (s *Seeder) CreateTicket(user *models.User) (*models.Ticket, error) {
	priorities := []models.TicketPriority{
		models.PriorityLow, models.PriorityMedium, models.PriorityHigh,
	}
	created := s.pastTime(30)
	ticket := &models.Ticket{
		Title:                  gofakeit.Sentence(4),
		Description:            gofakeit.Paragraph(1, 2, 8, " "),
		UserID:                 user.ID,
		CreatedDate:            created,
		ExpectedResolutionDate: created.AddDate(0, 0, 3),
		UserPhoto:              user.PhotoURL,
		Category:               gofakeit.RandomString([]string{"plumbing", "electricity", "noise", "parking", "other"}),
		Priority:               priorities[s.rand.Intn(len(priorities))],
		Resolved:               s.rand.Intn(3) == 0,
	}
	if err := s.db.Create(ticket).Error; err != nil {
		return nil, err
	}
	return ticket, nil
}

// CreateNewsPost persists a fake bulletin post with random engagement
// from the given user pool.
func (s *Seeder) CreateNewsPost(author *models.User, pool []*models.User) (*models.NewsPost, error) {
	post := &models.NewsPost{
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 3, 8, " "),
		UserID:      author.ID,
		UserPhoto:   author.PhotoURL,
		CreatedDate: s.pastTime(60),
		PhotoURLs:   []string{fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())},
	}
	for _, u := range pool {
		if s.rand.Intn(3) == 0 {
			post.LikedUsers = append(post.LikedUsers, u.ID)
		}
		if s.rand.Intn(5) == 0 {
			post.FavUsers = append(post.FavUsers, u.ID)
		}
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Run seeds the requested number of users with tickets and posts.
func (s *Seeder) Run(numUsers, ticketsPerUser, numPosts int) error {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return fmt.Errorf("user seeding failed: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	tickets := 0
	for _, user := range users {
		for i := 0; i < ticketsPerUser; i++ {
			if _, err := s.CreateTicket(user); err != nil {
				return fmt.Errorf("ticket seeding failed: %w", err)
			}
			tickets++
		}
	}
	log.Printf("Seeded %d tickets", tickets)

	for i := 0; i < numPosts; i++ {
		author := users[s.rand.Intn(len(users))]
		if _, err := s.CreateNewsPost(author, users); err != nil {
			return fmt.Errorf("news seeding failed: %w", err)
		}
	}
	log.Printf("Seeded %d news posts", numPosts)
	return nil
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	daysBack := s.rand.Intn(maxDays)
	hoursBack := s.rand.Intn(24)
	minsBack := s.rand.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)
}
