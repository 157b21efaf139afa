package server

import (
	"context"

	"pinboard/internal/models"

	"github.com/stretchr/testify/mock"
)

// detachCtx keeps the pooled *fasthttp.RequestCtx out of testify's
// recorded calls. Retaining it past the request is forbidden by
// fasthttp: formatting it later (AssertExpectations stringifies call
// arguments) re-parses the reset URI and corrupts the next request
// served by the same app. No test matches on the context, so an inert
// one is recorded instead.
func detachCtx(context.Context) context.Context { return context.Background() }

// MockUserRepository is a mock of the repository.UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(detachCtx(ctx), user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(detachCtx(ctx), id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(detachCtx(ctx), email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(detachCtx(ctx))
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockTicketRepository is a mock of the repository.TicketRepository interface
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	args := m.Called(detachCtx(ctx), ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	args := m.Called(detachCtx(ctx), id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByUserID(ctx context.Context, userID string) ([]*models.Ticket, error) {
	args := m.Called(detachCtx(ctx), userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(detachCtx(ctx), id, fields)
	return args.Error(0)
}

func (m *MockTicketRepository) ResolveAll(ctx context.Context, ids []string, userID string) (int64, error) {
	args := m.Called(detachCtx(ctx), ids, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(detachCtx(ctx))
	return args.Get(0).(int64), args.Error(1)
}

// MockNewsRepository is a mock of the repository.NewsRepository interface
type MockNewsRepository struct {
	mock.Mock
}

func (m *MockNewsRepository) Create(ctx context.Context, post *models.NewsPost) error {
	args := m.Called(detachCtx(ctx), post)
	return args.Error(0)
}

func (m *MockNewsRepository) GetByID(ctx context.Context, id string) (*models.NewsPost, error) {
	args := m.Called(detachCtx(ctx), id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NewsPost), args.Error(1)
}

func (m *MockNewsRepository) List(ctx context.Context) ([]*models.NewsPost, error) {
	args := m.Called(detachCtx(ctx))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NewsPost), args.Error(1)
}

func (m *MockNewsRepository) GetByUserID(ctx context.Context, userID string) ([]*models.NewsPost, error) {
	args := m.Called(detachCtx(ctx), userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NewsPost), args.Error(1)
}

func (m *MockNewsRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(detachCtx(ctx), id)
	return args.Error(0)
}

func (m *MockNewsRepository) HasEngaged(ctx context.Context, kind models.EngagementKind, postID, userID string) (bool, error) {
	args := m.Called(detachCtx(ctx), kind, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNewsRepository) AddEngagement(ctx context.Context, kind models.EngagementKind, postID, userID string) error {
	args := m.Called(detachCtx(ctx), kind, postID, userID)
	return args.Error(0)
}

func (m *MockNewsRepository) RemoveEngagement(ctx context.Context, kind models.EngagementKind, postID, userID string) error {
	args := m.Called(detachCtx(ctx), kind, postID, userID)
	return args.Error(0)
}

func (m *MockNewsRepository) ListEngagedBy(ctx context.Context, userID string) ([]*models.NewsPost, error) {
	args := m.Called(detachCtx(ctx), userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NewsPost), args.Error(1)
}

func (m *MockNewsRepository) SetPhotoURLs(ctx context.Context, postID string, urls []string) error {
	args := m.Called(detachCtx(ctx), postID, urls)
	return args.Error(0)
}

func (m *MockNewsRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(detachCtx(ctx))
	return args.Get(0).(int64), args.Error(1)
}

// MockMediaRepository is a mock of the repository.MediaRepository interface
type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) Create(ctx context.Context, asset *models.MediaAsset) error {
	args := m.Called(detachCtx(ctx), asset)
	return args.Error(0)
}

func (m *MockMediaRepository) GetByID(ctx context.Context, id string) (*models.MediaAsset, error) {
	args := m.Called(detachCtx(ctx), id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaAsset), args.Error(1)
}

func (m *MockMediaRepository) BindPhotoURL(ctx context.Context, id, photoURL string) error {
	args := m.Called(detachCtx(ctx), id, photoURL)
	return args.Error(0)
}

func (m *MockMediaRepository) MarkOrphaned(ctx context.Context, id string) error {
	args := m.Called(detachCtx(ctx), id)
	return args.Error(0)
}

func (m *MockMediaRepository) ListOrphaned(ctx context.Context) ([]*models.MediaAsset, error) {
	args := m.Called(detachCtx(ctx))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MediaAsset), args.Error(1)
}
