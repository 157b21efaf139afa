package service

import (
	"context"
	"testing"

	"pinboard/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newsRepoStub is a stub for repository.NewsRepository.
type newsRepoStub struct {
	createFn           func(context.Context, *models.NewsPost) error
	getByIDFn          func(context.Context, string) (*models.NewsPost, error)
	listFn             func(context.Context) ([]*models.NewsPost, error)
	getByUserIDFn      func(context.Context, string) ([]*models.NewsPost, error)
	deleteFn           func(context.Context, string) error
	hasEngagedFn       func(context.Context, models.EngagementKind, string, string) (bool, error)
	addEngagementFn    func(context.Context, models.EngagementKind, string, string) error
	removeEngagementFn func(context.Context, models.EngagementKind, string, string) error
	listEngagedByFn    func(context.Context, string) ([]*models.NewsPost, error)
	setPhotoURLsFn     func(context.Context, string, []string) error
	deleteAllFn        func(context.Context) (int64, error)
}

func (s *newsRepoStub) Create(ctx context.Context, post *models.NewsPost) error {
	return s.createFn(ctx, post)
}
func (s *newsRepoStub) GetByID(ctx context.Context, id string) (*models.NewsPost, error) {
	return s.getByIDFn(ctx, id)
}
func (s *newsRepoStub) List(ctx context.Context) ([]*models.NewsPost, error) {
	return s.listFn(ctx)
}
func (s *newsRepoStub) GetByUserID(ctx context.Context, userID string) ([]*models.NewsPost, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *newsRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *newsRepoStub) HasEngaged(ctx context.Context, kind models.EngagementKind, postID, userID string) (bool, error) {
	return s.hasEngagedFn(ctx, kind, postID, userID)
}
func (s *newsRepoStub) AddEngagement(ctx context.Context, kind models.EngagementKind, postID, userID string) error {
	return s.addEngagementFn(ctx, kind, postID, userID)
}
func (s *newsRepoStub) RemoveEngagement(ctx context.Context, kind models.EngagementKind, postID, userID string) error {
	return s.removeEngagementFn(ctx, kind, postID, userID)
}
func (s *newsRepoStub) ListEngagedBy(ctx context.Context, userID string) ([]*models.NewsPost, error) {
	return s.listEngagedByFn(ctx, userID)
}
func (s *newsRepoStub) SetPhotoURLs(ctx context.Context, postID string, urls []string) error {
	return s.setPhotoURLsFn(ctx, postID, urls)
}
func (s *newsRepoStub) DeleteAll(ctx context.Context) (int64, error) {
	return s.deleteAllFn(ctx)
}

func noopNewsRepo() *newsRepoStub {
	return &newsRepoStub{
		createFn:      func(_ context.Context, _ *models.NewsPost) error { return nil },
		getByIDFn:     func(_ context.Context, id string) (*models.NewsPost, error) { return &models.NewsPost{ID: id}, nil },
		listFn:        func(_ context.Context) ([]*models.NewsPost, error) { return nil, nil },
		getByUserIDFn: func(_ context.Context, _ string) ([]*models.NewsPost, error) { return nil, nil },
		deleteFn:      func(_ context.Context, _ string) error { return nil },
		hasEngagedFn: func(_ context.Context, _ models.EngagementKind, _, _ string) (bool, error) {
			return false, nil
		},
		addEngagementFn:    func(_ context.Context, _ models.EngagementKind, _, _ string) error { return nil },
		removeEngagementFn: func(_ context.Context, _ models.EngagementKind, _, _ string) error { return nil },
		listEngagedByFn:    func(_ context.Context, _ string) ([]*models.NewsPost, error) { return nil, nil },
		setPhotoURLsFn:     func(_ context.Context, _ string, _ []string) error { return nil },
		deleteAllFn:        func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// membershipNewsRepo backs the engagement calls with an in-memory set
// so toggle sequences behave like the real array columns.
type membershipNewsRepo struct {
	*newsRepoStub
	members map[string]bool
}

func newMembershipNewsRepo() *membershipNewsRepo {
	m := &membershipNewsRepo{
		newsRepoStub: noopNewsRepo(),
		members:      map[string]bool{},
	}
	m.hasEngagedFn = func(_ context.Context, _ models.EngagementKind, _, userID string) (bool, error) {
		return m.members[userID], nil
	}
	m.addEngagementFn = func(_ context.Context, _ models.EngagementKind, _, userID string) error {
		m.members[userID] = true
		return nil
	}
	m.removeEngagementFn = func(_ context.Context, _ models.EngagementKind, _, userID string) error {
		delete(m.members, userID)
		return nil
	}
	return m
}

func TestNewsService_CreatePost(t *testing.T) {
	var created *models.NewsPost
	repo := noopNewsRepo()
	repo.createFn = func(_ context.Context, post *models.NewsPost) error {
		created = post
		return nil
	}

	svc := NewNewsService(repo, knownUserRepo(testUser))
	post, err := svc.CreatePost(context.Background(), CreateNewsPostInput{
		Title:       "Bake sale",
		Description: "This sunday at the clubhouse",
		UserID:      testUser.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, testUser.PhotoURL, post.UserPhoto)
}

func TestNewsService_CreatePost_UnknownUser(t *testing.T) {
	svc := NewNewsService(noopNewsRepo(), knownUserRepo(testUser))
	_, err := svc.CreatePost(context.Background(), CreateNewsPostInput{
		Title:  "Bake sale",
		UserID: "nobody",
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestNewsService_ToggleEngagement_Closure(t *testing.T) {
	repo := newMembershipNewsRepo()
	svc := NewNewsService(repo, knownUserRepo(testUser))
	ctx := context.Background()

	// First toggle engages, the second reports the negation and
	// restores the original membership.
	engaged, err := svc.ToggleEngagement(ctx, models.EngagementLike, "p1", testUser.ID)
	require.NoError(t, err)
	assert.True(t, engaged)
	assert.True(t, repo.members[testUser.ID])

	engaged, err = svc.ToggleEngagement(ctx, models.EngagementLike, "p1", testUser.ID)
	require.NoError(t, err)
	assert.False(t, engaged)
	assert.False(t, repo.members[testUser.ID])
}

func TestNewsService_ToggleEngagement_Errors(t *testing.T) {
	repo := noopNewsRepo()
	repo.getByIDFn = func(_ context.Context, _ string) (*models.NewsPost, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewNewsService(repo, knownUserRepo(testUser))
	ctx := context.Background()

	_, err := svc.ToggleEngagement(ctx, models.EngagementLike, "missing", testUser.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	_, err = svc.ToggleEngagement(ctx, models.EngagementLike, "p1", "nobody")
	require.Error(t, err)

	_, err = svc.ToggleEngagement(ctx, "bookmark", "p1", testUser.ID)
	require.Error(t, err)
	appErr, ok = err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "INVALID_VALUE", appErr.Code)
}

func TestNewsService_DeletePost_OwnerOnly(t *testing.T) {
	repo := noopNewsRepo()
	repo.getByIDFn = func(_ context.Context, id string) (*models.NewsPost, error) {
		return &models.NewsPost{ID: id, UserID: testUser.ID}, nil
	}
	svc := NewNewsService(repo, knownUserRepo(testUser))
	ctx := context.Background()

	assert.NoError(t, svc.DeletePost(ctx, "p1", testUser.ID))

	err := svc.DeletePost(ctx, "p1", "someone-else")
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestNewsService_ListEngagement_SplitsByKind(t *testing.T) {
	repo := noopNewsRepo()
	repo.listEngagedByFn = func(_ context.Context, _ string) ([]*models.NewsPost, error) {
		return []*models.NewsPost{
			{ID: "liked-only", LikedUsers: pq.StringArray{testUser.ID}},
			{ID: "faved-only", FavUsers: pq.StringArray{testUser.ID}},
			{ID: "both", LikedUsers: pq.StringArray{testUser.ID}, FavUsers: pq.StringArray{testUser.ID}},
		}, nil
	}
	svc := NewNewsService(repo, knownUserRepo(testUser))

	feed, err := svc.ListEngagement(context.Background(), testUser.ID)
	require.NoError(t, err)
	require.Len(t, feed.LikedNews, 2)
	require.Len(t, feed.FavNews, 2)
	assert.Equal(t, "liked-only", feed.LikedNews[0].ID)
	assert.Equal(t, "both", feed.LikedNews[1].ID)
	assert.Equal(t, "faved-only", feed.FavNews[0].ID)
	assert.Equal(t, "both", feed.FavNews[1].ID)
}
