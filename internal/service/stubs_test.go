package service

import (
	"context"
	"sync"
	"time"

	"plaza/internal/models"
)

// dispatcherStub records dispatched notifications synchronously.
type dispatcherStub struct {
	mu     sync.Mutex
	inputs []DispatchInput
}

func (d *dispatcherStub) Dispatch(input DispatchInput) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inputs = append(d.inputs, input)
}

func (d *dispatcherStub) recorded() []DispatchInput {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DispatchInput(nil), d.inputs...)
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deactivateFn    func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Deactivate(ctx context.Context, id uint) error {
	return s.deactivateFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			u := &models.User{Username: "user", Role: models.RoleUser, IsActive: true}
			u.ID = id
			return u, nil
		},
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deactivateFn:    func(context.Context, uint) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

type followRepoStub struct {
	createFn        func(context.Context, uint, uint) error
	deleteFn        func(context.Context, uint, uint) error
	existsFn        func(context.Context, uint, uint) (bool, error)
	listFollowingFn func(context.Context, uint) ([]models.User, error)
	listFollowersFn func(context.Context, uint) ([]models.User, error)
	followingIDsFn  func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followedID uint) error {
	return s.createFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followedID uint) error {
	return s.deleteFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followedID)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	return s.listFollowingFn(ctx, userID)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.listFollowersFn(ctx, userID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:        func(context.Context, uint, uint) error { return nil },
		deleteFn:        func(context.Context, uint, uint) error { return nil },
		existsFn:        func(context.Context, uint, uint) (bool, error) { return false, nil },
		listFollowingFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		listFollowersFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followingIDsFn:  func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

type blockRepoStub struct {
	createFn        func(context.Context, *models.UserBlock) error
	deleteFn        func(context.Context, uint, uint) error
	listByBlockerFn func(context.Context, uint) ([]models.UserBlock, error)
	existsFn        func(context.Context, uint, uint) (bool, error)
	existsEitherFn  func(context.Context, uint, uint) (bool, error)
}

func (s *blockRepoStub) Create(ctx context.Context, block *models.UserBlock) error {
	return s.createFn(ctx, block)
}
func (s *blockRepoStub) Delete(ctx context.Context, blockerID, blockedID uint) error {
	return s.deleteFn(ctx, blockerID, blockedID)
}
func (s *blockRepoStub) ListByBlocker(ctx context.Context, blockerID uint) ([]models.UserBlock, error) {
	return s.listByBlockerFn(ctx, blockerID)
}
func (s *blockRepoStub) Exists(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	return s.existsFn(ctx, blockerID, blockedID)
}
func (s *blockRepoStub) ExistsEither(ctx context.Context, userA, userB uint) (bool, error) {
	return s.existsEitherFn(ctx, userA, userB)
}

func noopBlockRepo() *blockRepoStub {
	return &blockRepoStub{
		createFn:        func(context.Context, *models.UserBlock) error { return nil },
		deleteFn:        func(context.Context, uint, uint) error { return nil },
		listByBlockerFn: func(context.Context, uint) ([]models.UserBlock, error) { return nil, nil },
		existsFn:        func(context.Context, uint, uint) (bool, error) { return false, nil },
		existsEitherFn:  func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

type blogRepoStub struct {
	createFn             func(context.Context, *models.Blog) error
	getByIDFn            func(context.Context, uint) (*models.Blog, error)
	listFn               func(context.Context, int, int) ([]models.Blog, error)
	listByUserFn         func(context.Context, uint, int, int) ([]models.Blog, error)
	deleteFn             func(context.Context, uint) error
	incrementViewCountFn func(context.Context, uint) error
	favoriteFn           func(context.Context, uint, uint) error
	unfavoriteFn         func(context.Context, uint, uint) error
	isFavoritedFn        func(context.Context, uint, uint) (bool, error)
}

func (s *blogRepoStub) Create(ctx context.Context, blog *models.Blog) error {
	return s.createFn(ctx, blog)
}
func (s *blogRepoStub) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	return s.getByIDFn(ctx, id)
}
func (s *blogRepoStub) List(ctx context.Context, limit, offset int) ([]models.Blog, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *blogRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Blog, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *blogRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *blogRepoStub) IncrementViewCount(ctx context.Context, id uint) error {
	return s.incrementViewCountFn(ctx, id)
}
func (s *blogRepoStub) Favorite(ctx context.Context, userID, blogID uint) error {
	return s.favoriteFn(ctx, userID, blogID)
}
func (s *blogRepoStub) Unfavorite(ctx context.Context, userID, blogID uint) error {
	return s.unfavoriteFn(ctx, userID, blogID)
}
func (s *blogRepoStub) IsFavorited(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.isFavoritedFn(ctx, userID, blogID)
}

func noopBlogRepo() *blogRepoStub {
	return &blogRepoStub{
		createFn: func(context.Context, *models.Blog) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Blog, error) {
			b := &models.Blog{Title: "title", Content: "content", UserID: 1}
			b.ID = id
			return b, nil
		},
		listFn:               func(context.Context, int, int) ([]models.Blog, error) { return nil, nil },
		listByUserFn:         func(context.Context, uint, int, int) ([]models.Blog, error) { return nil, nil },
		deleteFn:             func(context.Context, uint) error { return nil },
		incrementViewCountFn: func(context.Context, uint) error { return nil },
		favoriteFn:           func(context.Context, uint, uint) error { return nil },
		unfavoriteFn:         func(context.Context, uint, uint) error { return nil },
		isFavoritedFn:        func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

type commentRepoStub struct {
	createFn             func(context.Context, *models.Comment) error
	getByIDFn            func(context.Context, uint) (*models.Comment, error)
	listTopLevelByBlogFn func(context.Context, uint) ([]*models.Comment, error)
	listRepliesByBlogFn  func(context.Context, uint) ([]*models.Comment, error)
	deleteWithRepliesFn  func(context.Context, uint) (int64, error)
	isLikedFn            func(context.Context, uint, uint) (bool, error)
	addLikeFn            func(context.Context, uint, uint) (int, error)
	removeLikeFn         func(context.Context, uint, uint) (int, error)
	likedCommentIDsFn    func(context.Context, uint, []uint) ([]uint, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListTopLevelByBlog(ctx context.Context, blogID uint) ([]*models.Comment, error) {
	return s.listTopLevelByBlogFn(ctx, blogID)
}
func (s *commentRepoStub) ListRepliesByBlog(ctx context.Context, blogID uint) ([]*models.Comment, error) {
	return s.listRepliesByBlogFn(ctx, blogID)
}
func (s *commentRepoStub) DeleteWithReplies(ctx context.Context, id uint) (int64, error) {
	return s.deleteWithRepliesFn(ctx, id)
}
func (s *commentRepoStub) IsLiked(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, commentID)
}
func (s *commentRepoStub) AddLike(ctx context.Context, userID, commentID uint) (int, error) {
	return s.addLikeFn(ctx, userID, commentID)
}
func (s *commentRepoStub) RemoveLike(ctx context.Context, userID, commentID uint) (int, error) {
	return s.removeLikeFn(ctx, userID, commentID)
}
func (s *commentRepoStub) LikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) ([]uint, error) {
	return s.likedCommentIDsFn(ctx, userID, commentIDs)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			c := &models.Comment{Content: "hello", UserID: 1, BlogID: 1}
			c.ID = id
			return c, nil
		},
		listTopLevelByBlogFn: func(context.Context, uint) ([]*models.Comment, error) { return nil, nil },
		listRepliesByBlogFn:  func(context.Context, uint) ([]*models.Comment, error) { return nil, nil },
		deleteWithRepliesFn:  func(context.Context, uint) (int64, error) { return 1, nil },
		isLikedFn:            func(context.Context, uint, uint) (bool, error) { return false, nil },
		addLikeFn:            func(context.Context, uint, uint) (int, error) { return 1, nil },
		removeLikeFn:         func(context.Context, uint, uint) (int, error) { return 0, nil },
		likedCommentIDsFn:    func(context.Context, uint, []uint) ([]uint, error) { return nil, nil },
	}
}

type notificationRepoStub struct {
	createFn          func(context.Context, *models.Notification) error
	listByRecipientFn func(context.Context, uint, bool, int, int) ([]models.Notification, error)
	unreadCountFn     func(context.Context, uint) (int64, error)
	markReadFn        func(context.Context, uint, uint) error
	markAllReadFn     func(context.Context, uint) error
	purgeExpiredFn    func(context.Context, time.Time) (int64, error)
}

func (s *notificationRepoStub) Create(ctx context.Context, notification *models.Notification) error {
	return s.createFn(ctx, notification)
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	return s.listByRecipientFn(ctx, recipientID, unreadOnly, limit, offset)
}
func (s *notificationRepoStub) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.unreadCountFn(ctx, recipientID)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, recipientID, id uint) error {
	return s.markReadFn(ctx, recipientID, id)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.markAllReadFn(ctx, recipientID)
}
func (s *notificationRepoStub) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.purgeExpiredFn(ctx, now)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn: func(context.Context, *models.Notification) error { return nil },
		listByRecipientFn: func(context.Context, uint, bool, int, int) ([]models.Notification, error) {
			return nil, nil
		},
		unreadCountFn:  func(context.Context, uint) (int64, error) { return 0, nil },
		markReadFn:     func(context.Context, uint, uint) error { return nil },
		markAllReadFn:  func(context.Context, uint) error { return nil },
		purgeExpiredFn: func(context.Context, time.Time) (int64, error) { return 0, nil },
	}
}
