package service

import (
	"context"
	"fmt"
	"strings"

	"plaza/internal/models"
	"plaza/internal/moderation"
	"plaza/internal/observability"
	"plaza/internal/repository"
)

const maxCommentLength = 1000

// CommentService owns the depth-2 comment tree under blogs: top-level
// comments, replies flattened to their top-level ancestor, and per-comment
// likes.
type CommentService struct {
	comments   repository.CommentRepository
	blogs      repository.BlogRepository
	users      repository.UserRepository
	dispatcher NotificationDispatcher
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	comments repository.CommentRepository,
	blogs repository.BlogRepository,
	users repository.UserRepository,
	dispatcher NotificationDispatcher,
) *CommentService {
	return &CommentService{comments: comments, blogs: blogs, users: users, dispatcher: dispatcher}
}

// validateCommentContent rejects empty, oversized and strict-filtered text,
// in that order.
func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("comment content cannot be empty")
	}
	if len([]rune(content)) > maxCommentLength {
		return models.NewValidationError(fmt.Sprintf("comment content cannot exceed %d characters", maxCommentLength))
	}
	if result := moderation.Check(content, true); !result.IsValid {
		observability.ModerationRejections.WithLabelValues("comment").Inc()
		return models.NewModerationError("comment contains prohibited words")
	}
	return nil
}

// CreateComment posts a top-level comment on a blog and notifies the blog
// owner unless they are the author.
func (s *CommentService) CreateComment(ctx context.Context, userID, blogID uint, content string) (*models.Comment, error) {
	blog, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:      content,
		UserID:       userID,
		BlogID:       blogID,
		FromUserName: author.Username,
		ToUserName:   blog.User.Username,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if blog.UserID != userID {
		s.dispatcher.Dispatch(DispatchInput{
			RecipientID: blog.UserID,
			SenderID:    userID,
			SenderName:  author.Username,
			Type:        models.NotificationComment,
			BlogID:      &blogID,
			CommentID:   &comment.ID,
		})
	}
	return comment, nil
}

// CreateReply posts a reply under a comment. Replies to replies are
// reparented onto the top-level ancestor so the tree never exceeds two
// levels; the addressee (replyToUserID, or the parent's author when nil)
// is recorded and notified.
func (s *CommentService) CreateReply(ctx context.Context, userID, parentCommentID uint, content string, replyToUserID *uint) (*models.Comment, error) {
	parent, err := s.comments.GetByID(ctx, parentCommentID)
	if err != nil {
		return nil, err
	}
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	ancestorID := parent.ID
	if parent.ParentID != nil {
		ancestorID = *parent.ParentID
	}

	addresseeID := parent.UserID
	if replyToUserID != nil {
		addresseeID = *replyToUserID
	}
	addressee, err := s.users.GetByID(ctx, addresseeID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reply := &models.Comment{
		Content:       content,
		UserID:        userID,
		BlogID:        parent.BlogID,
		ParentID:      &ancestorID,
		ReplyToUserID: &addresseeID,
		FromUserName:  author.Username,
		ToUserName:    addressee.Username,
	}
	if err := s.comments.Create(ctx, reply); err != nil {
		return nil, err
	}

	if addresseeID != userID {
		s.dispatcher.Dispatch(DispatchInput{
			RecipientID: addresseeID,
			SenderID:    userID,
			SenderName:  author.Username,
			Type:        models.NotificationReply,
			BlogID:      &parent.BlogID,
			CommentID:   &reply.ID,
		})
	}
	return reply, nil
}

// ToggleLikeResult reports the state of a comment after a like toggle.
type ToggleLikeResult struct {
	IsLiked   bool `json:"is_liked"`
	LikeCount int  `json:"like_count"`
}

// ToggleLike flips userID's like on a comment and returns the new state.
// The comment author is notified on the off->on transition only.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID uint) (*ToggleLikeResult, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	liked, err := s.comments.IsLiked(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	if liked {
		count, err := s.comments.RemoveLike(ctx, userID, commentID)
		if err != nil {
			return nil, err
		}
		return &ToggleLikeResult{IsLiked: false, LikeCount: count}, nil
	}

	count, err := s.comments.AddLike(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		author, err := s.users.GetByID(ctx, userID)
		if err == nil {
			s.dispatcher.Dispatch(DispatchInput{
				RecipientID: comment.UserID,
				SenderID:    userID,
				SenderName:  author.Username,
				Type:        models.NotificationLike,
				BlogID:      &comment.BlogID,
				CommentID:   &commentID,
			})
		}
	}
	return &ToggleLikeResult{IsLiked: true, LikeCount: count}, nil
}

// DeleteComment removes a comment. Deleting a top-level comment removes its
// replies in the same transaction. Only the comment author or an admin may
// delete; the removed row count is returned.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID uint) (int64, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return 0, err
	}
	if comment.UserID != actorID {
		actor, err := s.users.GetByID(ctx, actorID)
		if err != nil {
			return 0, err
		}
		if !actor.IsAdmin() {
			return 0, models.NewForbiddenError("you can only delete your own comments")
		}
	}
	return s.comments.DeleteWithReplies(ctx, commentID)
}

// ListComments returns a blog's comment threads: top-level comments newest
// first, each with its replies oldest first. When viewerID is non-zero the
// viewer's like state is annotated onto every comment in two queries total.
func (s *CommentService) ListComments(ctx context.Context, blogID, viewerID uint) ([]*models.CommentThread, error) {
	if _, err := s.blogs.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	tops, err := s.comments.ListTopLevelByBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	replies, err := s.comments.ListRepliesByBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if viewerID != 0 {
		ids := make([]uint, 0, len(tops)+len(replies))
		for _, c := range tops {
			ids = append(ids, c.ID)
		}
		for _, c := range replies {
			ids = append(ids, c.ID)
		}
		likedIDs, err := s.comments.LikedCommentIDs(ctx, viewerID, ids)
		if err != nil {
			return nil, err
		}
		liked := make(map[uint]bool, len(likedIDs))
		for _, id := range likedIDs {
			liked[id] = true
		}
		for _, c := range tops {
			c.IsLiked = liked[c.ID]
		}
		for _, c := range replies {
			c.IsLiked = liked[c.ID]
		}
	}

	byParent := make(map[uint][]*models.Comment)
	for _, r := range replies {
		byParent[*r.ParentID] = append(byParent[*r.ParentID], r)
	}

	threads := make([]*models.CommentThread, 0, len(tops))
	for _, c := range tops {
		threads = append(threads, &models.CommentThread{
			Comment: c,
			Replies: byParent[c.ID],
		})
	}
	return threads, nil
}
