package service

import (
	"context"

	"plaza/internal/models"
	"plaza/internal/repository"
)

// RelationshipService owns the follow graph and the block list.
type RelationshipService struct {
	users      repository.UserRepository
	follows    repository.FollowRepository
	blocks     repository.BlockRepository
	dispatcher NotificationDispatcher
}

// NewRelationshipService returns a new RelationshipService.
func NewRelationshipService(
	users repository.UserRepository,
	follows repository.FollowRepository,
	blocks repository.BlockRepository,
	dispatcher NotificationDispatcher,
) *RelationshipService {
	return &RelationshipService{users: users, follows: follows, blocks: blocks, dispatcher: dispatcher}
}

// Follow makes actorID follow targetID and notifies the target.
func (s *RelationshipService) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewSelfReferenceError("cannot follow yourself")
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return err
	}

	blocked, err := s.blocks.ExistsEither(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if blocked {
		return models.NewForbiddenError("cannot follow this user")
	}

	exists, err := s.follows.Exists(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if exists {
		return models.NewAlreadyExistsError("already following this user")
	}

	// A concurrent duplicate slips past the pre-check and surfaces from
	// Create as AlreadyExists via the unique index.
	if err := s.follows.Create(ctx, actorID, targetID); err != nil {
		return err
	}

	s.dispatcher.Dispatch(DispatchInput{
		RecipientID: targetID,
		SenderID:    actorID,
		SenderName:  actor.Username,
		Type:        models.NotificationFollow,
	})
	return nil
}

// Unfollow removes the actorID -> targetID edge.
func (s *RelationshipService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewSelfReferenceError("cannot unfollow yourself")
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.follows.Delete(ctx, actorID, targetID)
}

// GetRelationshipInfo returns userID's counts plus following/followers lists,
// each entry annotated with whether viewerID follows that user. viewerID 0
// means anonymous.
func (s *RelationshipService) GetRelationshipInfo(ctx context.Context, userID, viewerID uint) (*models.RelationshipInfo, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	following, err := s.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	viewerFollows := map[uint]bool{}
	if viewerID != 0 {
		ids, err := s.follows.FollowingIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			viewerFollows[id] = true
		}
	}

	info := &models.RelationshipInfo{
		FollowingCount: user.FollowingCount,
		FollowersCount: user.FollowersCount,
		Following:      summarize(following, viewerFollows),
		Followers:      summarize(followers, viewerFollows),
	}
	return info, nil
}

// IsFollowing reports whether actorID follows targetID.
func (s *RelationshipService) IsFollowing(ctx context.Context, actorID, targetID uint) (bool, error) {
	return s.follows.Exists(ctx, actorID, targetID)
}

func summarize(users []models.User, viewerFollows map[uint]bool) []models.UserSummary {
	summaries := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, models.UserSummary{
			ID:          u.ID,
			Username:    u.Username,
			Avatar:      u.Avatar,
			IsFollowing: viewerFollows[u.ID],
		})
	}
	return summaries
}

// Block puts targetID on actorID's block list. Blocking does not touch any
// existing follow edges.
func (s *RelationshipService) Block(ctx context.Context, actorID, targetID uint, reason string) error {
	if actorID == targetID {
		return models.NewSelfReferenceError("cannot block yourself")
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.blocks.Create(ctx, &models.UserBlock{
		BlockerID: actorID,
		BlockedID: targetID,
		Reason:    reason,
	})
}

// Unblock removes targetID from actorID's block list.
func (s *RelationshipService) Unblock(ctx context.Context, actorID, targetID uint) error {
	return s.blocks.Delete(ctx, actorID, targetID)
}

// ListBlocks returns actorID's block list with the blocked users preloaded.
func (s *RelationshipService) ListBlocks(ctx context.Context, actorID uint) ([]models.UserBlock, error) {
	return s.blocks.ListByBlocker(ctx, actorID)
}

// IsBlocked reports whether actorID has blocked targetID.
func (s *RelationshipService) IsBlocked(ctx context.Context, actorID, targetID uint) (bool, error) {
	return s.blocks.Exists(ctx, actorID, targetID)
}

// HasBlockRelation reports whether a block exists in either direction
// between the two users.
func (s *RelationshipService) HasBlockRelation(ctx context.Context, a, b uint) (bool, error) {
	return s.blocks.ExistsEither(ctx, a, b)
}
