package services

import (
	"context"
	"fmt"

	"github.com/codewithemmax/WordLinkapp/internal/store"
)

// EdgeKind names a toggleable relationship. The target is a user id for
// EdgeFollow and a post id for everything else.
type EdgeKind string

const (
	EdgeFollow   EdgeKind = "follow"
	EdgeLike     EdgeKind = "like"
	EdgeBookmark EdgeKind = "bookmark"
	EdgeRetweet  EdgeKind = "retweet"
)

// ToggleResult reports the edge state after the toggle. Count is the follower
// count for follows, the like count for likes, and the size of the acting
// user's set for bookmarks and retweets.
type ToggleResult struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

// ToggleService maintains the denormalized edge sets. Every mutation is a
// membership flip, so replaying a request or losing a race to a duplicate
// leaves the data in one of the two legal states, never a corrupted one.
// All two-sided writes go through Toggle, giving an offline reconciliation
// pass a single place to hook in.
type ToggleService struct {
	users  store.UserStore
	posts  store.PostStore
	notify *NotificationService
}

func NewToggleService(users store.UserStore, posts store.PostStore, notify *NotificationService) *ToggleService {
	return &ToggleService{users: users, posts: posts, notify: notify}
}

func (s *ToggleService) Toggle(ctx context.Context, kind EdgeKind, sourceID, targetID uint) (*ToggleResult, error) {
	switch kind {
	case EdgeFollow:
		return s.toggleFollow(ctx, sourceID, targetID)
	case EdgeLike:
		return s.toggleLike(ctx, sourceID, targetID)
	case EdgeBookmark, EdgeRetweet:
		return s.toggleUserPostSet(ctx, kind, sourceID, targetID)
	default:
		return nil, fmt.Errorf("%w: unknown edge kind %q", ErrValidation, kind)
	}
}

// toggleFollow flips the Followings/Followers pair. The store has no
// cross-document transaction, so the two writes are ordered source-first; a
// failure between them leaves a window where only Followings is updated.
// Followers is recomputable from all Followings sets, which is what a repair
// pass would do. The contract is eventually consistent within one retry.
func (s *ToggleService) toggleFollow(ctx context.Context, sourceID, targetID uint) (*ToggleResult, error) {
	if sourceID == targetID {
		return nil, fmt.Errorf("%w: user %d cannot follow themselves", ErrSelfReference, sourceID)
	}

	source, err := s.users.FindByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, sourceID)
	}
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, targetID)
	}

	active := source.Followings.Has(targetID)
	if active {
		source.Followings = source.Followings.Remove(targetID)
		target.Followers = target.Followers.Remove(sourceID)
	} else {
		source.Followings = source.Followings.Add(targetID)
		target.Followers = target.Followers.Add(sourceID)
	}

	if err := s.users.Update(ctx, source); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, target); err != nil {
		return nil, err
	}

	if !active {
		s.notify.EmitFollow(ctx, target.ID, source)
	}
	return &ToggleResult{Active: !active, Count: len(target.Followers)}, nil
}

// toggleLike flips membership in the post's LikedBy set. Likes is re-derived
// from the set after every flip rather than incremented, so a lost update on
// the counter cannot accumulate drift and the count can never go negative.
func (s *ToggleService) toggleLike(ctx context.Context, sourceID, postID uint) (*ToggleResult, error) {
	actor, err := s.users.FindByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, sourceID)
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}

	active := post.LikedBy.Has(sourceID)
	if active {
		post.LikedBy = post.LikedBy.Remove(sourceID)
	} else {
		post.LikedBy = post.LikedBy.Add(sourceID)
	}
	post.Likes = len(post.LikedBy)

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	if !active {
		s.notify.EmitLike(ctx, post, actor)
	}
	return &ToggleResult{Active: !active, Count: post.Likes}, nil
}

// toggleUserPostSet handles the single-sided edges (bookmark, retweet) that
// live only on the acting user's document.
func (s *ToggleService) toggleUserPostSet(ctx context.Context, kind EdgeKind, sourceID, postID uint) (*ToggleResult, error) {
	actor, err := s.users.FindByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, sourceID)
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}

	set := actor.Bookmarks
	if kind == EdgeRetweet {
		set = actor.Retweets
	}

	active := set.Has(postID)
	if active {
		set = set.Remove(postID)
	} else {
		set = set.Add(postID)
	}

	if kind == EdgeRetweet {
		actor.Retweets = set
	} else {
		actor.Bookmarks = set
	}

	if err := s.users.Update(ctx, actor); err != nil {
		return nil, err
	}
	return &ToggleResult{Active: !active, Count: len(set)}, nil
}
