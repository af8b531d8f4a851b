package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/codewithemmax/WordLinkapp/internal/models"
	"github.com/codewithemmax/WordLinkapp/internal/store"
	"github.com/codewithemmax/WordLinkapp/internal/utils"
)

type CreatePostInput struct {
	AuthorID uint
	Text     string
	ImageURL string // pre-resolved blob reference, may be empty
}

type UpdatePostInput struct {
	PostID  uint
	ActorID uint
	Text    string
	// ImageURL replaces the stored reference; empty clears any existing image.
	ImageURL string
}

// PostView is the read-optimized projection of a post: the aggregate joined
// with author profile fields and viewer-relative flags.
type PostView struct {
	ID                uint                 `json:"id"`
	UserID            uint                 `json:"user_id"`
	Username          string               `json:"username"`
	Fullname          string               `json:"fullname"`
	ProfilePic        string               `json:"profile_pic"`
	Content           string               `json:"content"`
	ImageURL          string               `json:"image_url,omitempty"`
	Likes             int                  `json:"likes"`
	Comments          models.CommentThread `json:"comments"`
	CreatedAt         time.Time            `json:"created_at"`
	IsLiked           bool                 `json:"is_liked"`
	IsOwnPost         bool                 `json:"is_own_post"`
	IsFollowingAuthor bool                 `json:"is_following_author"`
}

// ContentService owns the post aggregate: the post document plus its
// embedded, insertion-ordered comments and replies, loaded and saved as one
// unit.
type ContentService struct {
	users  store.UserStore
	posts  store.PostStore
	notify *NotificationService
	policy *bluemonday.Policy
}

func NewContentService(users store.UserStore, posts store.PostStore, notify *NotificationService) *ContentService {
	return &ContentService{
		users:  users,
		posts:  posts,
		notify: notify,
		policy: bluemonday.StrictPolicy(),
	}
}

// cleanText trims and strips any markup from user-supplied text.
func (s *ContentService) cleanText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: content cannot be empty", ErrValidation)
	}
	return s.policy.Sanitize(text), nil
}

func (s *ContentService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text, err := s.cleanText(in.Text)
	if err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, in.AuthorID)
	}

	post := &models.Post{
		UserID:    author.ID,
		Username:  author.Username,
		Fullname:  author.Fullname(),
		Content:   text,
		ImageURL:  in.ImageURL,
		LikedBy:   models.IDSet{},
		Comments:  models.CommentThread{},
		CreatedAt: time.Now(),
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ContentService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.loadOwned(ctx, in.PostID, in.ActorID)
	if err != nil {
		return nil, err
	}
	text, err := s.cleanText(in.Text)
	if err != nil {
		return nil, err
	}

	post.Content = text
	post.ImageURL = in.ImageURL // empty means "no image", not "unchanged"
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *ContentService) DeletePost(ctx context.Context, postID, actorID uint) error {
	if _, err := s.loadOwned(ctx, postID, actorID); err != nil {
		return err
	}
	return s.posts.Delete(ctx, postID)
}

func (s *ContentService) loadOwned(ctx context.Context, postID, actorID uint) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	if post.UserID != actorID {
		return nil, fmt.Errorf("%w: user %d does not own post %d", ErrAuthorization, actorID, postID)
	}
	return post, nil
}

func (s *ContentService) AddComment(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error) {
	text, err := s.cleanText(text)
	if err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, authorID)
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}

	comment := models.Comment{
		Cid:       utils.NewCid(),
		UserID:    author.ID,
		Username:  author.Username,
		Text:      text,
		CreatedAt: time.Now(),
		Replies:   []models.Reply{},
	}
	post.Comments = append(post.Comments, comment)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.notify.EmitComment(ctx, post, post.UserID, author)
	return &comment, nil
}

func (s *ContentService) AddReply(ctx context.Context, postID uint, commentCid string, authorID uint, text string) (*models.Reply, error) {
	text, err := s.cleanText(text)
	if err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, authorID)
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}

	comment := post.Comments.FindByCid(commentCid)
	if comment == nil {
		return nil, fmt.Errorf("%w: comment %s on post %d", ErrNotFound, commentCid, postID)
	}

	reply := models.Reply{
		Cid:       utils.NewCid(),
		UserID:    author.ID,
		Username:  author.Username,
		Text:      text,
		CreatedAt: time.Now(),
	}
	comment.Replies = append(comment.Replies, reply)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.notify.EmitComment(ctx, post, comment.UserID, author)
	return &reply, nil
}

// GetPost loads one post and projects it for the viewer. viewerID 0 means
// anonymous.
func (s *ContentService) GetPost(ctx context.Context, postID, viewerID uint) (*PostView, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	return s.ProjectView(ctx, post, viewerID)
}

// ListPosts returns the feed, newest first, projected for the viewer.
func (s *ContentService) ListPosts(ctx context.Context, viewerID uint) ([]PostView, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	viewer, err := s.loadViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	authors := map[uint]*models.User{}
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		author, ok := authors[posts[i].UserID]
		if !ok {
			if author, err = s.users.FindByID(ctx, posts[i].UserID); err != nil {
				return nil, err
			}
			authors[posts[i].UserID] = author
		}
		views = append(views, *s.project(&posts[i], author, viewer))
	}
	return views, nil
}

// ProjectView assembles the viewer-relative read shape of a post.
func (s *ContentService) ProjectView(ctx context.Context, post *models.Post, viewerID uint) (*PostView, error) {
	viewer, err := s.loadViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, post.UserID)
	if err != nil {
		return nil, err
	}
	return s.project(post, author, viewer), nil
}

func (s *ContentService) loadViewer(ctx context.Context, viewerID uint) (*models.User, error) {
	if viewerID == 0 {
		return nil, nil
	}
	return s.users.FindByID(ctx, viewerID)
}

// project joins the post with its author's profile fields; author may be nil
// for a since-removed account, in which case the denormalized fields stand.
func (s *ContentService) project(post *models.Post, author, viewer *models.User) *PostView {
	view := &PostView{
		ID:        post.ID,
		UserID:    post.UserID,
		Username:  post.Username,
		Fullname:  post.Fullname,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		Likes:     post.Likes,
		Comments:  post.Comments,
		CreatedAt: post.CreatedAt,
	}
	if author != nil {
		view.Username = author.Username
		view.Fullname = author.Fullname()
		view.ProfilePic = author.ProfilePic
	}
	if view.Comments == nil {
		view.Comments = models.CommentThread{}
	}
	if viewer != nil {
		view.IsOwnPost = post.UserID == viewer.ID
		view.IsLiked = post.LikedBy.Has(viewer.ID)
		view.IsFollowingAuthor = viewer.Followings.Has(post.UserID)
	}
	return view
}
