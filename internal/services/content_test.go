package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithemmax/WordLinkapp/internal/models"
	"github.com/codewithemmax/WordLinkapp/internal/store"
)

func newContentFixture(t *testing.T) (*ContentService, *store.Stores) {
	t.Helper()
	stores := store.NewMemoryStores()
	notify := NewNotificationService(stores.Notifications)
	return NewContentService(stores.Users, stores.Posts, notify), stores
}

func TestCreatePostRejectsEmptyText(t *testing.T) {
	svc, stores := newContentFixture(t)
	ctx := context.Background()
	a := seedUser(t, stores, "alice")

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: a.ID, Text: text})
		assert.ErrorIs(t, err, ErrValidation, "text %q", text)
	}

	posts, err := stores.Posts.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCreatePostStripsMarkup(t *testing.T) {
	svc, stores := newContentFixture(t)
	ctx := context.Background()
	a := seedUser(t, stores, "alice")

	post, err := svc.CreatePost(ctx, CreatePostInput{
		AuthorID: a.ID,
		Text:     `hello <script>alert(1)</script><b>world</b>`,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", post.Content)
	assert.Equal(t, a.Username, post.Username)
	assert.Equal(t, a.Fullname(), post.Fullname)
}

func TestUpdatePostOwnership(t *testing.T) {
	svc, stores := newContentFixture(t)
	ctx := context.Background()
	a := seedUser(t, stores, "alice")
	b := seedUser(t, stores, "bob")
	post := seedPost(t, stores, a, "original")

	_, err := svc.UpdatePost(ctx, UpdatePostInput{PostID: post.ID, ActorID: b.ID, Text: "hijacked"})
	assert.ErrorIs(t, err, ErrAuthorization)

	loaded, _ := stores.Posts.FindByID(ctx, post.ID)
	assert.Equal(t, "original", loaded.Content)

	_, err = svc.UpdatePost(ctx, UpdatePostInput{PostID: 999, ActorID: a.ID, Text: "whatever"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePostReplacesAndClearsImage(t *testing.T) {
	svc, stores := newContentFixture(t)
	ctx := context.Background()
	a := seedUser(t, stores, "alice")

	post, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: a.ID, Text: "pic", ImageURL: "https://cdn/one.png"})
	require.NoError(t, err)

	updated, err := svc.UpdatePost(ctx, UpdatePostInput{PostID: post.ID, ActorID: a.ID, Text: "pic", ImageURL: "https://cdn/two.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/two.png", updated.ImageURL)

	updated, err = svc.UpdatePost(ctx, UpdatePostInput{PostID: post.ID, ActorID: a.ID, Text: "pic"})
	require.NoError(t, err)
	assert.Empty(t, updated.ImageURL)
}

func TestDeletePost(t *testing.T) {
	svc, stores := newContentFixture(t)
	ctx := context.Background()
	a := seedUser(t, stores, "alice")
	b := seedUser(t, stores, "bob")
	post := seedPost(t, stores, a, "doomed")

	assert.ErrorIs(t, svc.DeletePost(ctx, post.ID, b.ID), ErrAuthorization)

	require.NoError(t, svc.DeletePost(ctx, post.ID, a.ID))
	loaded, err := stores.Posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestCommentAndReplyThreading(t *testing.T) {
	svc, stores := newContentFixture(t)
	ctx := context.Background()
	a := seedUser(t, stores, "alice")
	b := seedUser(t, stores, "bob")
	post := seedPost(t, stores, a, "thread me")

	first, err := svc.AddComment(ctx, post.ID, b.ID, "first")
	require.NoError(t, err)
	second, err := svc.AddComment(ctx, post.ID, a.ID, "second")
	require.NoError(t, err)
	require.NotEqual(t, first.Cid, second.Cid)

	reply, err := svc.AddReply(ctx, post.ID, first.Cid, a.ID, "re: first")
	require.NoError(t, err)

	loaded, _ := stores.Posts.FindByID(ctx, post.ID)
	require.Len(t, loaded.Comments, 2)
	// Insertion order by position, not timestamps.
	assert.Equal(t, "first", loaded.Comments[0].Text)
	assert.Equal(t, "second", loaded.Comments[1].Text)
	require.Len(t, loaded.Comments[0].Replies, 1)
	assert.Equal(t, reply.Cid, loaded.Comments[0].Replies[0].Cid)
	assert.Empty(t, loaded.Comments[1].Replies)

	// Comment by B on A's post notifies A; A replying under B's comment notifies B.
	aNotifs, _ := stores.Notifications.FindByUser(ctx, a.ID, 10)
	require.Len(t, aNotifs, 1)
	assert.Equal(t, models.NotificationTypeComment, aNotifs[0].Type)
	bNotifs, _ := stores.Notifications.FindByUser(ctx, b.ID, 10)
	require.Len(t, bNotifs, 1)
}

func TestAddReplyUnknownComment(t *testing.T) {
	svc, stores := newContentFixture(t)
	ctx := context.Background()
	a := seedUser(t, stores, "alice")
	post := seedPost(t, stores, a, "no comments yet")

	_, err := svc.AddReply(ctx, post.ID, "nope1234", a.ID, "into the void")
	assert.ErrorIs(t, err, ErrNotFound)

	loaded, _ := stores.Posts.FindByID(ctx, post.ID)
	assert.Empty(t, loaded.Comments)
}

func TestProjectViewViewerFlags(t *testing.T) {
	svc, stores := newContentFixture(t)
	ctx := context.Background()
	a := seedUser(t, stores, "alice")
	b := seedUser(t, stores, "bob")
	post := seedPost(t, stores, a, "look at me")

	toggles := NewToggleService(stores.Users, stores.Posts, NewNotificationService(stores.Notifications))
	_, err := toggles.Toggle(ctx, EdgeLike, b.ID, post.ID)
	require.NoError(t, err)
	_, err = toggles.Toggle(ctx, EdgeFollow, b.ID, a.ID)
	require.NoError(t, err)

	// Anonymous viewer: no flags set.
	view, err := svc.GetPost(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.False(t, view.IsLiked)
	assert.False(t, view.IsOwnPost)
	assert.False(t, view.IsFollowingAuthor)
	assert.Equal(t, 1, view.Likes)

	// Owner.
	view, err = svc.GetPost(ctx, post.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, view.IsOwnPost)
	assert.False(t, view.IsLiked)

	// Engaged viewer.
	view, err = svc.GetPost(ctx, post.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, view.IsLiked)
	assert.True(t, view.IsFollowingAuthor)
	assert.False(t, view.IsOwnPost)
}

func TestProjectViewPrefersLiveAuthorProfile(t *testing.T) {
	svc, stores := newContentFixture(t)
	ctx := context.Background()
	a := seedUser(t, stores, "alice")
	post := seedPost(t, stores, a, "hi")

	// Author renames after posting; the view reflects the live profile, not the
	// denormalized snapshot on the post.
	a.Username = "alice_renamed"
	a.ProfilePic = "https://cdn/alice.png"
	require.NoError(t, stores.Users.Update(ctx, a))

	view, err := svc.GetPost(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "alice_renamed", view.Username)
	assert.Equal(t, "https://cdn/alice.png", view.ProfilePic)
}

func TestListPostsNewestFirst(t *testing.T) {
	svc, stores := newContentFixture(t)
	ctx := context.Background()
	a := seedUser(t, stores, "alice")

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: a.ID, Text: text})
		require.NoError(t, err)
	}

	views, err := svc.ListPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "three", views[0].Content)
	assert.Equal(t, "one", views[2].Content)
}
