package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codewithemmax/WordLinkapp/internal/middleware"
	"github.com/codewithemmax/WordLinkapp/internal/services"
	"github.com/codewithemmax/WordLinkapp/internal/utils"
)

type PostHandler struct {
	content *services.ContentService
	toggles *services.ToggleService
	uploads *services.UploadService
	cache   *utils.GlobalCache
}

func NewPostHandler(content *services.ContentService, toggles *services.ToggleService, uploads *services.UploadService) *PostHandler {
	return &PostHandler{
		content: content,
		toggles: toggles,
		uploads: uploads,
		cache:   utils.GetCache(),
	}
}

func viewerID(c *gin.Context) uint {
	if user, ok := middleware.CurrentUser(c); ok {
		return user.ID
	}
	return 0
}

func postCacheKey(id uint) string {
	return fmt.Sprintf("post:view:anon:%d", id)
}

// List returns the feed projected for the (possibly anonymous) viewer.
func (h *PostHandler) List(c *gin.Context) {
	views, err := h.content.ListPosts(c.Request.Context(), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Create accepts a multipart form: "text" plus an optional "image" that goes
// through the retrying upload wrapper before the post is persisted. An
// upload failure aborts the request, so no post ever carries a dangling
// media reference.
func (h *PostHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	text := c.PostForm("text")

	imageURL := ""
	if path, ok, err := saveTempUpload(c, "image"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid image upload"})
		return
	} else if ok {
		url, err := h.uploads.UploadWithRetry(c.Request.Context(), path)
		if err != nil {
			respondError(c, err)
			return
		}
		imageURL = url
	}

	post, err := h.content.CreatePost(c.Request.Context(), services.CreatePostInput{
		AuthorID: user.ID,
		Text:     text,
		ImageURL: imageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully!", "post": post})
}

// Get returns one projected post. The anonymous projection is cached; any
// mutation of the post drops the entry.
func (h *PostHandler) Get(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))
	viewer := viewerID(c)

	if viewer == 0 {
		if cached := h.cache.Get(postCacheKey(id)); cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	view, err := h.content.GetPost(c.Request.Context(), id, viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	if viewer == 0 {
		h.cache.Set(postCacheKey(id), view, 5*time.Minute)
	}
	c.JSON(http.StatusOK, view)
}

type updatePostRequest struct {
	Text     string `json:"text" binding:"required"`
	ImageURL string `json:"image_url"`
}

func (h *PostHandler) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := uint(utils.StringToInt(c.Param("id")))

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	post, err := h.content.UpdatePost(c.Request.Context(), services.UpdatePostInput{
		PostID:   id,
		ActorID:  user.ID,
		Text:     req.Text,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Delete(postCacheKey(id))
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := uint(utils.StringToInt(c.Param("id")))

	if err := h.content.DeletePost(c.Request.Context(), id, user.ID); err != nil {
		respondError(c, err)
		return
	}
	h.cache.Delete(postCacheKey(id))
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *PostHandler) toggle(c *gin.Context, kind services.EdgeKind) {
	user, _ := middleware.CurrentUser(c)
	id := uint(utils.StringToInt(c.Param("id")))

	result, err := h.toggles.Toggle(c.Request.Context(), kind, user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Delete(postCacheKey(id))
	c.JSON(http.StatusOK, result)
}

func (h *PostHandler) Like(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := uint(utils.StringToInt(c.Param("id")))

	result, err := h.toggles.Toggle(c.Request.Context(), services.EdgeLike, user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Delete(postCacheKey(id))

	message := "Liked post"
	if !result.Active {
		message = "Unliked post"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"likes":   result.Count,
		"isLiked": result.Active,
	})
}

func (h *PostHandler) Bookmark(c *gin.Context) {
	h.toggle(c, services.EdgeBookmark)
}

func (h *PostHandler) Retweet(c *gin.Context) {
	h.toggle(c, services.EdgeRetweet)
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *PostHandler) Comment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := uint(utils.StringToInt(c.Param("id")))

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	comment, err := h.content.AddComment(c.Request.Context(), id, user.ID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Delete(postCacheKey(id))
	c.JSON(http.StatusCreated, gin.H{"message": "Comment added", "comment": comment})
}

func (h *PostHandler) Reply(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id := uint(utils.StringToInt(c.Param("id")))
	cid := c.Param("cid")

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	reply, err := h.content.AddReply(c.Request.Context(), id, cid, user.ID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Delete(postCacheKey(id))
	c.JSON(http.StatusCreated, gin.H{"message": "Reply added", "reply": reply})
}
