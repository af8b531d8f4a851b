package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewithemmax/WordLinkapp/internal/middleware"
	"github.com/codewithemmax/WordLinkapp/internal/services"
	"github.com/codewithemmax/WordLinkapp/internal/store"
	"github.com/codewithemmax/WordLinkapp/internal/utils"
)

type UserHandler struct {
	users   store.UserStore
	toggles *services.ToggleService
}

func NewUserHandler(users store.UserStore, toggles *services.ToggleService) *UserHandler {
	return &UserHandler{users: users, toggles: toggles}
}

// Profile is the public view of a user: profile fields and edge counts, no
// email or credential material.
func (h *UserHandler) Profile(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))
	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	view := gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"fullname":    user.Fullname(),
		"profile_pic": user.ProfilePic,
		"bio":         user.Bio,
		"followers":   len(user.Followers),
		"followings":  len(user.Followings),
		"created_at":  user.CreatedAt,
	}
	if viewer, ok := middleware.CurrentUser(c); ok {
		view["is_following"] = viewer.Followings.Has(user.ID)
	}
	c.JSON(http.StatusOK, view)
}

// Follow toggles the follow edge from the authenticated user to :id.
func (h *UserHandler) Follow(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	targetID := uint(utils.StringToInt(c.Param("id")))

	result, err := h.toggles.Toggle(c.Request.Context(), services.EdgeFollow, user.ID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
