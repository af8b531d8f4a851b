package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewithemmax/WordLinkapp/internal/handlers"
	"github.com/codewithemmax/WordLinkapp/internal/middleware"
	"github.com/codewithemmax/WordLinkapp/internal/store"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Users         store.UserStore
	Auth          *handlers.AuthHandler
	Posts         *handlers.PostHandler
	Profiles      *handlers.UserHandler
	Notifications *handlers.NotificationHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is awake")
	})

	// Auth routes
	auths := r.Group("/api/auths")
	{
		auths.POST("/signup", d.Auth.Signup)
		auths.POST("/login", d.Auth.Login)
		auths.GET("/profile", middleware.AuthRequired(d.Users), d.Auth.Profile)
		auths.POST("/check", d.Auth.CheckUsername)
		auths.POST("/check-email", d.Auth.CheckEmail)
		auths.POST("/send_otp", d.Auth.SendOtp)
		auths.POST("/verify_otp", d.Auth.VerifyOtp)
	}

	// Post routes: reads resolve identity when a token is present, writes
	// require one.
	posts := r.Group("/api/posts")
	{
		posts.GET("", middleware.OptionalAuth(d.Users), d.Posts.List)
		posts.GET("/:id", middleware.OptionalAuth(d.Users), d.Posts.Get)

		authed := posts.Group("")
		authed.Use(middleware.AuthRequired(d.Users))
		{
			authed.POST("", d.Posts.Create)
			authed.PUT("/:id", d.Posts.Update)
			authed.DELETE("/:id", d.Posts.Delete)
			authed.POST("/:id/like", d.Posts.Like)
			authed.POST("/:id/bookmark", d.Posts.Bookmark)
			authed.POST("/:id/retweet", d.Posts.Retweet)
			authed.POST("/:id/comment", d.Posts.Comment)
			authed.POST("/:id/comments/:cid/reply", d.Posts.Reply)
		}
	}

	// User routes
	users := r.Group("/api/users")
	{
		users.GET("/:id", middleware.OptionalAuth(d.Users), d.Profiles.Profile)
		users.POST("/:id/follow", middleware.AuthRequired(d.Users), d.Profiles.Follow)
	}

	// Notification routes
	notifications := r.Group("/api/notifications")
	notifications.Use(middleware.AuthRequired(d.Users))
	{
		notifications.GET("", d.Notifications.List)
		notifications.POST("/:id/read", d.Notifications.Read)
		notifications.POST("/read-all", d.Notifications.ReadAll)
	}
}
