package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewithemmax/WordLinkapp/internal/middleware"
	"github.com/codewithemmax/WordLinkapp/internal/models"
	"github.com/codewithemmax/WordLinkapp/internal/services"
	"github.com/codewithemmax/WordLinkapp/internal/store"
	"github.com/codewithemmax/WordLinkapp/internal/utils"
)

type AuthHandler struct {
	users   store.UserStore
	otp     *services.OtpService
	uploads *services.UploadService
}

func NewAuthHandler(users store.UserStore, otp *services.OtpService, uploads *services.UploadService) *AuthHandler {
	return &AuthHandler{users: users, otp: otp, uploads: uploads}
}

// Signup creates an account from a multipart form; the optional "image"
// field becomes the profile picture via the resilient upload path.
func (h *AuthHandler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	firstname := c.PostForm("firstname")
	lastname := c.PostForm("lastname")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if username == "" || firstname == "" || lastname == "" || email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	if existing, err := h.users.FindByUsername(c.Request.Context(), username); err != nil {
		respondError(c, err)
		return
	} else if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Username has already been taken"})
		return
	}
	if existing, err := h.users.FindByEmail(c.Request.Context(), email); err != nil {
		respondError(c, err)
		return
	} else if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Email has already been registered"})
		return
	}

	profilePic := ""
	if path, ok, err := saveTempUpload(c, "image"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid image upload"})
		return
	} else if ok {
		url, err := h.uploads.UploadWithRetry(c.Request.Context(), path)
		if err != nil {
			respondError(c, err)
			return
		}
		profilePic = url
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Username:   username,
		Firstname:  firstname,
		Lastname:   lastname,
		Email:      email,
		Password:   hash,
		ProfilePic: profilePic,
		Followers:  models.IDSet{},
		Followings: models.IDSet{},
		Bookmarks:  models.IDSet{},
		Retweets:   models.IDSet{},
	}
	if err := h.users.Insert(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Successfully created an account"})
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	user, err := h.users.FindByUsername(c.Request.Context(), req.UsernameOrEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		if user, err = h.users.FindByEmail(c.Request.Context(), req.UsernameOrEmail); err != nil {
			respondError(c, err)
			return
		}
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Credentials"})
		return
	}

	token, err := middleware.SignToken(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return
	}
	c.JSON(http.StatusOK, user)
}

type checkUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

func (h *AuthHandler) CheckUsername(c *gin.Context) {
	var req checkUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}
	existing, err := h.users.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Username has already been taken"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Available"})
}

type checkEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) CheckEmail(c *gin.Context) {
	var req checkEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}
	existing, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Email has already been registered"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Available"})
}

type sendOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) SendOtp(c *gin.Context) {
	var req sendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}
	if err := h.otp.Issue(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

type verifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required"`
}

func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req verifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}
	result, err := h.otp.Verify(c.Request.Context(), req.Email, req.Otp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
