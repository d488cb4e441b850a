package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/CGAJAY/chat-app/internal/http/middleware"
	"github.com/CGAJAY/chat-app/internal/models"
	"github.com/CGAJAY/chat-app/internal/upload"
)

type UserStore interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (models.User, error)
	ListExcept(ctx context.Context, id bson.ObjectID) ([]models.User, error)
	UpdateProfilePic(ctx context.Context, id bson.ObjectID, url string) (models.User, error)
}

type AuthHandler struct {
	Users        UserStore
	Uploader     upload.Uploader
	JWTSecret    string
	CookieName   string
	CookieSecure bool
	Log          *zap.Logger
}

type signUpReq struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required", "error": err.Error()})
		return
	}

	if !passwordStrongEnough(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Password must contain at least one lowercase letter, one uppercase letter and one number",
		})
		return
	}

	_, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Error("signup lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	u, err := h.Users.Create(c.Request.Context(), models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hash),
	})
	if err != nil {
		h.Log.Error("signup create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, u)
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required", "error": err.Error()})
		return
	}

	u, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect credentials"})
		return
	}

	claims := middleware.AuthClaims{
		UserID: u.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(h.JWTSecret))
	if err != nil {
		h.Log.Error("login sign token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.CookieName, tokenStr, int((7 * 24 * time.Hour).Seconds()), "/", "", h.CookieSecure, true)

	c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.CookieName, "", -1, "/", "", h.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Check returns the authenticated caller, fetched fresh from the store.
func (h *AuthHandler) Check(c *gin.Context) {
	userID := middleware.MustUserID(c)

	u, err := h.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized - user not found"})
		return
	}

	c.JSON(http.StatusOK, u)
}

type updateProfileReq struct {
	ProfilePic string `json:"profilePic" binding:"required"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.MustUserID(c)

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Profile picture is required"})
		return
	}

	url, err := h.Uploader.Upload(c.Request.Context(), req.ProfilePic)
	if err != nil {
		h.Log.Error("profile pic upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	u, err := h.Users.UpdateProfilePic(c.Request.Context(), userID, url)
	if err != nil {
		h.Log.Error("profile update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// passwordStrongEnough mirrors the signup rule: at least one lowercase
// letter, one uppercase letter and one digit. Length is checked by binding.
func passwordStrongEnough(password string) bool {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
