package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ast-fleet-console-api-server/config"
	"ast-fleet-console-api-server/internal/api/middleware"
	"ast-fleet-console-api-server/internal/auth"
	"ast-fleet-console-api-server/internal/models"
	"ast-fleet-console-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Store store.Store
	Cfg   config.Config
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (h *UserHandler) tokenTTL() time.Duration {
	ttl, err := time.ParseDuration(h.Cfg.JWT.Expiration)
	if err != nil || ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}

// Login accepts a JSON or form body. Unknown usernames and wrong
// passwords produce the same response on purpose.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}
	} else {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}
	}

	var user models.User
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Users, store.Key{"username": req.Username}, &user)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user: " + err.Error()})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, _, err := auth.GenerateJWT(h.Cfg.JWT.Secret, user.Username, user.Role, h.tokenTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout puts the caller's token id on the revocation list. The token
// stays rejected until it would have expired anyway.
func (h *UserHandler) Logout(c *gin.Context) {
	claimsValue, exists := c.Get(middleware.CtxClaims)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	claims := claimsValue.(*auth.JWTClaims)

	session := models.RevokedSession{
		TokenID:   claims.ID,
		Username:  claims.Username,
		RevokedAt: time.Now().Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	}
	if err := h.Store.Put(c.Request.Context(), h.Cfg.Tables.Sessions, session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke token: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := h.Store.Scan(c.Request.Context(), h.Cfg.Tables.Users, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users: " + err.Error()})
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Users, store.Key{"username": username}, &user)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User " + username + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Users, store.Key{"username": req.Username}, &existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User " + req.Username + " already exists"})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check for user: " + err.Error()})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	role := req.Role
	if role == "" {
		role = models.DefaultUserRole
	}

	user := models.User{
		Username:  req.Username,
		Password:  hashed,
		Role:      role,
		CreatedAt: time.Now().Unix(),
	}

	if err := h.Store.Put(c.Request.Context(), h.Cfg.Tables.Users, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	username := c.Param("username")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Users, store.Key{"username": username}, &existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User " + username + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user: " + err.Error()})
		return
	}

	changes := map[string]any{}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		changes["password"] = hashed
	}
	if req.Role != nil {
		changes["role"] = *req.Role
	}

	if err := h.Store.Update(c.Request.Context(), h.Cfg.Tables.Users, store.Key{"username": username}, changes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user: " + err.Error()})
		return
	}

	var updated models.User
	if err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Users, store.Key{"username": username}, &updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updated user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	username := c.Param("username")

	var existing models.User
	err := h.Store.Get(c.Request.Context(), h.Cfg.Tables.Users, store.Key{"username": username}, &existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User " + username + " not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user: " + err.Error()})
		return
	}

	if err := h.Store.Delete(c.Request.Context(), h.Cfg.Tables.Users, store.Key{"username": username}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User " + username + " deleted successfully"})
}
