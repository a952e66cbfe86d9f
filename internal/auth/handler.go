package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/logs"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/user"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/validation"
)

type Handler struct {
	hasher PasswordHasher
	tokens TokenService
}

func NewHandler(hasher PasswordHasher, tokens TokenService) *Handler {
	return &Handler{hasher: hasher, tokens: tokens}
}

type registerInput struct {
	Username string `json:"username" binding:"required,max=150,username"`
	Email    string `json:"email" binding:"required,max=254,email"`
	Password string `json:"password" binding:"required"`
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register POST /api/auth/register/
func (h *Handler) Register(c *gin.Context) {
	route := c.FullPath()

	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, validation.FromBinding(err))
		logs.LogJSON("WARN", "Invalid registration data", map[string]interface{}{
			"error": err.Error(),
			"route": route,
		})
		return
	}

	// Vérification que username et email n'existent pas
	errs := validation.Errors{}
	if len(input.Password) > MaxPasswordBytes {
		errs.Add("password", fmt.Sprintf("Ensure this field has no more than %d bytes.", MaxPasswordBytes))
	}
	taken, err := user.ExistsByUsername(input.Username)
	if err != nil {
		h.internalError(c, route, "Registration lookup error", err)
		return
	}
	if taken {
		errs.Add("username", "A user with that username already exists.")
	}
	taken, err = user.ExistsByEmail(input.Email)
	if err != nil {
		h.internalError(c, route, "Registration lookup error", err)
		return
	}
	if taken {
		errs.Add("email", "A user with that email already exists.")
	}
	if !errs.Empty() {
		c.JSON(http.StatusBadRequest, errs)
		logs.LogJSON("WARN", "Registration rejected", map[string]interface{}{
			"route":    route,
			"username": input.Username,
			"extra":    errs.Error(),
		})
		return
	}

	hash, err := h.hasher.Hash(input.Password)
	if err != nil {
		h.internalError(c, route, "Password hashing error", err)
		return
	}

	newUser := user.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := user.Create(&newUser); err != nil {
		// Course entre deux inscriptions identiques
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, validation.Errors{
				"username": {"A user with that username or email already exists."},
			})
			return
		}
		h.internalError(c, route, "User insert error", err)
		return
	}

	token, err := h.tokens.Issue(newUser.ID)
	if err != nil {
		h.internalError(c, route, "Token issue error", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    newUser.Public(),
		"token":   token,
	})
	logs.LogJSON("INFO", "User registered successfully", map[string]interface{}{
		"route":  route,
		"userID": newUser.ID,
	})
}

// Login POST /api/auth/login/
func (h *Handler) Login(c *gin.Context) {
	route := c.FullPath()

	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide both username and password"})
		return
	}

	u, err := user.FindByUsername(input.Username)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		h.internalError(c, route, "Login lookup error", err)
		return
	}
	if u == nil || !h.hasher.Compare(u.PasswordHash, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		logs.LogJSON("WARN", "Invalid credentials", map[string]interface{}{
			"route":    route,
			"username": input.Username,
		})
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.internalError(c, route, "Token issue error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    u.Public(),
	})
	logs.LogJSON("INFO", "User logged in", map[string]interface{}{
		"route":  route,
		"userID": u.ID,
	})
}

// Logout POST /api/auth/logout/
func (h *Handler) Logout(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	if err := h.tokens.Revoke(userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		logs.LogJSON("WARN", "Logout failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	logs.LogJSON("INFO", "User logged out", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}

func (h *Handler) internalError(c *gin.Context, route, message string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	logs.LogJSON("ERROR", message, map[string]interface{}{
		"error": err.Error(),
		"route": route,
	})
}
