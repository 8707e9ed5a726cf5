package handlers

import (
	"log"
	"net/http"
	"strings"

	"mantri/internal/auth"
	"mantri/internal/database"
	"mantri/internal/models"
	"mantri/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register handles new user registration
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	db := database.GetDB()

	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create account", err)
		return
	}

	user := models.User{
		Email:      req.Email,
		Username:   req.Username,
		HashedPass: hashed,
	}
	if err := db.Create(&user).Error; err != nil {
		// Registration races can still trip the unique indexes.
		if strings.Contains(err.Error(), "duplicate key") {
			handleError(c, http.StatusConflict, "Account already exists", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to create account", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login authenticates a user and issues a bearer token
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	db := database.GetDB()
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
			return
		}
		handleError(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	if !auth.VerifyPassword(req.Password, user.HashedPass) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}

	log.Printf("User %s logged in from %s", user.Username, utils.GetRealClientIP(c))

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// GetCurrentUser returns the authenticated user's profile with
// aggregate statistics
func GetCurrentUser(c *gin.Context) {
	userID := auth.CurrentUserID(c)
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		handleError(c, http.StatusNotFound, "User not found", err)
		return
	}

	var totalSaves int64
	if err := db.Model(&models.SaveRecord{}).
		Where("user_id = ? AND saved = ?", userID, true).
		Count(&totalSaves).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	var gangsJoined int64
	if err := db.Model(&models.GangMember{}).
		Where("user_id = ?", userID).
		Count(&gangsJoined).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	// Streaks and achievements are not computed yet; the zero values keep
	// the response shape stable for clients.
	c.JSON(http.StatusOK, models.Profile{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		TotalSaves:   totalSaves,
		GangsJoined:  gangsJoined,
		Achievements: []string{},
	})
}
