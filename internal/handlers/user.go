package handlers

import (
	"net/http"

	"mantri/internal/auth"
	"mantri/internal/database"
	"mantri/internal/models"

	"github.com/gin-gonic/gin"
)

// UpdateProfile handles a username change
func UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Username must be at least 3 characters", err)
		return
	}

	userID := auth.CurrentUserID(c)
	db := database.GetDB()

	var existing models.User
	if err := db.Where("username = ? AND id <> ?", req.Username, userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Update("username", req.Username).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// ChangePassword verifies the current password and stores a new one
func ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Current password and new password are required", err)
		return
	}

	userID := auth.CurrentUserID(c)
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		handleError(c, http.StatusNotFound, "User not found", err)
		return
	}

	if !auth.VerifyPassword(req.CurrentPassword, user.HashedPass) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to change password", err)
		return
	}

	if err := db.Model(&user).Update("hashed_pass", hashed).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to change password", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// DeleteAccount removes the user and everything they own. Gangs the user
// hosts are deleted too when no other member remains.
func DeleteAccount(c *gin.Context) {
	userID := auth.CurrentUserID(c)
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		handleError(c, http.StatusNotFound, "User not found", err)
		return
	}

	if err := db.Where("user_id = ?", userID).Delete(&models.SaveRecord{}).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete account", err)
		return
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.ChatMessage{}).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete account", err)
		return
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.GangMember{}).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete account", err)
		return
	}

	// Clean up gangs this user created that are now empty or host-only.
	var ownedGangs []models.Gang
	if err := db.Where("created_by = ?", userID).Find(&ownedGangs).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete account", err)
		return
	}
	for _, gang := range ownedGangs {
		var memberCount int64
		db.Model(&models.GangMember{}).Where("gang_id = ?", gang.ID).Count(&memberCount)
		if memberCount == 0 {
			db.Where("gang_id = ?", gang.ID).Delete(&models.ChatMessage{})
			db.Where("gang_id = ?", gang.ID).Delete(&models.SaveRecord{})
			db.Delete(&gang)
		}
	}

	if err := db.Delete(&user).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete account", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
