package handlers

import (
	"net/http"

	"mantri/internal/auth"
	"mantri/internal/database"
	"mantri/internal/models"

	"github.com/gin-gonic/gin"
)

const chatPageSize = 50

// GetChatMessages returns the last messages of a gang's chat in
// chronological order (members only)
func GetChatMessages(c *gin.Context) {
	gang, ok := findGang(c)
	if !ok {
		return
	}
	if _, ok := requireMembership(c, gang.ID, auth.CurrentUserID(c)); !ok {
		return
	}

	var messages []models.ChatMessage
	if err := database.GetDB().Preload("User").
		Where("gang_id = ?", gang.ID).
		Order("created_at DESC").
		Limit(chatPageSize).
		Find(&messages).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch messages", err)
		return
	}

	// Newest-first from the query, oldest-first for the client
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	c.JSON(http.StatusOK, messages)
}

// SendChatMessage posts a message to a gang's chat (members only)
func SendChatMessage(c *gin.Context) {
	gang, ok := findGang(c)
	if !ok {
		return
	}

	userID := auth.CurrentUserID(c)
	if _, ok := requireMembership(c, gang.ID, userID); !ok {
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	message := models.ChatMessage{
		UserID:  userID,
		GangID:  gang.ID,
		Message: req.Message,
	}
	db := database.GetDB()
	if err := db.Create(&message).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to send message", err)
		return
	}

	db.Preload("User").First(&message, message.ID)

	c.JSON(http.StatusCreated, message)
}

// ClearChat deletes all messages in a gang's chat (members only)
func ClearChat(c *gin.Context) {
	gang, ok := findGang(c)
	if !ok {
		return
	}
	if _, ok := requireMembership(c, gang.ID, auth.CurrentUserID(c)); !ok {
		return
	}

	if err := database.GetDB().
		Where("gang_id = ?", gang.ID).
		Delete(&models.ChatMessage{}).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to clear chat", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Chat cleared successfully"})
}
