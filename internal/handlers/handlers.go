package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"mantri/internal/calendar"
	"mantri/internal/database"
	"mantri/internal/leaderboard"
	"mantri/internal/models"

	"github.com/gin-gonic/gin"
)

// handleError provides a consistent way to handle and log errors
func handleError(c *gin.Context, status int, message string, err error) {
	log.Printf("Error: %v", err)
	c.JSON(status, gin.H{"error": message})
}

// HomeHandler handles requests to the root path "/"
func HomeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Mantri"})
}

// HealthHandler is a simple health check endpoint
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// boardService builds the aggregation service on the shared connection.
func boardService() leaderboard.Service {
	return leaderboard.NewService(database.NewGangStore(database.GetDB()))
}

// findGang resolves the join code in the path to a gang, answering 404
// when it doesn't exist.
func findGang(c *gin.Context) (*models.Gang, bool) {
	var gang models.Gang
	if err := database.GetDB().Where("gang_id = ?", c.Param("gang_id")).First(&gang).Error; err != nil {
		handleError(c, http.StatusNotFound, "Gang not found", err)
		return nil, false
	}
	return &gang, true
}

// requireMembership answers 403 unless the user belongs to the gang.
func requireMembership(c *gin.Context, gangID, userID uint) (*models.GangMember, bool) {
	var member models.GangMember
	err := database.GetDB().Where("user_id = ? AND gang_id = ?", userID, gangID).First(&member).Error
	if err != nil {
		handleError(c, http.StatusForbidden, "Not a member of this gang", err)
		return nil, false
	}
	return &member, true
}

// asOfDate parses the optional date query parameter, defaulting to today.
func asOfDate(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return calendar.Today(), nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

// respondBoardError maps aggregation core errors onto HTTP statuses.
func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, leaderboard.ErrGangNotFound):
		handleError(c, http.StatusNotFound, "Gang not found", err)
	case errors.Is(err, leaderboard.ErrNotAMember):
		handleError(c, http.StatusForbidden, "Not a member of this gang", err)
	default:
		handleError(c, http.StatusInternalServerError, "Failed to compute leaderboard", err)
	}
}
