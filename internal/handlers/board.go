package handlers

import (
	"net/http"

	"mantri/internal/auth"
	"mantri/internal/calendar"
	"mantri/internal/database"
	"mantri/internal/models"

	"github.com/gin-gonic/gin"
)

// SaveToday records or updates the authenticated user's saved-today flag
// for a gang. The write is a single upsert keyed on (user, gang, day).
func SaveToday(c *gin.Context) {
	gang, ok := findGang(c)
	if !ok {
		return
	}

	userID := auth.CurrentUserID(c)
	if _, ok := requireMembership(c, gang.ID, userID); !ok {
		return
	}

	var req models.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	store := database.NewGangStore(database.GetDB())
	if err := store.ToggleSave(c.Request.Context(), userID, gang.ID, calendar.Today(), *req.Saved); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update save status", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Save status updated", "saved": *req.Saved})
}

// GetGangHome returns the combined home view: gang metadata, membership,
// everyone's ranked weekly records and the requester's own week
func GetGangHome(c *gin.Context) {
	gang, ok := findGang(c)
	if !ok {
		return
	}

	asOf, err := asOfDate(c)
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	view, err := boardService().GangHome(c.Request.Context(), gang.ID, auth.CurrentUserID(c), asOf)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	// Full membership rows (with user objects) for the member list
	var members []models.GangMember
	if err := database.GetDB().Preload("User").
		Where("gang_id = ?", gang.ID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch members", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gang":               gang,
		"members":            members,
		"weekly_records":     view.WeeklyRecords,
		"user_weekly_record": view.UserWeeklyRecord,
		"user_today_save":    view.UserTodaySave,
	})
}

// GetWeeklyLeaderboard returns the ranked weekly records (members only)
func GetWeeklyLeaderboard(c *gin.Context) {
	gang, ok := findGang(c)
	if !ok {
		return
	}
	if _, ok := requireMembership(c, gang.ID, auth.CurrentUserID(c)); !ok {
		return
	}

	asOf, err := asOfDate(c)
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	records, err := boardService().WeeklyLeaderboard(c.Request.Context(), gang.ID, asOf)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weekly_records": records})
}

// GetMonthlyLeaderboard returns the ranked monthly records and the
// Mantri (members only)
func GetMonthlyLeaderboard(c *gin.Context) {
	gang, ok := findGang(c)
	if !ok {
		return
	}
	if _, ok := requireMembership(c, gang.ID, auth.CurrentUserID(c)); !ok {
		return
	}

	asOf, err := asOfDate(c)
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}

	board, err := boardService().MonthlyLeaderboard(c.Request.Context(), gang.ID, asOf)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}
