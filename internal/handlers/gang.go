package handlers

import (
	"net/http"

	"mantri/internal/auth"
	"mantri/internal/database"
	"mantri/internal/models"
	"mantri/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateGang handles the creation of a new gang
func CreateGang(c *gin.Context) {
	var req models.CreateGangRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	userID := auth.CurrentUserID(c)
	db := database.GetDB()

	code, err := uniqueJoinCode(db)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create gang", err)
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	gang := models.Gang{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    isPublic,
		GangID:      code,
		CreatedBy:   userID,
	}
	if err := db.Create(&gang).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create gang", err)
		return
	}

	// The creator becomes the gang's host
	member := models.GangMember{
		UserID: userID,
		GangID: gang.ID,
		Role:   models.RoleHost,
	}
	if err := db.Create(&member).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to add host to gang", err)
		return
	}

	c.JSON(http.StatusCreated, gang)
}

// uniqueJoinCode draws join codes until one is free.
func uniqueJoinCode(db *gorm.DB) (string, error) {
	for {
		code, err := utils.GenerateJoinCode()
		if err != nil {
			return "", err
		}
		var count int64
		if err := db.Model(&models.Gang{}).Where("gang_id = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
}

// GetGang handles fetching a single gang's details by join code
func GetGang(c *gin.Context) {
	gang, ok := findGang(c)
	if !ok {
		return
	}

	var memberCount int64
	database.GetDB().Model(&models.GangMember{}).Where("gang_id = ?", gang.ID).Count(&memberCount)

	c.JSON(http.StatusOK, gin.H{
		"id":           gang.ID,
		"name":         gang.Name,
		"description":  gang.Description,
		"is_public":    gang.IsPublic,
		"gang_id":      gang.GangID,
		"created_by":   gang.CreatedBy,
		"created_at":   gang.CreatedAt,
		"member_count": memberCount,
	})
}

// JoinGang adds the authenticated user to a gang
func JoinGang(c *gin.Context) {
	gang, ok := findGang(c)
	if !ok {
		return
	}

	userID := auth.CurrentUserID(c)
	db := database.GetDB()

	var existing models.GangMember
	if err := db.Where("user_id = ? AND gang_id = ?", userID, gang.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already a member of this gang"})
		return
	}

	member := models.GangMember{
		UserID: userID,
		GangID: gang.ID,
		Role:   models.RoleMember,
	}
	if err := db.Create(&member).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to join gang", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully joined gang"})
}

// LeaveGang removes the authenticated user from a gang
func LeaveGang(c *gin.Context) {
	gang, ok := findGang(c)
	if !ok {
		return
	}

	userID := auth.CurrentUserID(c)
	member, ok := requireMembership(c, gang.ID, userID)
	if !ok {
		return
	}

	db := database.GetDB()

	// The host may only leave once everyone else is gone
	if member.Role == models.RoleHost {
		var others int64
		db.Model(&models.GangMember{}).
			Where("gang_id = ? AND user_id <> ?", gang.ID, userID).
			Count(&others)
		if others > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Host cannot leave gang with other members. Transfer ownership first."})
			return
		}
	}

	if err := db.Delete(member).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to leave gang", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully left gang"})
}

// GetUserGangs lists the authenticated user's gangs with member counts
func GetUserGangs(c *gin.Context) {
	userID := auth.CurrentUserID(c)
	db := database.GetDB()

	var memberships []models.GangMember
	if err := db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch gangs", err)
		return
	}

	summaries := make([]models.GangSummary, 0, len(memberships))
	for _, membership := range memberships {
		var gang models.Gang
		if err := db.First(&gang, membership.GangID).Error; err != nil {
			continue
		}
		var memberCount int64
		db.Model(&models.GangMember{}).Where("gang_id = ?", gang.ID).Count(&memberCount)

		summaries = append(summaries, models.GangSummary{
			ID:          gang.ID,
			Name:        gang.Name,
			Description: gang.Description,
			GangID:      gang.GangID,
			Role:        membership.Role,
			MemberCount: memberCount,
		})
	}

	c.JSON(http.StatusOK, summaries)
}

// GetGangMembers lists a gang's members (members only)
func GetGangMembers(c *gin.Context) {
	gang, ok := findGang(c)
	if !ok {
		return
	}
	if _, ok := requireMembership(c, gang.ID, auth.CurrentUserID(c)); !ok {
		return
	}

	var members []models.GangMember
	if err := database.GetDB().Preload("User").
		Where("gang_id = ?", gang.ID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch members", err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// RemoveMember lets the host remove a member from the gang
func RemoveMember(c *gin.Context) {
	gang, ok := findGang(c)
	if !ok {
		return
	}

	requester, ok := requireMembership(c, gang.ID, auth.CurrentUserID(c))
	if !ok {
		return
	}
	if requester.Role != models.RoleHost {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only host can remove members"})
		return
	}

	db := database.GetDB()
	var target models.GangMember
	if err := db.Where("user_id = ? AND gang_id = ?", c.Param("user_id"), gang.ID).First(&target).Error; err != nil {
		handleError(c, http.StatusNotFound, "Member not found", err)
		return
	}

	if err := db.Delete(&target).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to remove member", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
