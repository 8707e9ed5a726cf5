package database

import (
	"context"
	"errors"
	"time"

	"mantri/internal/leaderboard"
	"mantri/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GangStore is the gorm-backed implementation of the aggregation core's
// read interfaces, plus the save-toggle write path.
type GangStore struct {
	db *gorm.DB
}

// NewGangStore returns a GangStore on the given connection.
func NewGangStore(db *gorm.DB) *GangStore {
	return &GangStore{db: db}
}

var _ leaderboard.Store = (*GangStore)(nil)

// ListMembers returns the gang's membership with usernames attached, or
// leaderboard.ErrGangNotFound for an unknown gang.
func (s *GangStore) ListMembers(ctx context.Context, gangID uint) ([]leaderboard.Member, error) {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&models.Gang{}).
		Where("id = ?", gangID).
		Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, leaderboard.ErrGangNotFound
	}

	var members []leaderboard.Member
	err := s.db.WithContext(ctx).Model(&models.GangMember{}).
		Select("gang_members.user_id, users.username, gang_members.role").
		Joins("JOIN users ON users.id = gang_members.user_id").
		Where("gang_members.gang_id = ?", gangID).
		Order("gang_members.joined_at ASC").
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// FindSave reports the saved flag for one calendar day and whether a
// record exists.
func (s *GangStore) FindSave(ctx context.Context, userID, gangID uint, day time.Time) (bool, bool, error) {
	var record models.SaveRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND gang_id = ? AND save_date = ?", userID, gangID, datatypes.Date(day)).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return record.Saved, true, nil
}

// CountSaves counts saved=true records within [from, to] inclusive.
func (s *GangStore) CountSaves(ctx context.Context, userID, gangID uint, from, to time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.SaveRecord{}).
		Where("user_id = ? AND gang_id = ? AND save_date >= ? AND save_date <= ? AND saved = ?",
			userID, gangID, datatypes.Date(from), datatypes.Date(to), true).
		Count(&count).Error
	return count, err
}

// ToggleSave sets the user's saved flag for the given day as a single
// atomic upsert keyed on (user_id, gang_id, save_date). Concurrent
// toggles for the same day serialize on the unique index; last committed
// write wins and no duplicate row can appear.
func (s *GangStore) ToggleSave(ctx context.Context, userID, gangID uint, day time.Time, saved bool) error {
	record := models.SaveRecord{
		UserID:   userID,
		GangID:   gangID,
		Saved:    saved,
		SaveDate: datatypes.Date(day),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "gang_id"}, {Name: "save_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"saved"}),
	}).Create(&record).Error
}
