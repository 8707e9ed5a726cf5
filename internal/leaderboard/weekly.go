package leaderboard

import (
	"context"
	"errors"
	"sort"
	"time"

	"mantri/internal/calendar"
)

// WeeklyLeaderboard computes every member's save count and day-by-day
// record for the week containing asOf, sorted by saves descending.
// Ties sort by username ascending so the ordering is deterministic.
func (s *service) WeeklyLeaderboard(ctx context.Context, gangID uint, asOf time.Time) ([]WeeklyRecord, error) {
	members, err := s.store.ListMembers(ctx, gangID)
	if err != nil {
		return nil, wrapListErr(err)
	}

	records := make([]WeeklyRecord, 0, len(members))
	for _, member := range members {
		record, err := s.weeklyRecord(ctx, member, gangID, asOf)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	sortWeekly(records)

	return records, nil
}

// sortWeekly orders rows by saves descending, username ascending on ties.
func sortWeekly(records []WeeklyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].WeekSaves != records[j].WeekSaves {
			return records[i].WeekSaves > records[j].WeekSaves
		}
		return records[i].Username < records[j].Username
	})
}

// weeklyRecord builds one member's row for the week containing asOf.
func (s *service) weeklyRecord(ctx context.Context, member Member, gangID uint, asOf time.Time) (WeeklyRecord, error) {
	weekSaves, err := s.countWindow(ctx, member.UserID, gangID, calendar.WeekStart(asOf), calendar.WeekEnd(asOf))
	if err != nil {
		return WeeklyRecord{}, err
	}

	days, err := s.dailyRecord(ctx, member.UserID, gangID, asOf)
	if err != nil {
		return WeeklyRecord{}, err
	}

	return WeeklyRecord{
		UserID:       member.UserID,
		Username:     member.Username,
		WeekSaves:    weekSaves,
		WeeklyRecord: days,
		Role:         member.Role,
	}, nil
}

// dailyRecord resolves the seven per-day slots for the week containing
// asOf. Days after asOf are nil (not yet determined); days on or before
// asOf resolve to the stored flag, or false when no record exists.
func (s *service) dailyRecord(ctx context.Context, userID, gangID uint, asOf time.Time) ([]*bool, error) {
	today := calendar.Normalize(asOf)

	days := make([]*bool, 0, calendar.DaysPerWeek)
	for _, day := range calendar.WeekDates(asOf) {
		if day.After(today) {
			days = append(days, nil)
			continue
		}
		saved, ok, err := s.store.FindSave(ctx, userID, gangID, day)
		if err != nil {
			return nil, storeErr(err)
		}
		value := ok && saved
		days = append(days, &value)
	}
	return days, nil
}

// countWindow counts saved=true records in [from, to], guarding against
// an inverted window.
func (s *service) countWindow(ctx context.Context, userID, gangID uint, from, to time.Time) (int64, error) {
	if to.Before(from) {
		return 0, ErrInvalidDateRange
	}
	count, err := s.store.CountSaves(ctx, userID, gangID, from, to)
	if err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

// wrapListErr keeps the core's own sentinels intact and tags everything
// else as a store failure.
func wrapListErr(err error) error {
	if errors.Is(err, ErrGangNotFound) || errors.Is(err, ErrNotAMember) {
		return err
	}
	return storeErr(err)
}
