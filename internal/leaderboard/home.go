package leaderboard

import (
	"context"
	"time"

	"mantri/internal/calendar"
)

// GangHome composes the gang home view for one requesting member: the
// full membership, everyone's weekly records (ranked), the requester's
// own weekly record and their saved-today flag. The membership check
// happens before any aggregation; non-members get ErrNotAMember and
// nothing else. The composer performs no writes.
func (s *service) GangHome(ctx context.Context, gangID, userID uint, asOf time.Time) (*HomeView, error) {
	members, err := s.store.ListMembers(ctx, gangID)
	if err != nil {
		return nil, wrapListErr(err)
	}

	requester, ok := findMember(members, userID)
	if !ok {
		return nil, ErrNotAMember
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

	userRecord, err := s.dailyRecord(ctx, requester.UserID, gangID, asOf)
	if err != nil {
		return nil, err
	}

	todaySaved, ok, err := s.store.FindSave(ctx, requester.UserID, gangID, calendar.Normalize(asOf))
	if err != nil {
		return nil, storeErr(err)
	}

	return &HomeView{
		Members:          members,
		WeeklyRecords:    records,
		UserWeeklyRecord: userRecord,
		UserTodaySave:    ok && todaySaved,
	}, nil
}

func findMember(members []Member, userID uint) (Member, bool) {
	for _, m := range members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Member{}, false
}
