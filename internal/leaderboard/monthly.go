package leaderboard

import (
	"context"
	"sort"
	"time"

	"mantri/internal/calendar"
)

// MonthlyLeaderboard computes every member's save total for the calendar
// month containing asOf, ranked descending, and names the Mantri: the
// last row after sorting, i.e. the member with the fewest saves. Among
// members tied for fewest, the greatest username sorts last and pays.
// An empty gang yields an empty leaderboard and a nil Mantri.
func (s *service) MonthlyLeaderboard(ctx context.Context, gangID uint, asOf time.Time) (*MonthlyLeaderboard, error) {
	members, err := s.store.ListMembers(ctx, gangID)
	if err != nil {
		return nil, wrapListErr(err)
	}

	monthStart := calendar.MonthStart(asOf)
	monthEnd := calendar.MonthEnd(asOf)

	records := make([]MonthlyRecord, 0, len(members))
	for _, member := range members {
		saves, err := s.countWindow(ctx, member.UserID, gangID, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}
		records = append(records, MonthlyRecord{
			UserID:       member.UserID,
			Username:     member.Username,
			MonthlySaves: saves,
			Role:         member.Role,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].MonthlySaves != records[j].MonthlySaves {
			return records[i].MonthlySaves > records[j].MonthlySaves
		}
		return records[i].Username < records[j].Username
	})

	board := &MonthlyLeaderboard{MonthlyRecords: records}
	if len(records) > 0 {
		mantri := records[len(records)-1]
		board.Mantri = &mantri
	}
	return board, nil
}
