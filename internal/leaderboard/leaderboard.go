// Package leaderboard derives ranked weekly and monthly gang views from
// the per-day save log. It is read-only and stateless: every call
// re-derives its result from the backing stores, so concurrent requests
// never interfere.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrGangNotFound is returned when the referenced gang does not exist.
	ErrGangNotFound = errors.New("gang not found")
	// ErrNotAMember is returned when the requesting user is not a member
	// of the gang. It is checked before any aggregation work so save
	// counts never leak to outsiders.
	ErrNotAMember = errors.New("not a member of this gang")
	// ErrInvalidDateRange is returned for a window whose end precedes its
	// start. Defensive: the calendar utilities never produce one.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrStoreUnavailable wraps store lookup failures.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// storeErr tags a store failure so callers can match ErrStoreUnavailable
// while keeping the underlying cause in the chain.
func storeErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// Member is one row of a gang's membership as the aggregators see it.
type Member struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// MemberStore enumerates a gang's membership.
type MemberStore interface {
	// ListMembers returns all members of the gang, or ErrGangNotFound.
	ListMembers(ctx context.Context, gangID uint) ([]Member, error)
}

// SaveStore looks up save records. Implementations must guarantee at
// most one record per (user, gang, day).
type SaveStore interface {
	// FindSave reports the saved flag for the given day and whether a
	// record exists at all. Absence and false are distinct: a missing
	// record on a past day means "did not save".
	FindSave(ctx context.Context, userID, gangID uint, day time.Time) (saved, ok bool, err error)
	// CountSaves counts records with saved=true in [from, to] inclusive.
	CountSaves(ctx context.Context, userID, gangID uint, from, to time.Time) (int64, error)
}

// Store is the full read capability the aggregators depend on.
type Store interface {
	MemberStore
	SaveStore
}

// WeeklyRecord is one member's row in the weekly view. WeeklyRecord has
// exactly seven entries, Monday first; nil marks a day after the as-of
// date whose outcome is not yet determined.
type WeeklyRecord struct {
	UserID       uint    `json:"user_id"`
	Username     string  `json:"username"`
	WeekSaves    int64   `json:"week_saves"`
	WeeklyRecord []*bool `json:"weekly_record"`
	Role         string  `json:"role"`
}

// MonthlyRecord is one member's row in the monthly leaderboard.
type MonthlyRecord struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	MonthlySaves int64  `json:"monthly_saves"`
	Role         string `json:"role"`
}

// MonthlyLeaderboard is the ranked monthly view. Mantri is the member
// with the fewest saves, nil when the gang has no members.
type MonthlyLeaderboard struct {
	MonthlyRecords []MonthlyRecord `json:"monthly_records"`
	Mantri         *MonthlyRecord  `json:"mantri"`
}

// HomeView is the combined gang home payload for one requesting member.
type HomeView struct {
	Members          []Member       `json:"members"`
	WeeklyRecords    []WeeklyRecord `json:"weekly_records"`
	UserWeeklyRecord []*bool        `json:"user_weekly_record"`
	UserTodaySave    bool           `json:"user_today_save"`
}

// Service exposes the aggregation operations. The as-of date selects the
// week and month being viewed and doubles as "today" for the purpose of
// marking future days unknown.
type Service interface {
	WeeklyLeaderboard(ctx context.Context, gangID uint, asOf time.Time) ([]WeeklyRecord, error)
	MonthlyLeaderboard(ctx context.Context, gangID uint, asOf time.Time) (*MonthlyLeaderboard, error)
	GangHome(ctx context.Context, gangID, userID uint, asOf time.Time) (*HomeView, error)
}

type service struct {
	store Store
}

// NewService returns a Service backed by the given store.
func NewService(store Store) Service {
	return &service{store: store}
}
