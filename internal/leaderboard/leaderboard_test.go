package leaderboard

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

// fakeStore is an in-memory Store for exercising the aggregators.
type fakeStore struct {
	members  map[uint][]Member
	saves    map[saveKey]bool
	findErr  error
	countErr error
}

type saveKey struct {
	userID uint
	gangID uint
	day    string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		members: make(map[uint][]Member),
		saves:   make(map[saveKey]bool),
	}
}

func (f *fakeStore) addSave(userID, gangID uint, day time.Time, saved bool) {
	f.saves[saveKey{userID, gangID, day.Format("2006-01-02")}] = saved
}

func (f *fakeStore) ListMembers(_ context.Context, gangID uint) ([]Member, error) {
	members, ok := f.members[gangID]
	if !ok {
		return nil, ErrGangNotFound
	}
	return members, nil
}

func (f *fakeStore) FindSave(_ context.Context, userID, gangID uint, day time.Time) (bool, bool, error) {
	if f.findErr != nil {
		return false, false, f.findErr
	}
	saved, ok := f.saves[saveKey{userID, gangID, day.Format("2006-01-02")}]
	return saved, ok, nil
}

func (f *fakeStore) CountSaves(_ context.Context, userID, gangID uint, from, to time.Time) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	var count int64
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if f.saves[saveKey{userID, gangID, d.Format("2006-01-02")}] {
			count++
		}
	}
	return count, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Week under test: Monday 2024-06-10 through Sunday 2024-06-16.
var (
	monday   = day(2024, 6, 10)
	thursday = day(2024, 6, 13)
)

const gangID = 1

func seedGang(store *fakeStore, members ...Member) {
	store.members[gangID] = members
}

func TestWeeklyLeaderboard_Ordering(t *testing.T) {
	store := newFakeStore()
	seedGang(store,
		Member{UserID: 1, Username: "alice", Role: "host"},
		Member{UserID: 2, Username: "bob", Role: "member"},
		Member{UserID: 3, Username: "carol", Role: "member"},
	)
	// alice 3 saves, bob 5, carol 1
	for i := 0; i < 3; i++ {
		store.addSave(1, gangID, monday.AddDate(0, 0, i), true)
	}
	for i := 0; i < 5; i++ {
		store.addSave(2, gangID, monday.AddDate(0, 0, i), true)
	}
	store.addSave(3, gangID, monday, true)

	records, err := NewService(store).WeeklyLeaderboard(context.Background(), gangID, day(2024, 6, 16))
	if err != nil {
		t.Fatalf("WeeklyLeaderboard() error = %v", err)
	}

	var got []string
	for _, r := range records {
		got = append(got, r.Username)
	}
	want := []string{"bob", "alice", "carol"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if records[0].WeekSaves != 5 || records[1].WeekSaves != 3 || records[2].WeekSaves != 1 {
		t.Errorf("counts = %d/%d/%d, want 5/3/1",
			records[0].WeekSaves, records[1].WeekSaves, records[2].WeekSaves)
	}
}

func TestWeeklyLeaderboard_TieBreak(t *testing.T) {
	store := newFakeStore()
	// Enumeration order deliberately not alphabetical.
	seedGang(store,
		Member{UserID: 5, Username: "zoe", Role: "member"},
		Member{UserID: 6, Username: "amy", Role: "host"},
		Member{UserID: 7, Username: "mia", Role: "member"},
	)
	for _, id := range []uint{5, 6, 7} {
		store.addSave(id, gangID, monday, true)
	}

	records, err := NewService(store).WeeklyLeaderboard(context.Background(), gangID, thursday)
	if err != nil {
		t.Fatalf("WeeklyLeaderboard() error = %v", err)
	}

	var got []string
	for _, r := range records {
		got = append(got, r.Username)
	}
	want := []string{"amy", "mia", "zoe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tied rows = %v, want username ascending %v", got, want)
	}
}

func TestWeeklyRecord_DayResolution(t *testing.T) {
	store := newFakeStore()
	seedGang(store, Member{UserID: 1, Username: "alice", Role: "host"})
	// Monday saved, Tuesday explicitly toggled off. Wednesday has no
	// record at all; Thursday is the as-of day, also no record. Friday
	// through Sunday are in the future.
	store.addSave(1, gangID, monday, true)
	store.addSave(1, gangID, monday.AddDate(0, 0, 1), false)

	records, err := NewService(store).WeeklyLeaderboard(context.Background(), gangID, thursday)
	if err != nil {
		t.Fatalf("WeeklyLeaderboard() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	week := records[0].WeeklyRecord
	if len(week) != 7 {
		t.Fatalf("weekly record has %d slots, want 7", len(week))
	}

	wantResolved := []struct {
		idx  int
		want bool
	}{
		{0, true},  // monday, saved
		{1, false}, // tuesday, toggled off
		{2, false}, // wednesday, no record: missed, not unknown
		{3, false}, // thursday (as-of), no record yet
	}
	for _, tt := range wantResolved {
		if week[tt.idx] == nil {
			t.Errorf("slot %d is unknown, want %v", tt.idx, tt.want)
			continue
		}
		if *week[tt.idx] != tt.want {
			t.Errorf("slot %d = %v, want %v", tt.idx, *week[tt.idx], tt.want)
		}
	}
	for idx := 4; idx < 7; idx++ {
		if week[idx] != nil {
			t.Errorf("future slot %d = %v, want unknown", idx, *week[idx])
		}
	}
	if records[0].WeekSaves != 1 {
		t.Errorf("week saves = %d, want 1", records[0].WeekSaves)
	}
}

func TestWeeklyLeaderboard_Idempotent(t *testing.T) {
	store := newFakeStore()
	seedGang(store,
		Member{UserID: 1, Username: "alice", Role: "host"},
		Member{UserID: 2, Username: "bob", Role: "member"},
	)
	store.addSave(1, gangID, monday, true)
	store.addSave(2, gangID, monday.AddDate(0, 0, 2), true)

	svc := NewService(store)
	first, err := svc.WeeklyLeaderboard(context.Background(), gangID, thursday)
	if err != nil {
		t.Fatalf("first call error = %v", err)
	}
	second, err := svc.WeeklyLeaderboard(context.Background(), gangID, thursday)
	if err != nil {
		t.Fatalf("second call error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated aggregation differs:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestMonthlyLeaderboard(t *testing.T) {
	store := newFakeStore()
	seedGang(store,
		Member{UserID: 1, Username: "alice", Role: "host"},
		Member{UserID: 2, Username: "bob", Role: "member"},
		Member{UserID: 3, Username: "carol", Role: "member"},
	)
	// alice 3, bob 5, carol 1 — carol is the Mantri.
	for i := 0; i < 3; i++ {
		store.addSave(1, gangID, day(2024, 6, 1).AddDate(0, 0, i), true)
	}
	for i := 0; i < 5; i++ {
		store.addSave(2, gangID, day(2024, 6, 1).AddDate(0, 0, i), true)
	}
	store.addSave(3, gangID, day(2024, 6, 20), true)
	// Saves outside June must not count.
	store.addSave(3, gangID, day(2024, 5, 31), true)
	store.addSave(3, gangID, day(2024, 7, 1), true)

	board, err := NewService(store).MonthlyLeaderboard(context.Background(), gangID, day(2024, 6, 15))
	if err != nil {
		t.Fatalf("MonthlyLeaderboard() error = %v", err)
	}

	var got []string
	for _, r := range board.MonthlyRecords {
		got = append(got, r.Username)
	}
	want := []string{"bob", "alice", "carol"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if board.Mantri == nil || board.Mantri.Username != "carol" {
		t.Errorf("mantri = %+v, want carol", board.Mantri)
	}
	if board.MonthlyRecords[2].MonthlySaves != 1 {
		t.Errorf("carol's june saves = %d, want 1 (adjacent months excluded)",
			board.MonthlyRecords[2].MonthlySaves)
	}
}

func TestMonthlyLeaderboard_MantriTie(t *testing.T) {
	store := newFakeStore()
	seedGang(store,
		Member{UserID: 1, Username: "zoe", Role: "member"},
		Member{UserID: 2, Username: "amy", Role: "host"},
	)
	// Both have zero saves: the greatest username sorts last and pays.
	board, err := NewService(store).MonthlyLeaderboard(context.Background(), gangID, day(2024, 6, 15))
	if err != nil {
		t.Fatalf("MonthlyLeaderboard() error = %v", err)
	}
	if board.Mantri == nil || board.Mantri.Username != "zoe" {
		t.Errorf("mantri = %+v, want zoe", board.Mantri)
	}
}

func TestMonthlyLeaderboard_SingleMember(t *testing.T) {
	store := newFakeStore()
	seedGang(store, Member{UserID: 1, Username: "alice", Role: "host"})

	board, err := NewService(store).MonthlyLeaderboard(context.Background(), gangID, day(2024, 6, 15))
	if err != nil {
		t.Fatalf("MonthlyLeaderboard() error = %v", err)
	}
	if len(board.MonthlyRecords) != 1 {
		t.Fatalf("got %d records, want 1", len(board.MonthlyRecords))
	}
	// Sole member leads the board and is the Mantri at the same time.
	if board.Mantri == nil || board.Mantri.UserID != board.MonthlyRecords[0].UserID {
		t.Errorf("mantri = %+v, want the sole member", board.Mantri)
	}
}

func TestMonthlyLeaderboard_EmptyGang(t *testing.T) {
	store := newFakeStore()
	seedGang(store) // exists, no members

	board, err := NewService(store).MonthlyLeaderboard(context.Background(), gangID, day(2024, 6, 15))
	if err != nil {
		t.Fatalf("MonthlyLeaderboard() error = %v", err)
	}
	if len(board.MonthlyRecords) != 0 {
		t.Errorf("got %d records, want 0", len(board.MonthlyRecords))
	}
	if board.Mantri != nil {
		t.Errorf("mantri = %+v, want nil", board.Mantri)
	}
}

func TestGangHome(t *testing.T) {
	store := newFakeStore()
	seedGang(store,
		Member{UserID: 1, Username: "alice", Role: "host"},
		Member{UserID: 2, Username: "bob", Role: "member"},
	)
	store.addSave(1, gangID, thursday, true)

	view, err := NewService(store).GangHome(context.Background(), gangID, 1, thursday)
	if err != nil {
		t.Fatalf("GangHome() error = %v", err)
	}

	if len(view.Members) != 2 {
		t.Errorf("members = %d, want 2", len(view.Members))
	}
	if len(view.WeeklyRecords) != 2 {
		t.Errorf("weekly records = %d, want 2", len(view.WeeklyRecords))
	}
	if view.WeeklyRecords[0].Username != "alice" {
		t.Errorf("leader = %s, want alice", view.WeeklyRecords[0].Username)
	}
	if !view.UserTodaySave {
		t.Error("user_today_save = false, want true")
	}
	if len(view.UserWeeklyRecord) != 7 {
		t.Fatalf("user weekly record has %d slots, want 7", len(view.UserWeeklyRecord))
	}
	if view.UserWeeklyRecord[3] == nil || !*view.UserWeeklyRecord[3] {
		t.Error("thursday slot should be true for the requester")
	}
}

func TestGangHome_TodayDefaultsFalse(t *testing.T) {
	store := newFakeStore()
	seedGang(store, Member{UserID: 1, Username: "alice", Role: "host"})

	view, err := NewService(store).GangHome(context.Background(), gangID, 1, thursday)
	if err != nil {
		t.Fatalf("GangHome() error = %v", err)
	}
	if view.UserTodaySave {
		t.Error("user_today_save = true with no record, want false")
	}
}

func TestGangHome_NotAMember(t *testing.T) {
	store := newFakeStore()
	seedGang(store, Member{UserID: 1, Username: "alice", Role: "host"})

	_, err := NewService(store).GangHome(context.Background(), gangID, 99, thursday)
	if !errors.Is(err, ErrNotAMember) {
		t.Errorf("error = %v, want ErrNotAMember", err)
	}
}

func TestErrors(t *testing.T) {
	t.Run("unknown gang", func(t *testing.T) {
		store := newFakeStore()
		_, err := NewService(store).WeeklyLeaderboard(context.Background(), 42, thursday)
		if !errors.Is(err, ErrGangNotFound) {
			t.Errorf("error = %v, want ErrGangNotFound", err)
		}
	})

	t.Run("count failure surfaces as store unavailable", func(t *testing.T) {
		store := newFakeStore()
		seedGang(store, Member{UserID: 1, Username: "alice", Role: "host"})
		store.countErr = errors.New("connection refused")

		_, err := NewService(store).MonthlyLeaderboard(context.Background(), gangID, thursday)
		if !errors.Is(err, ErrStoreUnavailable) {
			t.Errorf("error = %v, want ErrStoreUnavailable", err)
		}
	})

	t.Run("find failure surfaces as store unavailable", func(t *testing.T) {
		store := newFakeStore()
		seedGang(store, Member{UserID: 1, Username: "alice", Role: "host"})
		store.findErr = errors.New("connection refused")

		_, err := NewService(store).WeeklyLeaderboard(context.Background(), gangID, thursday)
		if !errors.Is(err, ErrStoreUnavailable) {
			t.Errorf("error = %v, want ErrStoreUnavailable", err)
		}
	})
}
