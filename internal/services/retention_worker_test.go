package services

import (
	"testing"
	"time"
)

func TestRetentionCutoff(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			// Week of 2024-06-10 starts after the month did.
			name: "mid month keeps from month start",
			now:  time.Date(2024, 6, 13, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			// 2024-07-01 is a Monday: both windows start the same day.
			name: "aligned week and month",
			now:  time.Date(2024, 7, 3, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			// Early August 2024: the current week began back in July, so
			// July's tail days are still visible in the weekly view.
			name: "week straddling a month boundary",
			now:  time.Date(2024, 8, 2, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, 7, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := retentionCutoff(tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("retentionCutoff(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
