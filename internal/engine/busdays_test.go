package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDaysElapsed(t *testing.T) {
	tests := []struct {
		a    time.Time
		b    time.Time
		name string
		want int
	}{
		{
			name: "same day",
			a:    date(2025, time.January, 10), // Friday
			b:    date(2025, time.January, 10),
			want: 0,
		},
		{
			name: "friday to following monday skips weekend",
			a:    date(2025, time.January, 10), // Friday
			b:    date(2025, time.January, 13), // Monday
			want: 1,
		},
		{
			name: "friday to monday week after",
			a:    date(2025, time.January, 10),
			b:    date(2025, time.January, 20),
			want: 6,
		},
		{
			name: "mid-week three day span",
			a:    date(2025, time.January, 10),
			b:    date(2025, time.January, 15),
			want: 3,
		},
		{
			name: "order of arguments does not matter",
			a:    date(2025, time.January, 20),
			b:    date(2025, time.January, 10),
			want: 6,
		},
		{
			name: "full calendar week",
			a:    date(2025, time.January, 6),  // Monday
			b:    date(2025, time.January, 12), // Sunday
			want: 4,
		},
		{
			name: "saturday to sunday clamps to zero",
			a:    date(2025, time.January, 11),
			b:    date(2025, time.January, 12),
			want: 0,
		},
		{
			name: "saturday to the next monday",
			a:    date(2025, time.January, 11),
			b:    date(2025, time.January, 13),
			want: 0,
		},
		{
			name: "time of day is ignored",
			a:    time.Date(2025, time.January, 10, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2025, time.January, 13, 0, 1, 0, 0, time.UTC),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BusinessDaysElapsed(tt.a, tt.b))
		})
	}
}
