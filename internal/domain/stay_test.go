package domain_test

import (
	"errors"
	"testing"
	"time"

	"pts_hotel/internal/domain"
)

func d(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	cases := []struct {
		name    string
		in, out time.Time
		want    int
		wantErr bool
	}{
		{"one night", d("2025-01-01T00:00:00Z"), d("2025-01-02T00:00:00Z"), 1, false},
		{"half day rounds up", d("2025-01-01T00:00:00Z"), d("2025-01-01T12:00:00Z"), 1, false},
		{"three nights", d("2025-01-01T00:00:00Z"), d("2025-01-04T00:00:00Z"), 3, false},
		{"partial extra day rounds up", d("2025-01-01T00:00:00Z"), d("2025-01-03T06:00:00Z"), 3, false},
		{"equal instants", d("2025-01-01T00:00:00Z"), d("2025-01-01T00:00:00Z"), 0, true},
		{"reversed", d("2025-01-02T00:00:00Z"), d("2025-01-01T00:00:00Z"), 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.Nights(tc.in, tc.out)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalid) {
					t.Fatalf("want ErrInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if got != tc.want {
				t.Fatalf("nights = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	a1, a2 := d("2025-01-01T00:00:00Z"), d("2025-01-05T00:00:00Z")
	cases := []struct {
		name   string
		b1, b2 time.Time
		want   bool
	}{
		{"contained", d("2025-01-02T00:00:00Z"), d("2025-01-03T00:00:00Z"), true},
		{"straddles start", d("2024-12-30T00:00:00Z"), d("2025-01-02T00:00:00Z"), true},
		{"straddles end", d("2025-01-04T00:00:00Z"), d("2025-01-08T00:00:00Z"), true},
		{"touching end is disjoint", d("2025-01-05T00:00:00Z"), d("2025-01-07T00:00:00Z"), false},
		{"touching start is disjoint", d("2024-12-28T00:00:00Z"), d("2025-01-01T00:00:00Z"), false},
		{"fully after", d("2025-02-01T00:00:00Z"), d("2025-02-03T00:00:00Z"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.Overlaps(a1, a2, tc.b1, tc.b2); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			// symmetric by definition
			if got := domain.Overlaps(tc.b1, tc.b2, a1, a2); got != tc.want {
				t.Fatalf("Overlaps not symmetric for %s", tc.name)
			}
		})
	}
}

func TestCoversInstant(t *testing.T) {
	start, end := d("2025-01-01T00:00:00Z"), d("2025-01-03T00:00:00Z")

	if !domain.CoversInstant(start, end, start) {
		t.Fatal("stay should cover its own check-in instant")
	}
	if domain.CoversInstant(start, end, end) {
		t.Fatal("stay should not cover its check-out instant")
	}
	if !domain.CoversInstant(start, end, d("2025-01-02T12:00:00Z")) {
		t.Fatal("stay should cover an interior instant")
	}
	if domain.CoversInstant(start, end, d("2025-01-04T00:00:00Z")) {
		t.Fatal("stay should not cover a later instant")
	}
}

func TestDayBounds(t *testing.T) {
	start, end := domain.DayBounds(d("2025-08-12T13:18:00Z"))
	if got := start.Format(time.RFC3339); got != "2025-08-12T00:00:00Z" {
		t.Fatalf("start = %s", got)
	}
	if !end.After(d("2025-08-12T23:59:59Z")) || !end.Before(d("2025-08-13T00:00:00Z")) {
		t.Fatalf("end = %s", end)
	}
}

func TestOverlapsDay(t *testing.T) {
	ref := d("2025-08-12T13:18:00Z")
	cases := []struct {
		name    string
		in, out time.Time
		want    bool
	}{
		{"check-in within day", d("2025-08-12T15:00:00Z"), d("2025-08-15T00:00:00Z"), true},
		{"check-out within day", d("2025-08-10T00:00:00Z"), d("2025-08-12T10:00:00Z"), true},
		{"spans the day", d("2025-08-10T00:00:00Z"), d("2025-08-20T00:00:00Z"), true},
		{"check-out at day start still counts", d("2025-08-10T00:00:00Z"), d("2025-08-12T00:00:00Z"), true},
		{"entirely before", d("2025-08-01T00:00:00Z"), d("2025-08-05T00:00:00Z"), false},
		{"entirely after", d("2025-08-20T00:00:00Z"), d("2025-08-22T00:00:00Z"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.OverlapsDay(tc.in, tc.out, ref); got != tc.want {
				t.Fatalf("OverlapsDay = %v, want %v", got, tc.want)
			}
		})
	}
}
