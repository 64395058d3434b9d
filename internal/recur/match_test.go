package recur

import "testing"

// Week of 2025-01-20: Mon 20, Tue 21, Wed 22, Thu 23, Fri 24, Sat 25, Sun 26.

func TestMatchesDaily(t *testing.T) {
	for _, date := range []string{"2025-01-20", "2025-01-25", "2024-02-29", "2025-12-31"} {
		got, err := Matches("daily", date)
		if err != nil {
			t.Fatalf("Matches(daily, %s): unexpected error: %v", date, err)
		}
		if !got {
			t.Fatalf("Matches(daily, %s): expected true", date)
		}
	}
}

func TestMatchesWeekdays(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"2025-01-20", true},  // Mon
		{"2025-01-21", true},  // Tue
		{"2025-01-22", true},  // Wed
		{"2025-01-23", true},  // Thu
		{"2025-01-24", true},  // Fri
		{"2025-01-25", false}, // Sat
		{"2025-01-26", false}, // Sun
	}
	for _, tc := range cases {
		got, err := Matches("weekdays", tc.date)
		if err != nil {
			t.Fatalf("Matches(weekdays, %s): unexpected error: %v", tc.date, err)
		}
		if got != tc.want {
			t.Fatalf("Matches(weekdays, %s): expected %v, got %v", tc.date, tc.want, got)
		}
	}
}

func TestMatchesWeekly(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"2025-01-20", true},  // Mon
		{"2025-01-21", false}, // Tue
		{"2025-01-22", true},  // Wed
		{"2025-01-24", true},  // Fri
		{"2025-01-25", false}, // Sat
	}
	for _, tc := range cases {
		got, err := Matches("weekly:MON,WED,FRI", tc.date)
		if err != nil {
			t.Fatalf("Matches(weekly, %s): unexpected error: %v", tc.date, err)
		}
		if got != tc.want {
			t.Fatalf("Matches(weekly, %s): expected %v, got %v", tc.date, tc.want, got)
		}
	}
}

func TestMatchesMonthlyDayNoClamp(t *testing.T) {
	// monthly:31 never matches a 30-day month, in any year.
	for _, date := range []string{"2024-04-30", "2025-04-30", "2026-04-30", "2025-02-28"} {
		got, err := Matches("monthly:31", date)
		if err != nil {
			t.Fatalf("Matches(monthly:31, %s): unexpected error: %v", date, err)
		}
		if got {
			t.Fatalf("Matches(monthly:31, %s): expected false", date)
		}
	}
	got, err := Matches("monthly:31", "2025-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatalf("Matches(monthly:31, 2025-01-31): expected true")
	}
}

func TestMatchesMonthlyNthWeekday(t *testing.T) {
	cases := []struct {
		rule string
		date string
		want bool
	}{
		{"monthly:3:WED", "2025-01-15", true},  // 3rd Wednesday
		{"monthly:3:WED", "2025-01-08", false}, // 2nd Wednesday
		{"monthly:3:WED", "2025-01-22", false}, // 4th Wednesday
		{"monthly:3:WED", "2025-01-16", false}, // Thursday
		{"monthly:1:MON", "2025-01-06", true},
		{"monthly:1:MON", "2025-01-13", false},
		{"monthly:last:FRI", "2025-01-31", true},
		{"monthly:last:FRI", "2025-01-24", false},
		{"monthly:last:TUE", "2025-02-25", true},
		{"monthly:5:THU", "2025-01-30", true}, // Jan 2025 has five Thursdays
		{"monthly:5:THU", "2025-02-27", false},
	}
	for _, tc := range cases {
		got, err := Matches(tc.rule, tc.date)
		if err != nil {
			t.Fatalf("Matches(%s, %s): unexpected error: %v", tc.rule, tc.date, err)
		}
		if got != tc.want {
			t.Fatalf("Matches(%s, %s): expected %v, got %v", tc.rule, tc.date, tc.want, got)
		}
	}
}

func TestMatchesYearly(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"2025-03-15", true},
		{"2026-03-15", true},
		{"2025-03-14", false},
		{"2025-04-15", false},
	}
	for _, tc := range cases {
		got, err := Matches("yearly:03-15", tc.date)
		if err != nil {
			t.Fatalf("Matches(yearly, %s): unexpected error: %v", tc.date, err)
		}
		if got != tc.want {
			t.Fatalf("Matches(yearly, %s): expected %v, got %v", tc.date, tc.want, got)
		}
	}
}

func TestMatchesCron(t *testing.T) {
	// 09:00 on Mondays.
	cases := []struct {
		date string
		want bool
	}{
		{"2025-01-20", true},
		{"2025-01-21", false},
		{"2025-01-27", true},
	}
	for _, tc := range cases {
		got, err := Matches("cron:0 9 * * 1", tc.date)
		if err != nil {
			t.Fatalf("Matches(cron, %s): unexpected error: %v", tc.date, err)
		}
		if got != tc.want {
			t.Fatalf("Matches(cron, %s): expected %v, got %v", tc.date, tc.want, got)
		}
	}
}

func TestMatchesErrors(t *testing.T) {
	if _, err := Matches("nope", "2025-01-20"); err == nil {
		t.Fatalf("expected error for bad rule")
	}
	if _, err := Matches("daily", "not-a-date"); err == nil {
		t.Fatalf("expected error for bad date")
	}
}
