package schedule

import "testing"

func TestCovers(t *testing.T) {
	tests := []struct {
		name                     string
		pStart, pEnd, start, end string
		want                     bool
	}{
		{"inside", "08:00:00", "10:00:00", "08:30:00", "09:30:00", true},
		{"exact match", "08:00:00", "10:00:00", "08:00:00", "10:00:00", true},
		{"touching start", "08:00:00", "10:00:00", "08:00:00", "09:00:00", true},
		{"exceeds end", "08:00:00", "10:00:00", "08:00:00", "10:30:00", false},
		{"starts before", "08:00:00", "10:00:00", "07:30:00", "09:00:00", false},
		{"disjoint", "08:00:00", "10:00:00", "12:00:00", "14:00:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Covers(tt.pStart, tt.pEnd, tt.start, tt.end); got != tt.want {
				t.Errorf("Covers(%s-%s, %s-%s) = %v, want %v",
					tt.pStart, tt.pEnd, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestConflicts(t *testing.T) {
	tests := []struct {
		name                     string
		aStart, aEnd, bStart, bEnd string
		want                     bool
	}{
		{"overlapping", "08:00:00", "10:00:00", "09:00:00", "11:00:00", true},
		{"contained", "08:00:00", "12:00:00", "09:00:00", "10:00:00", true},
		{"touching bounds conflict", "08:00:00", "10:00:00", "10:00:00", "12:00:00", true},
		{"disjoint", "08:00:00", "10:00:00", "10:00:01", "12:00:00", false},
		{"before", "06:00:00", "07:59:59", "08:00:00", "10:00:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Conflicts(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Conflicts(%s-%s, %s-%s) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func TestValidWindow(t *testing.T) {
	if !ValidWindow("08:00:00", "09:00:00") {
		t.Error("expected valid window")
	}
	if ValidWindow("09:00:00", "08:00:00") {
		t.Error("reversed window must be invalid")
	}
	if ValidWindow("08:00:00", "08:00:00") {
		t.Error("empty window must be invalid")
	}
	if ValidWindow("8am", "09:00:00") {
		t.Error("unparseable start must be invalid")
	}
}

func TestWeekdayNumber(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2024-01-01", 1}, // Monday
		{"2024-01-03", 3},
		{"2024-01-06", 6}, // Saturday
		{"2024-01-07", 7}, // Sunday maps to 7, not 0
	}
	for _, tt := range tests {
		if got := WeekdayNumber(date(tt.date)); got != tt.want {
			t.Errorf("WeekdayNumber(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestIsWorkday(t *testing.T) {
	for wd := 1; wd <= 5; wd++ {
		if !IsWorkday(wd) {
			t.Errorf("weekday %d should be a workday", wd)
		}
	}
	if IsWorkday(6) || IsWorkday(7) {
		t.Error("weekend weekdays must not be workdays")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	d, err := ParseTimeOfDay("08:30:00")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	if d.Minutes() != 510 {
		t.Errorf("got %v minutes, want 510", d.Minutes())
	}
	if _, err := ParseTimeOfDay("14:15"); err != nil {
		t.Errorf("HH:MM form should parse: %v", err)
	}
	if _, err := ParseTimeOfDay("25:00:00"); err == nil {
		t.Error("expected error for hour out of range")
	}
}

func TestCombine(t *testing.T) {
	tod, _ := ParseTimeOfDay("08:00:00")
	got := Combine(date("2024-01-01"), tod).Format(TimestampLayout)
	if got != "2024-01-01 08:00:00" {
		t.Errorf("Combine = %s", got)
	}
}
