package dates

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		Input string
		Want  time.Time
		OK    bool
	}{
		{"05-03-2025", date(2025, time.March, 5), true},
		{"5/3/2025", date(2025, time.March, 5), true},
		{"2025-03-05", date(2025, time.March, 5), true},
		// Day-first: the first numeric token is the day, not the month.
		{"10-03-2025", date(2025, time.March, 10), true},
		{"12 March 2025", date(2025, time.March, 12), true},
		{"12th of March 2025", date(2025, time.March, 12), true},
		{"March 12, 2025", date(2025, time.March, 12), true},
		{"concert on the evening of 12 March 2025", date(2025, time.March, 12), true},
		{"road closed from 01.04.2025", date(2025, time.April, 1), true},
		{"N/A", time.Time{}, false},
		{"none", time.Time{}, false},
		{"Not Specified", time.Time{}, false},
		{"", time.Time{}, false},
		{"sometime soon", time.Time{}, false},
		{"31-02-2025", time.Time{}, false},
	} {
		got, ok := ParseDate(test.Input)
		if ok != test.OK {
			t.Errorf("ParseDate(%q) ok = %v, want %v", test.Input, ok, test.OK)
			continue
		}
		if ok && !got.Equal(test.Want) {
			t.Errorf("ParseDate(%q) = %v, want %v", test.Input, got, test.Want)
		}
	}
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		Input string
		Want  string
		OK    bool
	}{
		{"06:00 PM", "06:00 PM", true},
		{"6pm", "06:00 PM", true},
		{"18:00", "06:00 PM", true},
		{"12:00 AM", "12:00 AM", true},
		{"12:30 pm", "12:30 PM", true},
		{"starts around 8 PM local time", "08:00 PM", true},
		{"00:15", "12:15 AM", true},
		{"N/A", "", false},
		{"", "", false},
		{"evening", "", false},
		{"25:00", "", false},
	} {
		got, ok := ParseClock(test.Input)
		if ok != test.OK {
			t.Errorf("ParseClock(%q) ok = %v, want %v", test.Input, ok, test.OK)
			continue
		}
		if ok && FormatClock(got) != test.Want {
			t.Errorf("ParseClock(%q) = %q, want %q", test.Input, FormatClock(got), test.Want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	if got := FormatDate(date(2025, time.March, 5)); got != "05-03-2025" {
		t.Errorf("FormatDate = %q, want %q", got, "05-03-2025")
	}
}

func TestOverlap(t *testing.T) {
	t.Parallel()

	mar := func(d int) time.Time { return date(2025, time.March, d) }

	for _, test := range []struct {
		Name string
		A, B Range
		Want bool
	}{
		{
			Name: "contained",
			A:    Range{mar(1), mar(10)},
			B:    Range{mar(3), mar(5)},
			Want: true,
		},
		{
			Name: "touching endpoints count as overlap",
			A:    Range{mar(1), mar(5)},
			B:    Range{mar(5), mar(10)},
			Want: true,
		},
		{
			Name: "disjoint",
			A:    Range{mar(1), mar(4)},
			B:    Range{mar(5), mar(10)},
			Want: false,
		},
		{
			Name: "single-day event inside window",
			A:    Range{mar(3), mar(3)},
			B:    Range{mar(1), mar(10)},
			Want: true,
		},
		{
			Name: "single-day event outside window",
			A:    Range{mar(11), mar(11)},
			B:    Range{mar(1), mar(10)},
			Want: false,
		},
	} {
		if got := Overlap(test.A, test.B); got != test.Want {
			t.Errorf("%s: Overlap(A, B) = %v, want %v", test.Name, got, test.Want)
		}
		// Overlap is symmetric in its arguments.
		if got := Overlap(test.B, test.A); got != test.Want {
			t.Errorf("%s: Overlap(B, A) = %v, want %v", test.Name, got, test.Want)
		}
	}
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	r, ok := ParseRange("01-04-2025", "07-04-2025")
	if !ok {
		t.Fatal("ParseRange failed for valid input")
	}
	want := Range{date(2025, time.April, 1), date(2025, time.April, 7)}
	if !r.Start.Equal(want.Start) || !r.End.Equal(want.End) {
		t.Errorf("ParseRange = %+v, want %+v", r, want)
	}

	if _, ok := ParseRange("garbage", "07-04-2025"); ok {
		t.Error("ParseRange accepted a garbage start date")
	}
}
