package domain

import "testing"

func TestColorIndexWrapsAndToleratesOutOfRangeDays(t *testing.T) {
	cases := map[int]int{
		1:   0,
		10:  9,
		11:  0,
		0:   9,
		-3:  6,
		25:  4,
	}
	for day, want := range cases {
		if got := ColorIndex(day); got != want {
			t.Errorf("ColorIndex(%d) = %d, want %d", day, got, want)
		}
	}
}

func TestDayColorClampsInvalidIndex(t *testing.T) {
	if DayColor(-1) != dayPalette[0] || DayColor(99) != dayPalette[0] {
		t.Error("out-of-range index should fall back to the first color")
	}
	if DayColor(3) != [3]uint8{255, 255, 0} {
		t.Errorf("DayColor(3) = %v", DayColor(3))
	}
}
