package domain

// dayPalette assigns a distinct marker color per trip day, wrapping
// after ten days.
var dayPalette = [][3]uint8{
	{255, 0, 0},
	{0, 0, 255},
	{0, 255, 0},
	{255, 255, 0},
	{0, 255, 255},
	{255, 0, 255},
	{255, 165, 0},
	{128, 0, 128},
	{0, 128, 0},
	{255, 192, 203},
}

// ColorIndex maps a day number to a palette slot. Day values outside
// [1, duration] are not rejected upstream, so negative and zero days
// must still land on a valid slot.
func ColorIndex(day int) int {
	i := (day - 1) % len(dayPalette)
	if i < 0 {
		i += len(dayPalette)
	}
	return i
}

// DayColor returns the RGB triple for a palette slot.
func DayColor(index int) [3]uint8 {
	if index < 0 || index >= len(dayPalette) {
		index = 0
	}
	return dayPalette[index]
}
