package weather

import (
	"testing"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
)

func TestBestMonthsNorthernHemispherePeaksInSummer(t *testing.T) {
	p := NewOpenMeteoProvider()
	top := p.BestMonths(domain.Coordinates{Lat: 48.8566, Lon: 2.3522})

	if len(top) != 3 {
		t.Fatalf("len = %d, want 3", len(top))
	}
	if top[0].Month != 7 {
		t.Errorf("top month = %d, want 7", top[0].Month)
	}
	for _, m := range top {
		if m.Month < 6 || m.Month > 8 {
			t.Errorf("month %d outside summer window", m.Month)
		}
	}
}

func TestBestMonthsSouthernHemispherePeaksInJanuary(t *testing.T) {
	p := NewOpenMeteoProvider()
	top := p.BestMonths(domain.Coordinates{Lat: -33.8688, Lon: 151.2093})

	if top[0].Month != 1 {
		t.Errorf("top month = %d, want 1", top[0].Month)
	}
}

func TestSeasonScoreFlattensNearEquator(t *testing.T) {
	polarSwing := seasonScore(7, 60) - seasonScore(1, 60)
	tropicSwing := seasonScore(7, 5) - seasonScore(1, 5)

	if tropicSwing >= polarSwing {
		t.Errorf("tropic swing %f not flatter than polar swing %f", tropicSwing, polarSwing)
	}
	for _, month := range []int{1, 4, 7, 10} {
		s := seasonScore(month, 0)
		if s < 0.49 || s > 0.51 {
			t.Errorf("equator month %d score %f, want ~0.5", month, s)
		}
	}
}
