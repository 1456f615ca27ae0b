package weather

import (
	"math"
	"sort"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
)

// BestMonths ranks calendar months for a destination with a seasonal
// comfort curve: warm-season months score highest, the hemisphere sets
// which months those are, and the swing flattens toward the equator.
// The score is deterministic per coordinate, so it needs no network
// call and no training data.
func (p *OpenMeteoProvider) BestMonths(c domain.Coordinates) []domain.MonthScore {
	scores := make([]domain.MonthScore, 0, 12)
	for month := 1; month <= 12; month++ {
		scores = append(scores, domain.MonthScore{
			Month: month,
			Score: seasonScore(month, c.Lat),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Month < scores[j].Month
	})

	return scores[:3]
}

// seasonScore returns a 0..1 comfort score for a month at a latitude.
// July peaks in the northern hemisphere, January in the southern; the
// seasonal amplitude scales with |latitude|.
func seasonScore(month int, lat float64) float64 {
	peak := 7.0
	if lat < 0 {
		peak = 1.0
	}

	amplitude := 0.45 * math.Min(math.Abs(lat)/90.0*2, 1)
	phase := 2 * math.Pi * (float64(month) - peak) / 12

	return 0.5 + amplitude*math.Cos(phase)
}
