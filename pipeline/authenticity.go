package pipeline

import (
	"math"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
)

// Authenticity weights. They sum to 1.
const (
	weightProportions      = 0.25
	weightMaterials        = 0.25
	weightConstruction     = 0.15
	weightAesthetics       = 0.20
	weightCulturalElements = 0.15
)

// AuthenticityBreakdown holds the component scores, each in [0,100].
type AuthenticityBreakdown struct {
	Proportions      float64 `json:"proportions"`
	Materials        float64 `json:"materials"`
	Construction     float64 `json:"construction"`
	Aesthetics       float64 `json:"aesthetics"`
	CulturalElements float64 `json:"culturalElements"`
}

// Authenticity is the weighted cultural authenticity score of a piece.
type Authenticity struct {
	Overall   float64               `json:"overall"`
	Breakdown AuthenticityBreakdown `json:"breakdown"`
}

// ScoreAuthenticity grades sanitized parameters against a cultural profile.
// A nil profile scores every component as neutral.
func ScoreAuthenticity(p parametric.Parameters, profile *culture.Profile) Authenticity {
	if profile == nil {
		b := AuthenticityBreakdown{50, 50, 50, 50, 50}
		return Authenticity{Overall: 50, Breakdown: b}
	}
	b := AuthenticityBreakdown{
		Proportions:      proportionScore(p, profile),
		Materials:        materialScore(p, profile),
		Construction:     constructionScore(p, profile),
		Aesthetics:       aestheticScore(p, profile),
		CulturalElements: elementScore(p, profile),
	}
	score := b.Proportions*weightProportions +
		b.Materials*weightMaterials +
		b.Construction*weightConstruction +
		b.Aesthetics*weightAesthetics +
		b.CulturalElements*weightCulturalElements
	return Authenticity{Overall: round1(score), Breakdown: b}
}

// proportionScore penalises distance from the culture's height band and
// footprint ratio.
func proportionScore(p parametric.Parameters, profile *culture.Profile) float64 {
	score := 100.0
	props := profile.Proportions
	switch {
	case p.Type.IsTable():
		// 每偏离 1cm 扣 2 分
		score -= 200 * props.TableHeight.Distance(p.Height)
	case p.Type.IsSeating():
		score -= 200 * props.SeatHeight.Distance(p.Height*0.53)
	}
	if props.Ratio > 0 && p.Depth > 0 && (p.Type.IsTable() || p.Type.IsSeating()) {
		deviation := math.Abs(p.Width/p.Depth-props.Ratio) / props.Ratio
		score -= 40 * math.Min(deviation, 1)
	}
	return clampScore(score)
}

func materialScore(p parametric.Parameters, profile *culture.Profile) float64 {
	rate := func(m string) float64 {
		switch {
		case profile.IsAvoided(m):
			return 0
		case profile.IsTraditional(m):
			return 100
		default:
			return 55
		}
	}
	score := rate(p.PrimaryMaterial)
	if p.SecondaryMaterial != "" {
		score = 0.7*score + 0.3*rate(p.SecondaryMaterial)
	}
	return clampScore(score)
}

func constructionScore(p parametric.Parameters, profile *culture.Profile) float64 {
	score := 60 + 20*float64(p.CraftsmanshipLevel.Rank())
	if len(profile.Craft) == 0 {
		score = math.Min(score, 80)
	}
	return clampScore(score)
}

func aestheticScore(p parametric.Parameters, profile *culture.Profile) float64 {
	score := 20.0
	if profile.FitsStyle(p.Style) {
		score = 50
	}
	if len(p.ColorPalette) > 0 && len(profile.Aesthetics.Palette) > 0 {
		shared := 0
		for _, c := range p.ColorPalette {
			for _, pc := range profile.Aesthetics.Palette {
				if c == pc {
					shared++
					break
				}
			}
		}
		score += 30 * float64(shared) / float64(len(p.ColorPalette))
	}
	score += 20 * (1 - math.Min(1, math.Abs(p.DecorativeIntensity-profile.Aesthetics.TypicalIntensity)))
	return clampScore(score)
}

func elementScore(p parametric.Parameters, profile *culture.Profile) float64 {
	if len(p.CulturalElements) == 0 {
		return 40
	}
	matches := 0
	for _, e := range p.CulturalElements {
		for _, pe := range profile.Elements {
			if e == pe {
				matches++
				break
			}
		}
	}
	return clampScore(40 + 30*float64(min(matches, 2)))
}

func clampScore(v float64) float64 {
	return round1(math.Max(0, math.Min(100, v)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
