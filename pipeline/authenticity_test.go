package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
)

func profile(t *testing.T, c parametric.Culture) *culture.Profile {
	t.Helper()
	p, ok := culture.Default().Lookup(c)
	require.True(t, ok)
	return p
}

func TestScoreAuthenticity_WeightsSumToOne(t *testing.T) {
	sum := weightProportions + weightMaterials + weightConstruction + weightAesthetics + weightCulturalElements
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestAuthenticity_JSONShape(t *testing.T) {
	got := ScoreAuthenticity(chair(), profile(t, parametric.CultureJapanese))
	raw, err := json.Marshal(got)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, got.Overall, m["overall"])
	assert.NotContains(t, m, "score")
	assert.Contains(t, m["breakdown"], "culturalElements")
}

func TestScoreAuthenticity_NilProfileIsNeutral(t *testing.T) {
	got := ScoreAuthenticity(parametric.Sanitize(parametric.Parameters{}), nil)
	assert.Equal(t, 50.0, got.Overall)
}

func TestScoreAuthenticity_RewardsCulturalFit(t *testing.T) {
	jp := profile(t, parametric.CultureJapanese)

	authentic := culture.AdjustForAuthenticity(parametric.Parameters{
		Type:                parametric.TypeChair,
		Culture:             parametric.CultureJapanese,
		Style:               parametric.StyleTraditional,
		PrimaryMaterial:     "hinoki",
		CraftsmanshipLevel:  parametric.CraftMaster,
		ColorPalette:        jp.Aesthetics.Palette,
		Height:              0.75,
		DecorativeIntensity: 0.25,
	}, jp)
	foreign := parametric.Sanitize(parametric.Parameters{
		Type:                parametric.TypeChair,
		Culture:             parametric.CultureJapanese,
		Style:               parametric.StyleOrnate,
		PrimaryMaterial:     "velvet",
		ColorPalette:        []string{"#00ff00"},
		Height:              1.2,
		DecorativeIntensity: 1,
	})

	good := ScoreAuthenticity(authentic, jp)
	bad := ScoreAuthenticity(foreign, jp)

	assert.Greater(t, good.Overall, bad.Overall)
	assert.Equal(t, 100.0, good.Breakdown.Materials)
	assert.Equal(t, 0.0, bad.Breakdown.Materials, "avoided material")
	assert.Equal(t, 100.0, good.Breakdown.Construction)
	assert.Equal(t, 100.0, good.Breakdown.CulturalElements)
	assert.Equal(t, 40.0, bad.Breakdown.CulturalElements)
}

func TestScoreAuthenticity_Bounded(t *testing.T) {
	db := culture.Default()
	rapid.Check(t, func(t *rapid.T) {
		p := parametric.Sanitize(parametric.Parameters{
			Type:                rapid.SampledFrom(parametric.FurnitureTypes).Draw(t, "type"),
			Culture:             rapid.SampledFrom(parametric.Cultures).Draw(t, "culture"),
			Width:               rapid.Float64Range(-1, 20).Draw(t, "width"),
			Height:              rapid.Float64Range(-1, 20).Draw(t, "height"),
			Depth:               rapid.Float64Range(-1, 20).Draw(t, "depth"),
			Style:               rapid.SampledFrom(parametric.Styles).Draw(t, "style"),
			PrimaryMaterial:     rapid.SampledFrom(parametric.Materials).Draw(t, "material"),
			CraftsmanshipLevel:  rapid.SampledFrom(parametric.CraftsmanshipLevels).Draw(t, "craft"),
			DecorativeIntensity: rapid.Float64Range(0, 1).Draw(t, "intensity"),
		})
		got := ScoreAuthenticity(p, culture.ProfileOrModern(db, p.Culture))
		for _, v := range []float64{
			got.Overall, got.Breakdown.Proportions, got.Breakdown.Materials,
			got.Breakdown.Construction, got.Breakdown.Aesthetics, got.Breakdown.CulturalElements,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("score %v out of range for %+v", v, p)
			}
		}
	})
}
