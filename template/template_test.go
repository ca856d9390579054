package template

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/scene"
	"github.com/saleemjadallah/visualz-backend-sub003/types"
)

func sanitized(t parametric.FurnitureType, c parametric.Culture) parametric.Parameters {
	return parametric.Sanitize(parametric.Parameters{Type: t, Culture: c, DecorativeIntensity: 0.5})
}

func TestDefaultRegistry_HasEveryType(t *testing.T) {
	r := DefaultRegistry(culture.Default())
	assert.Equal(t, len(parametric.FurnitureTypes), r.Len())
	for _, ft := range parametric.FurnitureTypes {
		tpl, ok := r.Get(ft)
		require.True(t, ok, ft)
		assert.Equal(t, ft, tpl.Type())
	}
	assert.Len(t, r.Types(), len(parametric.FurnitureTypes))
}

func TestNewRegistry_RejectsDuplicatesAndNil(t *testing.T) {
	_, err := NewRegistry(Chair(nil), Chair(nil))
	assert.Error(t, err)

	_, err = NewRegistry(nil)
	assert.Error(t, err)

	r, err := NewRegistry(Sofa(nil))
	require.NoError(t, err)
	_, ok := r.Get(parametric.TypeChair)
	assert.False(t, ok)
}

func TestProperty_EveryTemplateProducesGeometry(t *testing.T) {
	r := DefaultRegistry(culture.Default())
	rapid.Check(t, func(rt *rapid.T) {
		p := parametric.Sanitize(parametric.Parameters{
			Type:                rapid.SampledFrom(parametric.FurnitureTypes).Draw(rt, "type"),
			Culture:             rapid.SampledFrom(parametric.Cultures).Draw(rt, "culture"),
			Width:               rapid.Float64Range(0.05, 12).Draw(rt, "width"),
			Height:              rapid.Float64Range(0.05, 5).Draw(rt, "height"),
			Depth:               rapid.Float64Range(0.05, 12).Draw(rt, "depth"),
			Style:               parametric.Style(rapid.SampledFrom([]string{"ornate", "modern", "rustic", "minimalist"}).Draw(rt, "style")),
			SecondaryMaterial:   rapid.SampledFrom([]string{"", "linen", "brass"}).Draw(rt, "secondary"),
			ErgonomicProfile:    parametric.ErgonomicProfile(rapid.SampledFrom([]string{"standard", "petite", "tall", "accessible"}).Draw(rt, "ergo")),
			CraftsmanshipLevel:  parametric.Craftsmanship(rapid.SampledFrom([]string{"standard", "artisan", "master"}).Draw(rt, "craft")),
			DecorativeIntensity: rapid.Float64Range(0, 1).Draw(rt, "decor"),
		})
		tpl, ok := r.Get(p.Type)
		require.True(rt, ok)
		require.True(rt, tpl.ValidateParameters(p))

		g, err := tpl.GenerateGeometry(p)
		require.NoError(rt, err)
		assert.False(rt, g.IsEmpty())
		assert.Positive(rt, g.MemoryEstimate())

		meta := tpl.GenerateMetadata(p)
		assert.Positive(rt, meta.EstimatedCost)
		assert.GreaterOrEqual(rt, meta.Capacity, 1)
	})
}

func TestGenerateGeometry_RejectsUnsanitized(t *testing.T) {
	tpl := Chair(culture.Default())

	_, err := tpl.GenerateGeometry(parametric.Parameters{Type: parametric.TypeChair, Width: 9})
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrInvalidParameters))

	assert.False(t, tpl.ValidateParameters(sanitized(parametric.TypeSofa, parametric.CultureModern)))
}

func TestGenerateGeometry_CraftsmanshipRaisesDetail(t *testing.T) {
	tpl := Lighting(culture.Default())
	p := sanitized(parametric.TypeLighting, parametric.CultureItalian)

	counts := make([]int, 0, 3)
	for _, c := range []parametric.Craftsmanship{parametric.CraftStandard, parametric.CraftArtisan, parametric.CraftMaster} {
		p.CraftsmanshipLevel = c
		g, err := tpl.GenerateGeometry(p)
		require.NoError(t, err)
		counts = append(counts, g.PolygonCount())
	}
	assert.Less(t, counts[0], counts[1])
	assert.Less(t, counts[1], counts[2])
}

func TestLighting_JapaneseLanternShade(t *testing.T) {
	tpl := Lighting(culture.Default())
	g, err := tpl.GenerateGeometry(sanitized(parametric.TypeLighting, parametric.CultureJapanese))
	require.NoError(t, err)

	var shade *scene.Mesh
	g.Walk(func(n *scene.Node) {
		if n.Name == "shade" {
			shade = n.Mesh
		}
	})
	require.NotNil(t, shade)
	assert.Len(t, shade.Vertices, 24)
}

func TestChair_ArmrestsFollowCultureAndErgonomics(t *testing.T) {
	tpl := Chair(culture.Default())
	hasArms := func(p parametric.Parameters) bool {
		g, err := tpl.GenerateGeometry(p)
		require.NoError(t, err)
		found := false
		g.Walk(func(n *scene.Node) {
			if n.Name == "armrest-0" {
				found = true
			}
		})
		return found
	}

	assert.True(t, hasArms(sanitized(parametric.TypeChair, parametric.CultureItalian)))
	assert.False(t, hasArms(sanitized(parametric.TypeChair, parametric.CultureScandinavian)))

	p := sanitized(parametric.TypeChair, parametric.CultureScandinavian)
	p.ErgonomicProfile = parametric.ErgonomicAccessible
	assert.True(t, hasArms(p))
}

func TestOrnaments_ScaleWithDecoration(t *testing.T) {
	tpl := DiningTable(culture.Default())
	plain := sanitized(parametric.TypeDiningTable, parametric.CultureFrench)
	plain.DecorativeIntensity = 0

	rich := plain.Clone()
	rich.DecorativeIntensity = 1
	rich.CulturalElements = []string{"gilding"}

	gp, err := tpl.GenerateGeometry(plain)
	require.NoError(t, err)
	gr, err := tpl.GenerateGeometry(rich)
	require.NoError(t, err)
	assert.Greater(t, gr.PolygonCount(), gp.PolygonCount())
}

func TestGenerateMetadata(t *testing.T) {
	tpl := DiningTable(culture.Default())
	p := sanitized(parametric.TypeDiningTable, parametric.CultureJapanese)
	p.SecondaryMaterial = "silk"

	meta := tpl.GenerateMetadata(p)
	_, err := uuid.Parse(meta.ID)
	assert.NoError(t, err)
	assert.Equal(t, parametric.TypeDiningTable, meta.Type)
	assert.Equal(t, []string{p.PrimaryMaterial, "silk"}, meta.Materials)
	assert.Contains(t, meta.Name, "Japanese")
	assert.Contains(t, meta.Description, "ma")
	assert.NotEmpty(t, meta.CraftTechniques)
	assert.Equal(t, DefaultCapacity(p), meta.Capacity)
	assert.NotEqual(t, meta.ID, tpl.GenerateMetadata(p).ID)
}

func TestEstimateCost(t *testing.T) {
	p := sanitized(parametric.TypeChair, parametric.CultureModern)
	base := EstimateCost(100, p)

	master := p.Clone()
	master.CraftsmanshipLevel = parametric.CraftMaster
	assert.Greater(t, EstimateCost(100, master), base)

	premium := p.Clone()
	premium.PrimaryMaterial = "marble"
	assert.Greater(t, EstimateCost(100, premium), base)

	assert.GreaterOrEqual(t, EstimateCost(0, p), 1.0)
}

func TestDefaultCapacity(t *testing.T) {
	p := sanitized(parametric.TypeBench, parametric.CultureModern)
	assert.Equal(t, 2, DefaultCapacity(p))

	p = sanitized(parametric.TypeDiningTable, parametric.CultureModern)
	assert.Equal(t, 8, DefaultCapacity(p))

	p = sanitized(parametric.TypeLighting, parametric.CultureModern)
	assert.Equal(t, 1, DefaultCapacity(p))
}

func TestCulturalProportions(t *testing.T) {
	tpl := Chair(culture.Default())
	jp := tpl.CulturalProportions(parametric.CultureJapanese)
	assert.Equal(t, 0.10, jp.SeatHeight.Min)

	fallback := Chair(nil).CulturalProportions(parametric.CultureJapanese)
	assert.Equal(t, 0.42, fallback.SeatHeight.Min)
}
