package material

import (
	"strings"

	"go.uber.org/zap"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/internal/cache"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/scene"
)

// Mesh slot names understood by ApplyMaterials.
const (
	SlotPrimary   = "primary"
	SlotSecondary = "secondary"
	SlotAccent    = "accent"
)

// DefaultCacheSize bounds the material cache when no size is configured.
const DefaultCacheSize = 256

// Material is a surface definition resolved for one culture and palette.
type Material struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	Color          string   `json:"color"`
	Roughness      float64  `json:"roughness"`
	Metalness      float64  `json:"metalness"`
	Finish         string   `json:"finish"`
	Slot           string   `json:"slot,omitempty"`
	CostMultiplier float64  `json:"costMultiplier"`
	Premium        bool     `json:"premium"`
	Traditional    bool     `json:"traditional"`
}

// System resolves and caches materials.
type System struct {
	db     culture.Database
	cache  *cache.LRU[string, Material]
	logger *zap.Logger
}

// NewSystem creates a material system whose cache holds at most cacheSize
// entries.
func NewSystem(db culture.Database, cacheSize int, logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &System{
		db:     db,
		cache:  cache.NewLRU[string, Material](cacheSize, 0),
		logger: logger.With(zap.String("component", "material_system")),
	}
}

// GetMaterial resolves a material type for the given parameters. Results are
// cached by type, culture, palette and craftsmanship. Unknown types resolve
// to the neutral material.
func (s *System) GetMaterial(materialType string, p parametric.Parameters) Material {
	key := cacheKey(materialType, p)
	if m, ok := s.cache.Get(key); ok {
		return m
	}
	m := s.resolve(materialType, p)
	s.cache.Set(key, m)
	return m
}

// GenerateMaterials returns the primary material and, when set, the secondary.
func (s *System) GenerateMaterials(p parametric.Parameters) []Material {
	primary := s.GetMaterial(p.PrimaryMaterial, p)
	primary.Slot = SlotPrimary
	out := []Material{primary}
	if p.SecondaryMaterial != "" {
		secondary := s.GetMaterial(p.SecondaryMaterial, p)
		secondary.Slot = SlotSecondary
		out = append(out, secondary)
	}
	return out
}

// ApplyMaterials assigns material IDs to every mesh by slot. Secondary and
// accent meshes fall back to the primary material when no secondary exists.
func (s *System) ApplyMaterials(g *scene.Geometry, materials []Material) {
	if g == nil || len(materials) == 0 {
		return
	}
	primary := materials[0].ID
	secondary := primary
	if len(materials) > 1 {
		secondary = materials[1].ID
	}
	for _, m := range g.Meshes() {
		switch m.Slot {
		case SlotSecondary, SlotAccent:
			m.MaterialID = secondary
		default:
			m.MaterialID = primary
		}
	}
}

// ClearMaterialCache empties the material cache.
func (s *System) ClearMaterialCache() {
	s.cache.Clear()
}

// CacheSize is the number of cached materials.
func (s *System) CacheSize() int {
	return s.cache.Len()
}

func (s *System) resolve(materialType string, p parametric.Parameters) Material {
	def, ok := Lookup(materialType)
	if !ok {
		s.logger.Debug("unknown material type, using neutral default",
			zap.String("material", materialType),
			zap.String("culture", string(p.Culture)),
		)
		def = Neutral
	}

	profile := culture.ProfileOrModern(s.db, p.Culture)
	color := def.BaseColor
	if def.dyeable() && len(p.ColorPalette) > 0 {
		color = p.ColorPalette[0]
	}

	rank := float64(p.CraftsmanshipLevel.Rank())
	return Material{
		ID:             materialID(def.ID, p, color),
		Type:           def.ID,
		Name:           def.Name,
		Category:       def.Category,
		Color:          color,
		Roughness:      clamp01(def.Roughness - 0.05*rank),
		Metalness:      def.Metalness,
		Finish:         finish(def.Category, p.CraftsmanshipLevel),
		CostMultiplier: def.CostMultiplier * (1 + 0.25*rank),
		Premium:        def.Premium,
		Traditional:    ok && profile.IsTraditional(def.ID),
	}
}

func finish(c Category, craft parametric.Craftsmanship) string {
	switch c {
	case CategoryWood, CategoryFiber:
		switch craft {
		case parametric.CraftMaster:
			return "hand-rubbed oil"
		case parametric.CraftArtisan:
			return "oiled"
		}
		return "lacquered"
	case CategoryMetal:
		if craft == parametric.CraftStandard {
			return "powder-coated"
		}
		return "brushed"
	case CategoryStone, CategoryCeramic, CategoryGlass:
		return "polished"
	}
	if craft == parametric.CraftMaster {
		return "hand-finished"
	}
	return "natural"
}

func cacheKey(materialType string, p parametric.Parameters) string {
	return strings.Join([]string{
		materialType,
		string(p.Culture),
		strings.Join(p.ColorPalette, ","),
		string(p.CraftsmanshipLevel),
	}, "|")
}

func materialID(id string, p parametric.Parameters, color string) string {
	return id + ":" + string(p.Culture) + ":" + string(p.CraftsmanshipLevel) + ":" + strings.TrimPrefix(color, "#")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
