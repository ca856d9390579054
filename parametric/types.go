package parametric

// FurnitureType is the furniture or experience category a template generates.
type FurnitureType string

const (
	TypeChair                 FurnitureType = "chair"
	TypeBench                 FurnitureType = "bench"
	TypeSofa                  FurnitureType = "sofa"
	TypeDiningTable           FurnitureType = "dining-table"
	TypeCoffeeTable           FurnitureType = "coffee-table"
	TypeLighting              FurnitureType = "lighting"
	TypeSecuritySystem        FurnitureType = "security-system"
	TypeInteractiveExperience FurnitureType = "interactive-experience"
)

// FurnitureTypes lists every recognized type in a stable order.
var FurnitureTypes = []FurnitureType{
	TypeChair, TypeBench, TypeSofa, TypeDiningTable, TypeCoffeeTable,
	TypeLighting, TypeSecuritySystem, TypeInteractiveExperience,
}

// IsSeating reports whether the type is something guests sit on.
func (t FurnitureType) IsSeating() bool {
	return t == TypeChair || t == TypeBench || t == TypeSofa
}

// IsTable reports whether the type is a table surface.
func (t FurnitureType) IsTable() bool {
	return t == TypeDiningTable || t == TypeCoffeeTable
}

// Culture identifies a cultural design tradition.
type Culture string

const (
	CultureJapanese     Culture = "japanese"
	CultureScandinavian Culture = "scandinavian"
	CultureItalian      Culture = "italian"
	CultureFrench       Culture = "french"
	CultureMexican      Culture = "mexican"
	CultureModern       Culture = "modern"
)

// Cultures lists every recognized culture.
var Cultures = []Culture{
	CultureJapanese, CultureScandinavian, CultureItalian,
	CultureFrench, CultureMexican, CultureModern,
}

// Style is the overall design language.
type Style string

const (
	StyleTraditional  Style = "traditional"
	StyleModern       Style = "modern"
	StyleContemporary Style = "contemporary"
	StyleMinimalist   Style = "minimalist"
	StyleRustic       Style = "rustic"
	StyleOrnate       Style = "ornate"
	StyleFusion       Style = "fusion"
)

// Styles lists every recognized style.
var Styles = []Style{
	StyleTraditional, StyleModern, StyleContemporary, StyleMinimalist,
	StyleRustic, StyleOrnate, StyleFusion,
}

// Formality describes how formal the occasion is.
type Formality string

const (
	FormalityCasual     Formality = "casual"
	FormalitySemiFormal Formality = "semi-formal"
	FormalityFormal     Formality = "formal"
	FormalityCeremonial Formality = "ceremonial"
)

// Formalities lists every formality level.
var Formalities = []Formality{
	FormalityCasual, FormalitySemiFormal, FormalityFormal, FormalityCeremonial,
}

// ErgonomicProfile selects body-size and accessibility adjustments.
type ErgonomicProfile string

const (
	ErgonomicStandard   ErgonomicProfile = "standard"
	ErgonomicPetite     ErgonomicProfile = "petite"
	ErgonomicTall       ErgonomicProfile = "tall"
	ErgonomicAccessible ErgonomicProfile = "accessible"
)

// ErgonomicProfiles lists every ergonomic profile.
var ErgonomicProfiles = []ErgonomicProfile{
	ErgonomicStandard, ErgonomicPetite, ErgonomicTall, ErgonomicAccessible,
}

// Craftsmanship is the build quality tier.
type Craftsmanship string

const (
	CraftStandard Craftsmanship = "standard"
	CraftArtisan  Craftsmanship = "artisan"
	CraftMaster   Craftsmanship = "master"
)

// CraftsmanshipLevels lists the craftsmanship tiers, lowest first.
var CraftsmanshipLevels = []Craftsmanship{CraftStandard, CraftArtisan, CraftMaster}

// Rank orders craftsmanship levels from 0 (standard) to 2 (master).
func (c Craftsmanship) Rank() int {
	switch c {
	case CraftArtisan:
		return 1
	case CraftMaster:
		return 2
	default:
		return 0
	}
}

// Parameters is the canonical, fully specified description of one artifact.
// Values produced by Sanitize satisfy every range and closed-set constraint.
type Parameters struct {
	Type                FurnitureType    `json:"type"`
	Culture             Culture          `json:"culture"`
	Width               float64          `json:"width"`
	Height              float64          `json:"height"`
	Depth               float64          `json:"depth"`
	Style               Style            `json:"style"`
	Formality           Formality        `json:"formality"`
	PrimaryMaterial     string           `json:"primaryMaterial"`
	SecondaryMaterial   string           `json:"secondaryMaterial,omitempty"`
	CulturalElements    []string         `json:"culturalElements"`
	Capacity            *int             `json:"capacity,omitempty"`
	ErgonomicProfile    ErgonomicProfile `json:"ergonomicProfile"`
	ColorPalette        []string         `json:"colorPalette"`
	DecorativeIntensity float64          `json:"decorativeIntensity"`
	CraftsmanshipLevel  Craftsmanship    `json:"craftsmanshipLevel"`
}

// Clone returns a deep copy.
func (p Parameters) Clone() Parameters {
	out := p
	if p.CulturalElements != nil {
		out.CulturalElements = append([]string(nil), p.CulturalElements...)
	}
	if p.ColorPalette != nil {
		out.ColorPalette = append([]string(nil), p.ColorPalette...)
	}
	if p.Capacity != nil {
		c := *p.Capacity
		out.Capacity = &c
	}
	return out
}

// Key returns the "<type>-<culture>" grouping key used by performance history.
func (p Parameters) Key() string {
	return string(p.Type) + "-" + string(p.Culture)
}

// IntPtr is a convenience for optional capacity values.
func IntPtr(v int) *int { return &v }
