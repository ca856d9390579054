package culture

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
)

// =============================================================================
// Embedded Profiles
// =============================================================================

//go:embed profiles.yaml
var embeddedProfiles []byte

// Database 提供文化档案的只读查询。
type Database interface {
	Lookup(c parametric.Culture) (*Profile, bool)
	Cultures() []parametric.Culture
}

// StaticDatabase is an immutable, in-memory Database.
type StaticDatabase struct {
	profiles map[parametric.Culture]*Profile
}

// Load parses a YAML list of profiles. Every culture must be recognized and
// appear at most once.
func Load(data []byte) (*StaticDatabase, error) {
	var list []*Profile
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse cultural profiles: %w", err)
	}
	return New(list...)
}

// New builds a database from profiles.
func New(profiles ...*Profile) (*StaticDatabase, error) {
	db := &StaticDatabase{profiles: make(map[parametric.Culture]*Profile, len(profiles))}
	for _, p := range profiles {
		if p == nil {
			continue
		}
		c := parametric.NormalizeCulture(string(p.Culture))
		if string(c) != string(p.Culture) {
			return nil, fmt.Errorf("unknown culture %q", p.Culture)
		}
		if _, dup := db.profiles[c]; dup {
			return nil, fmt.Errorf("duplicate profile for culture %q", c)
		}
		if err := validateProfile(p); err != nil {
			return nil, fmt.Errorf("profile %q: %w", c, err)
		}
		db.profiles[c] = p
	}
	return db, nil
}

func validateProfile(p *Profile) error {
	groups := [][]string{p.Materials.Preferred, p.Materials.Traditional, p.Materials.Avoided, p.Materials.Seasonal}
	for _, g := range groups {
		for _, m := range g {
			if !parametric.IsKnownMaterial(m) {
				return fmt.Errorf("unknown material %q", m)
			}
		}
	}
	if len(p.Materials.Preferred) == 0 {
		return fmt.Errorf("no preferred materials")
	}
	if p.Proportions.SeatHeight.Min > p.Proportions.SeatHeight.Max ||
		p.Proportions.TableHeight.Min > p.Proportions.TableHeight.Max {
		return fmt.Errorf("inverted height range")
	}
	if p.Proportions.Mass <= 0 {
		p.Proportions.Mass = 1
	}
	if p.Proportions.Ratio <= 0 {
		p.Proportions.Ratio = 1.6
	}
	return nil
}

// Lookup returns the profile of a culture.
func (db *StaticDatabase) Lookup(c parametric.Culture) (*Profile, bool) {
	p, ok := db.profiles[c]
	return p, ok
}

// Cultures lists the cultures with a profile, sorted.
func (db *StaticDatabase) Cultures() []parametric.Culture {
	out := make([]parametric.Culture, 0, len(db.profiles))
	for c := range db.profiles {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var (
	defaultOnce sync.Once
	defaultDB   *StaticDatabase
)

// Default returns the database built from the embedded profiles.
func Default() *StaticDatabase {
	defaultOnce.Do(func() {
		db, err := Load(embeddedProfiles)
		if err != nil {
			panic(fmt.Sprintf("culture: embedded profiles: %v", err))
		}
		defaultDB = db
	})
	return defaultDB
}

// ProfileOrModern looks c up and falls back to the modern profile, then to
// an empty profile, so callers always get something to read.
func ProfileOrModern(db Database, c parametric.Culture) *Profile {
	if db != nil {
		if p, ok := db.Lookup(c); ok {
			return p
		}
		if p, ok := db.Lookup(parametric.CultureModern); ok {
			return p
		}
	}
	return &Profile{
		Culture:     c,
		Proportions: Proportions{SeatHeight: FloatRange{0.42, 0.48}, TableHeight: FloatRange{0.72, 0.76}, Mass: 1, Ratio: 1.6},
		Materials:   Materials{Preferred: []string{parametric.DefaultMaterial(parametric.TypeChair, c)}},
		Aesthetics:  Aesthetics{Palette: parametric.DefaultPalette(c), TypicalIntensity: 0.5},
	}
}
