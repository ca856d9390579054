package parametric

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/saleemjadallah/visualz-backend-sub003/internal/pool"
)

// Fingerprint derives the cache key of a parameter set. The parameters are
// sanitized first and rendered as a JSON object with sorted keys, so two
// semantically identical inputs hash identically regardless of how they were
// built. Only schema fields take part; nothing volatile or derived does.
func Fingerprint(p Parameters) string {
	s := Sanitize(p)

	var capacity any
	if s.Capacity != nil {
		capacity = *s.Capacity
	}
	canon := map[string]any{
		"type":                s.Type,
		"culture":             s.Culture,
		"width":               formatFloat(s.Width),
		"height":              formatFloat(s.Height),
		"depth":               formatFloat(s.Depth),
		"style":               s.Style,
		"formality":           s.Formality,
		"primaryMaterial":     s.PrimaryMaterial,
		"secondaryMaterial":   s.SecondaryMaterial,
		"culturalElements":    s.CulturalElements,
		"capacity":            capacity,
		"ergonomicProfile":    s.ErgonomicProfile,
		"colorPalette":        s.ColorPalette,
		"decorativeIntensity": formatFloat(s.DecorativeIntensity),
		"craftsmanshipLevel":  s.CraftsmanshipLevel,
	}

	buf := pool.ByteBufferPool.Get()
	defer pool.ByteBufferPool.Put(buf)

	// encoding/json writes map keys in sorted order
	var data []byte
	if err := json.NewEncoder(buf).Encode(canon); err != nil {
		data = []byte(s.Key())
	} else {
		data = bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	}
	hash := sha256.Sum256(data)
	return "fp:" + hex.EncodeToString(hash[:16])
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
