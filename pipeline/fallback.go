package pipeline

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/material"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/scene"
	"github.com/saleemjadallah/visualz-backend-sub003/template"
	"github.com/saleemjadallah/visualz-backend-sub003/types"
)

// PlaceholderGeometry is the deterministic stand-in for a piece whose
// template failed: one box with the piece's dimensions.
func PlaceholderGeometry(p parametric.Parameters) *scene.Geometry {
	g := scene.New("placeholder-" + string(p.Type))
	g.Add(scene.Part("placeholder", scene.Vec3{}, scene.Box(p.Width, p.Height, p.Depth, material.SlotPrimary)))
	return g
}

// fallback builds an uncached placeholder result. tpl may be nil when no
// template is registered for the type.
func (e *Engine) fallback(params parametric.Parameters, fp string, tpl template.Template, cause error) *GenerationResult {
	reason := string(types.GetErrorCode(cause))
	if reason == "" {
		reason = "unknown"
	}
	e.logger.Warn("generation fell back to placeholder",
		zap.String("type", string(params.Type)),
		zap.String("culture", string(params.Culture)),
		zap.String("fingerprint", fp),
		zap.String("reason", reason),
		zap.Error(cause))

	geom := PlaceholderGeometry(params)
	mats := e.materials.GenerateMaterials(params)
	e.materials.ApplyMaterials(geom, mats)

	var meta template.Metadata
	if tpl != nil {
		meta = safeMetadata(tpl, params)
	}
	if meta.ID == "" {
		meta = placeholderMetadata(params)
	}

	if e.metrics != nil {
		e.metrics.RecordFallback(string(params.Type), reason)
		e.metrics.RecordGeneration(string(params.Type), string(params.Culture), string(StatusFallback),
			0, geom.PolygonCount(), geom.MemoryEstimate())
	}

	return &GenerationResult{
		ID:                   uuid.NewString(),
		Fingerprint:          fp,
		Parameters:           params,
		Geometry:             geom,
		Materials:            mats,
		Metadata:             meta,
		CulturalAuthenticity: ScoreAuthenticity(params, culture.ProfileOrModern(e.db, params.Culture)),
		PerformanceMetrics: PerformanceMetrics{
			PolygonCount: geom.PolygonCount(),
			MemoryUsage:  geom.MemoryEstimate(),
		},
		Status: StatusFallback,
		Error:  cause.Error(),
	}
}

// safeMetadata asks the template for metadata; a template that already
// failed may panic again, which yields empty metadata.
func safeMetadata(tpl template.Template, p parametric.Parameters) (meta template.Metadata) {
	defer func() {
		if recover() != nil {
			meta = template.Metadata{}
		}
	}()
	return tpl.GenerateMetadata(p)
}

func placeholderMetadata(p parametric.Parameters) template.Metadata {
	mats := []string{p.PrimaryMaterial}
	if p.SecondaryMaterial != "" {
		mats = append(mats, p.SecondaryMaterial)
	}
	return template.Metadata{
		ID:               uuid.NewString(),
		Name:             "Placeholder " + string(p.Type),
		Type:             p.Type,
		Culture:          p.Culture,
		Description:      "placeholder geometry; the " + string(p.Type) + " template was unavailable",
		Dimensions:       scene.Vec3{X: p.Width, Y: p.Height, Z: p.Depth},
		Materials:        mats,
		CulturalElements: append([]string(nil), p.CulturalElements...),
		Tags:             []string{string(p.Type), string(p.Culture), "placeholder"},
		CreatedAt:        time.Now().UTC(),
	}
}
