package analyzer

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/types"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// extractJSON 从模型输出中提取 JSON：优先代码块，其次最外层花括号
func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.Contains(response, "```") {
		if m := fencedJSON.FindStringSubmatch(response); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		return response[start : end+1]
	}
	return response
}

func decodeObject(raw string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &obj); err != nil {
		return nil, types.NewError(types.ErrAIInvalidResponse, "response is not a JSON object").WithCause(err)
	}
	if obj == nil {
		return nil, types.NewError(types.ErrAIInvalidResponse, "response is null")
	}
	return obj, nil
}

// parseAnalysis turns raw model output into a sanitized Analysis. Pieces
// with an unrecognized type or a non-object shape are dropped; the request
// supplies culture and formality when a piece omits them.
func parseAnalysis(raw string, req parametric.UserFurnitureRequest) (*Analysis, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	list, ok := firstPresent(obj, "furniture_pieces", "furniturePieces").([]any)
	if !ok || len(list) == 0 {
		return nil, types.NewError(types.ErrAIInvalidResponse, "furniture_pieces missing or empty")
	}

	out := &Analysis{
		OverallTheme:              textField(obj, "overall_theme", "overallTheme"),
		CulturalAuthenticityNotes: textField(obj, "cultural_authenticity_notes", "culturalAuthenticityNotes"),
		SpaceUtilization:          textField(obj, "space_utilization", "spaceUtilization"),
		BudgetConsiderations:      textField(obj, "budget_considerations", "budgetConsiderations"),
		Source:                    SourceAI,
	}

	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		piece, ok := parsePiece(entry, req)
		if !ok {
			continue
		}
		out.Pieces = append(out.Pieces, piece)
	}
	if len(out.Pieces) == 0 {
		return nil, types.NewError(types.ErrAIInvalidResponse, "no usable furniture pieces")
	}
	return out, nil
}

func parsePiece(entry map[string]any, req parametric.UserFurnitureRequest) (Piece, bool) {
	params, _ := entry["parameters"].(map[string]any)
	merged := make(map[string]any, len(params)+3)
	for k, v := range params {
		merged[k] = v
	}

	typeName := textField(entry, "type")
	if typeName == "" {
		typeName = textField(merged, "type", "furniture_type", "furnitureType")
	}
	t, ok := parametric.ParseType(typeName)
	if !ok {
		return Piece{}, false
	}
	merged["type"] = string(t)
	if firstPresent(merged, "culture") == nil {
		merged["culture"] = req.Culture
	}
	if firstPresent(merged, "formality", "formality_level", "formalityLevel") == nil {
		merged["formality"] = req.FormalityLevel
	}

	return Piece{
		Type:                t,
		Quantity:            quantityField(entry),
		Priority:            priorityField(entry),
		Parameters:          parametric.SanitizeMap(merged),
		CulturalReasoning:   textField(entry, "cultural_reasoning", "culturalReasoning"),
		FunctionalReasoning: textField(entry, "functional_reasoning", "functionalReasoning"),
	}, true
}

// parseOverrides decodes an optimization response into camelCase parameter
// overrides. A top-level "parameters" object is unwrapped.
func parseOverrides(raw string) (map[string]any, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	if inner, ok := obj["parameters"].(map[string]any); ok {
		obj = inner
	}
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[parametric.CanonicalKey(k)] = v
	}
	return out, nil
}

func firstPresent(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func textField(obj map[string]any, keys ...string) string {
	switch v := firstPresent(obj, keys...).(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

func quantityField(entry map[string]any) int {
	var f float64
	switch v := firstPresent(entry, "quantity").(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return MinQuantity
		}
		f = parsed
	default:
		return MinQuantity
	}
	if math.IsNaN(f) {
		return MinQuantity
	}
	return clampQuantity(int(math.Round(math.Max(math.Min(f, MaxQuantity), MinQuantity))))
}

func priorityField(entry map[string]any) Priority {
	s := strings.ToLower(textField(entry, "priority"))
	for _, p := range priorities {
		if string(p) == s {
			return p
		}
	}
	return PriorityRecommended
}

func clampQuantity(n int) int {
	if n < MinQuantity {
		return MinQuantity
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}
