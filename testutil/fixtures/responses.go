package fixtures

// AnalysisResponse 是一段包裹在代码块里的合法分析响应
const AnalysisResponse = "Here is the plan:\n```json\n" + `{
  "furniture_pieces": [
    {
      "type": "table",
      "quantity": 1,
      "priority": "essential",
      "parameters": {"width": "1.8", "primary_material": "hinoki", "style": "traditional", "cultural_elements": "kumiko lattice", "capacity": 6},
      "cultural_reasoning": "hinoki is the classic choice",
      "functional_reasoning": "one table for six"
    },
    {
      "type": "chair",
      "quantity": 6,
      "priority": "essential",
      "parameters": {"style": "baroque", "height": 9, "decorativeIntensity": 3}
    },
    {
      "type": "spaceship",
      "quantity": 1
    }
  ],
  "overall_theme": "quiet celebration",
  "cultural_authenticity_notes": ["ma", "wabi-sabi"],
  "space_utilization": "table centered",
  "budget_considerations": "medium"
}` + "\n```"

// MissingPiecesResponse 缺少 furniture_pieces
const MissingPiecesResponse = `{"overall_theme": "nothing"}`

// NotJSONResponse 不是 JSON
const NotJSONResponse = "I'm sorry, I cannot help with that."

// OptimizationResponse 返回 snake_case 的覆盖参数
const OptimizationResponse = `{"parameters": {"width": 0.5, "primary_material": "bamboo", "type": "sofa"}}`
