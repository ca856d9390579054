// Package fixtures 提供测试用的请求与模型响应样例。
package fixtures

import "github.com/saleemjadallah/visualz-backend-sub003/parametric"

// BirthdayJapanese 六位客人的日式生日聚会
func BirthdayJapanese() parametric.UserFurnitureRequest {
	return parametric.UserFurnitureRequest{
		EventType:       "birthday",
		Culture:         "japanese",
		GuestCount:      6,
		SpaceDimensions: parametric.SpaceDimensions{Width: 4, Height: 3, Depth: 4},
		BudgetRange:     "medium",
		FormalityLevel:  "casual",
	}
}

// WeddingItalian 大型意式婚礼
func WeddingItalian() parametric.UserFurnitureRequest {
	return parametric.UserFurnitureRequest{
		EventType:           "wedding",
		Culture:             "italian",
		GuestCount:          120,
		SpaceDimensions:     parametric.SpaceDimensions{Width: 20, Height: 5, Depth: 15},
		BudgetRange:         "luxury",
		FormalityLevel:      "formal",
		SpecialRequirements: "wheelchair access for elderly guests",
	}
}

// ChairParameters 返回一组合法的椅子参数
func ChairParameters(c parametric.Culture) parametric.Parameters {
	return parametric.Sanitize(parametric.Parameters{
		Type:    parametric.TypeChair,
		Culture: c,
	})
}
