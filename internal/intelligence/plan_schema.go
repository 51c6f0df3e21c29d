package intelligence

import "github.com/alexanderramin/woodgenie/internal/llm"

func str() *llm.Schema { return &llm.Schema{Type: "string"} }

// planSchema mirrors domain.WoodworkingPlan for providers that accept a
// response schema.
var planSchema = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"title":                str(),
		"description":          str(),
		"estimatedCost":        str(),
		"estimatedRetailPrice": str(),
		"estimatedTime":        str(),
		"overallDimensions": {
			Type: "object",
			Properties: map[string]*llm.Schema{
				"height": str(),
				"width":  str(),
				"depth":  str(),
			},
			Required: []string{"height", "width", "depth"},
		},
		"shoppingList": {Type: "array", Items: str()},
		"cutList": {
			Type: "array",
			Items: &llm.Schema{
				Type: "object",
				Properties: map[string]*llm.Schema{
					"partName":  str(),
					"quantity":  {Type: "integer"},
					"thickness": str(),
					"width":     str(),
					"length":    str(),
					"material":  str(),
					"notes":     str(),
				},
				Required: []string{"partName", "quantity", "thickness", "width", "length", "material"},
			},
		},
		"assemblySteps": {
			Type: "array",
			Items: &llm.Schema{
				Type: "object",
				Properties: map[string]*llm.Schema{
					"stepNumber":  {Type: "integer"},
					"instruction": str(),
				},
				Required: []string{"stepNumber", "instruction"},
			},
		},
	},
	Required: []string{
		"title", "description", "estimatedCost", "estimatedRetailPrice", "estimatedTime",
		"overallDimensions", "shoppingList", "cutList", "assemblySteps",
	},
}
