// Package nutrition holds the static per-product nutrition facts table.
package nutrition

// Facts describes the nutrition profile of one pound of a product.
// Macronutrients are in grams, calories in kcal.
type Facts struct {
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Fat      float64  `json:"fat"`
	Carbs    float64  `json:"carbs"`
	Fiber    float64  `json:"fiber"`
	Vitamins []string `json:"vitamins"`
	Minerals []string `json:"minerals"`
}

var table = map[string]Facts{
	"A01": { // Almendras Premium
		Calories: 579,
		Protein:  21.2,
		Fat:      49.9,
		Carbs:    21.6,
		Fiber:    12.5,
		Vitamins: []string{"E", "B2", "Niacina"},
		Minerals: []string{"Magnesio", "Calcio", "Hierro"},
	},
	"N01": { // Nueces de Castilla
		Calories: 654,
		Protein:  15.2,
		Fat:      65.2,
		Carbs:    13.7,
		Fiber:    6.7,
		Vitamins: []string{"E", "B6", "Folato"},
		Minerals: []string{"Manganeso", "Cobre", "Magnesio"},
	},
	"P01": { // Pasas Sultan
		Calories: 299,
		Protein:  3.1,
		Fat:      0.5,
		Carbs:    79.2,
		Fiber:    3.7,
		Vitamins: []string{"K", "B6", "Tiamina"},
		Minerals: []string{"Potasio", "Hierro", "Manganeso"},
	},
	"P02": { // Pistachos Tostados
		Calories: 560,
		Protein:  20.2,
		Fat:      45.3,
		Carbs:    27.2,
		Fiber:    10.6,
		Vitamins: []string{"B6", "Tiamina", "E"},
		Minerals: []string{"Cobre", "Manganeso", "Fósforo"},
	},
	"A02": { // Avellanas Enteras
		Calories: 628,
		Protein:  14.9,
		Fat:      60.8,
		Carbs:    16.7,
		Fiber:    9.7,
		Vitamins: []string{"E", "B6", "Folato"},
		Minerals: []string{"Manganeso", "Cobre", "Magnesio"},
	},
}

// Lookup returns the facts for a product code. The second return is
// false when no facts are known for the code.
func Lookup(code string) (Facts, bool) {
	f, ok := table[code]
	return f, ok
}
