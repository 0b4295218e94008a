package mix

import (
	"math"
	"sort"

	"mix-service/internal/models"
	"mix-service/internal/nutrition"
)

// FactsLookup resolves nutrition facts for a product code. Absence of
// facts means "unknown", not an error.
type FactsLookup func(code string) (nutrition.Facts, bool)

// PriceOf computes quantity × current unit price for one component. A
// missing catalog item prices at 0 rather than failing.
func PriceOf(c models.MixComponent, catalog Catalog) float64 {
	item, ok := catalog.Item(c.ProductCode)
	if !ok {
		return 0
	}
	return item.RetailPrice * c.Quantity
}

// TotalPrice sums PriceOf over all components. The result is kept
// unrounded; rounding happens at presentation time only.
func TotalPrice(components []models.MixComponent, catalog Catalog) float64 {
	var total float64
	for _, c := range components {
		total += PriceOf(c, catalog)
	}
	return total
}

// Aggregate accumulates the nutrition profile of a component list.
// Quantitative fields are scaled by component quantity and summed;
// vitamin and mineral sets are unioned and sorted. Components without
// known facts contribute nothing.
func Aggregate(components []models.MixComponent, lookup FactsLookup) models.AggregateNutrition {
	total := models.AggregateNutrition{
		Vitamins: []string{},
		Minerals: []string{},
	}
	vitamins := make(map[string]struct{})
	minerals := make(map[string]struct{})

	for _, c := range components {
		facts, ok := lookup(c.ProductCode)
		if !ok {
			continue
		}
		total.Calories += facts.Calories * c.Quantity
		total.Protein += facts.Protein * c.Quantity
		total.Fat += facts.Fat * c.Quantity
		total.Carbs += facts.Carbs * c.Quantity
		total.Fiber += facts.Fiber * c.Quantity

		for _, v := range facts.Vitamins {
			vitamins[v] = struct{}{}
		}
		for _, m := range facts.Minerals {
			minerals[m] = struct{}{}
		}
	}

	total.Vitamins = sortedKeys(vitamins)
	total.Minerals = sortedKeys(minerals)
	return total
}

// Round2 rounds a money value for display. Internal totals stay
// unrounded.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
