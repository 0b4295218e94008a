package mix

import (
	"testing"

	"mix-service/internal/models"
	"mix-service/internal/nutrition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceOfMissingCatalogItemIsZero(t *testing.T) {
	c := models.MixComponent{ProductCode: "Z99", Quantity: 3}
	assert.Equal(t, 0.0, PriceOf(c, testCatalog()))
}

func TestTotalPriceIsLiteralSum(t *testing.T) {
	components := []models.MixComponent{
		{ProductCode: "A01", Quantity: 3},
		{ProductCode: "P01", Quantity: 2},
	}

	total := TotalPrice(components, testCatalog())
	assert.InDelta(t, 3*10.00+2*4.50, total, 1e-9)
}

func TestTotalPriceIsPermutationInvariant(t *testing.T) {
	a := []models.MixComponent{
		{ProductCode: "A01", Quantity: 1.5},
		{ProductCode: "P01", Quantity: 2.25},
	}
	b := []models.MixComponent{a[1], a[0]}

	assert.Equal(t, TotalPrice(a, testCatalog()), TotalPrice(b, testCatalog()))
}

func TestAggregateSingleComponentScalesByQuantity(t *testing.T) {
	facts, ok := nutrition.Lookup("A01")
	require.True(t, ok)

	qty := 2.5
	got := Aggregate([]models.MixComponent{
		{ProductCode: "A01", Quantity: qty},
	}, nutrition.Lookup)

	assert.InDelta(t, facts.Calories*qty, got.Calories, 1e-9)
	assert.InDelta(t, facts.Protein*qty, got.Protein, 1e-9)
	assert.InDelta(t, facts.Fat*qty, got.Fat, 1e-9)
	assert.InDelta(t, facts.Carbs*qty, got.Carbs, 1e-9)
	assert.InDelta(t, facts.Fiber*qty, got.Fiber, 1e-9)
	assert.ElementsMatch(t, facts.Vitamins, got.Vitamins)
	assert.ElementsMatch(t, facts.Minerals, got.Minerals)
}

func TestAggregateIsDeterministicAcrossComponentOrder(t *testing.T) {
	a := []models.MixComponent{
		{ProductCode: "A01", Quantity: 1},
		{ProductCode: "N01", Quantity: 2},
		{ProductCode: "P01", Quantity: 0.5},
	}
	b := []models.MixComponent{a[2], a[0], a[1]}

	assert.Equal(t, Aggregate(a, nutrition.Lookup), Aggregate(b, nutrition.Lookup))
}

func TestAggregateUnionsQualitativeSets(t *testing.T) {
	got := Aggregate([]models.MixComponent{
		{ProductCode: "A01", Quantity: 1},
		{ProductCode: "N01", Quantity: 1},
	}, nutrition.Lookup)

	// A01 and N01 share vitamin E; the union holds it once.
	assert.ElementsMatch(t, []string{"E", "B2", "Niacina", "B6", "Folato"}, got.Vitamins)
	assert.ElementsMatch(t, []string{"Magnesio", "Calcio", "Hierro", "Manganeso", "Cobre"}, got.Minerals)
}

func TestAggregateUnknownProductContributesNothing(t *testing.T) {
	got := Aggregate([]models.MixComponent{
		{ProductCode: "Z99", Quantity: 10},
	}, nutrition.Lookup)

	assert.Zero(t, got.Calories)
	assert.Empty(t, got.Vitamins)
	assert.Empty(t, got.Minerals)
}

func TestAggregateEmptyList(t *testing.T) {
	got := Aggregate(nil, nutrition.Lookup)
	assert.Zero(t, got.Calories)
	assert.NotNil(t, got.Vitamins)
	assert.NotNil(t, got.Minerals)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 30.0, Round2(30.000000001))
	assert.Equal(t, 12.35, Round2(12.346))
	assert.Equal(t, 0.1, Round2(0.1))
}
