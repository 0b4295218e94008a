package mix

import (
	"strings"
	"testing"

	"mix-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableCatalog map[string]models.CatalogItem

func (t tableCatalog) Item(code string) (models.CatalogItem, bool) {
	it, ok := t[code]
	return it, ok
}

func testCatalog() tableCatalog {
	return tableCatalog{
		"A01": {Code: "A01", Name: "Almendras Premium", RetailPrice: 10.00, Stock: 5},
		"P01": {Code: "P01", Name: "Pasas Sultan", RetailPrice: 4.50, Stock: 12.5},
	}
}

func TestValidateNameAcceptsValidNames(t *testing.T) {
	for _, name := range []string{
		"Mix",
		"Mezcla Energetica 1",
		"abc",
		"con_guiones_bajos",
		strings.Repeat("a", 25),
	} {
		assert.Nil(t, ValidateName(name), "name %q should be valid", name)
	}
}

func TestValidateNameLengthAndCharsetAreDistinguishable(t *testing.T) {
	tests := []struct {
		name string
		code RuleCode
	}{
		{"", CodeTooShortOrLong},
		{"ab", CodeTooShortOrLong},
		{strings.Repeat("a", 26), CodeTooShortOrLong},
		{"mezcla!", CodeInvalidCharacters},
		{"café con leche", CodeInvalidCharacters},
		{"mix-con-guiones", CodeInvalidCharacters},
	}

	for _, tt := range tests {
		err := ValidateName(tt.name)
		require.NotNil(t, err, "name %q should be rejected", tt.name)
		assert.Equal(t, tt.code, err.Code, "name %q", tt.name)
	}
}

func TestValidateQuantityParsesPositiveNumbers(t *testing.T) {
	qty, err := ValidateQuantity("2.5", "A01", testCatalog())
	require.Nil(t, err)
	assert.Equal(t, 2.5, qty)

	qty, err = ValidateQuantity(" 3 ", "A01", testCatalog())
	require.Nil(t, err)
	assert.Equal(t, 3.0, qty)
}

func TestValidateQuantityRejectsNonPositiveInput(t *testing.T) {
	for _, input := range []string{"", "abc", "0", "-1", "NaN", "Inf", "1e400"} {
		_, err := ValidateQuantity(input, "A01", testCatalog())
		require.NotNil(t, err, "input %q should be rejected", input)
		assert.Equal(t, CodeNotPositiveNumber, err.Code, "input %q", input)
	}
}

func TestValidateQuantityUnknownProduct(t *testing.T) {
	_, err := ValidateQuantity("1", "Z99", testCatalog())
	require.NotNil(t, err)
	assert.Equal(t, CodeProductNotFound, err.Code)
}

func TestValidateQuantityReportsExactAvailableStock(t *testing.T) {
	_, err := ValidateQuantity("6", "A01", testCatalog())
	require.NotNil(t, err)
	assert.Equal(t, CodeInsufficientStock, err.Code)
	assert.Equal(t, "Solo hay 5 libras disponibles", err.Message)

	_, err = ValidateQuantity("13", "P01", testCatalog())
	require.NotNil(t, err)
	assert.Equal(t, "Solo hay 12.5 libras disponibles", err.Message)
}

func TestValidateQuantityAtStockBoundary(t *testing.T) {
	qty, err := ValidateQuantity("5", "A01", testCatalog())
	require.Nil(t, err)
	assert.Equal(t, 5.0, qty)
}

func TestValidateUniqueNameIsCaseInsensitive(t *testing.T) {
	saved := []models.SavedMix{
		{ID: 1, Name: "Mix A"},
		{ID: 2, Name: "Energia Total"},
	}

	assert.Nil(t, ValidateUniqueName("Mix B", saved))

	err := ValidateUniqueName("mix a", saved)
	require.NotNil(t, err)
	assert.Equal(t, CodeDuplicateName, err.Code)

	err = ValidateUniqueName("ENERGIA TOTAL", saved)
	require.NotNil(t, err)
	assert.Equal(t, CodeDuplicateName, err.Code)
}
