package mix

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"mix-service/internal/models"
)

// Catalog is the read-only product lookup validation runs against.
type Catalog interface {
	Item(code string) (models.CatalogItem, bool)
}

const (
	minNameLength = 3
	maxNameLength = 25
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9\s_]+$`)

// ValidateName checks mix name length and charset. Returns nil when the
// name is valid.
func ValidateName(name string) *RuleError {
	if len(name) < minNameLength || len(name) > maxNameLength {
		return ErrNameTooShortOrLong()
	}
	if !namePattern.MatchString(name) {
		return ErrNameInvalidCharacters()
	}
	return nil
}

// ValidateQuantity parses the raw quantity input and checks it against
// the catalog item's advisory stock. On success it returns the parsed
// quantity. Stock is never decremented here.
func ValidateQuantity(input string, productCode string, catalog Catalog) (float64, *RuleError) {
	qty, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
		return 0, ErrNotPositiveNumber()
	}

	item, ok := catalog.Item(productCode)
	if !ok {
		return 0, ErrProductNotFound()
	}

	if qty > item.Stock {
		return 0, ErrInsufficientStock(item.Stock)
	}

	return qty, nil
}

// ValidateUniqueName rejects names already taken by a saved mix,
// case-insensitively.
func ValidateUniqueName(name string, saved []models.SavedMix) *RuleError {
	for _, m := range saved {
		if strings.EqualFold(m.Name, name) {
			return ErrDuplicateName()
		}
	}
	return nil
}

// formatQuantity renders a quantity without trailing zeros, e.g. 5 and
// 2.5 rather than 5.00 and 2.50.
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
