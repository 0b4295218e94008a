package mix

import (
	"errors"
	"fmt"

	"mix-service/internal/models"
)

// RuleCode identifies a user-recoverable validation failure.
type RuleCode string

const (
	CodeMissingProduct    RuleCode = "MISSING_PRODUCT"
	CodeDuplicateProduct  RuleCode = "DUPLICATE_PRODUCT"
	CodeNotPositiveNumber RuleCode = "NOT_POSITIVE_NUMBER"
	CodeProductNotFound   RuleCode = "PRODUCT_NOT_FOUND"
	CodeInsufficientStock RuleCode = "INSUFFICIENT_STOCK"
	CodeTooShortOrLong    RuleCode = "TOO_SHORT_OR_LONG"
	CodeInvalidCharacters RuleCode = "INVALID_CHARACTERS"
	CodeDuplicateName     RuleCode = "DUPLICATE_NAME"
	CodeEmptyMix          RuleCode = "EMPTY_MIX"
)

// RuleError is a validation failure presented to the user. It never
// terminates the session; the message and dialog copy are prescribed by
// the product and stay in Spanish.
type RuleError struct {
	Code    RuleCode
	Icon    models.Icon
	Title   string
	Message string
	Button  string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Notification renders the rule failure as a dialog request.
func (e *RuleError) Notification() models.Notification {
	return models.Notification{
		Icon:              e.Icon,
		Title:             e.Title,
		Text:              e.Message,
		ConfirmButtonText: e.Button,
	}
}

// AsRuleError unwraps err into a RuleError if it is one.
func AsRuleError(err error) (*RuleError, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

func ErrMissingProduct() *RuleError {
	return &RuleError{
		Code:    CodeMissingProduct,
		Icon:    models.IconWarning,
		Title:   "Producto requerido",
		Message: "Por favor selecciona un producto",
		Button:  "Entendido",
	}
}

func ErrDuplicateProduct() *RuleError {
	return &RuleError{
		Code:    CodeDuplicateProduct,
		Icon:    models.IconWarning,
		Title:   "Producto ya agregado",
		Message: "Este producto ya está en la mezcla. Puedes modificar su cantidad.",
		Button:  "Entendido",
	}
}

func ErrNotPositiveNumber() *RuleError {
	return &RuleError{
		Code:    CodeNotPositiveNumber,
		Icon:    models.IconError,
		Title:   "Cantidad inválida",
		Message: "La cantidad debe ser un número positivo",
		Button:  "Corregir",
	}
}

func ErrProductNotFound() *RuleError {
	return &RuleError{
		Code:    CodeProductNotFound,
		Icon:    models.IconError,
		Title:   "Cantidad inválida",
		Message: "Producto no encontrado",
		Button:  "Corregir",
	}
}

// ErrInsufficientStock reports the exact available amount.
func ErrInsufficientStock(available float64) *RuleError {
	return &RuleError{
		Code:    CodeInsufficientStock,
		Icon:    models.IconError,
		Title:   "Cantidad inválida",
		Message: fmt.Sprintf("Solo hay %s libras disponibles", formatQuantity(available)),
		Button:  "Corregir",
	}
}

func ErrNameTooShortOrLong() *RuleError {
	return &RuleError{
		Code:    CodeTooShortOrLong,
		Icon:    models.IconError,
		Title:   "Nombre inválido",
		Message: "El nombre debe tener entre 3 y 25 caracteres",
		Button:  "Corregir",
	}
}

func ErrNameInvalidCharacters() *RuleError {
	return &RuleError{
		Code:    CodeInvalidCharacters,
		Icon:    models.IconError,
		Title:   "Nombre inválido",
		Message: "Solo se permiten caracteres alfanuméricos, espacios y guiones bajos",
		Button:  "Corregir",
	}
}

func ErrDuplicateName() *RuleError {
	return &RuleError{
		Code:    CodeDuplicateName,
		Icon:    models.IconWarning,
		Title:   "Nombre duplicado",
		Message: "Ya existe una mezcla con este nombre. Elige un nombre diferente.",
		Button:  "Entendido",
	}
}

// ErrEmptyMix takes the action verb: guardar la mezcla, crear un pedido.
func ErrEmptyMix(action string) *RuleError {
	return &RuleError{
		Code:    CodeEmptyMix,
		Icon:    models.IconWarning,
		Title:   "Mezcla vacía",
		Message: fmt.Sprintf("Agrega al menos un producto para %s", action),
		Button:  "Entendido",
	}
}
