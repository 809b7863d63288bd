package e

import "fmt"

var (
	// Ошибки выбора товара
	ErrNotFound      = fmt.Errorf("not found")
	ErrOutOfStock    = fmt.Errorf("out of stock")
	ErrOutOfRange    = fmt.Errorf("out of range")
	ErrExitRequested = fmt.Errorf("exit requested")

	// Ошибки транзакции
	ErrInvalidQuantity     = fmt.Errorf("invalid quantity")
	ErrInsufficientFunds   = fmt.Errorf("insufficient funds")
	ErrIllegalTransition   = fmt.Errorf("illegal transaction state transition")
	ErrTransactionFinished = fmt.Errorf("transaction already finished")

	// Ошибки ввода
	ErrMalformedInput  = fmt.Errorf("malformed input")
	ErrInvalidAmount   = fmt.Errorf("invalid amount")
	ErrAmountPrecision = fmt.Errorf("amount must have at most 2 decimal places")

	// Ошибки каталога
	ErrInvalidCatalog    = fmt.Errorf("invalid catalog")
	ErrDuplicateCategory = fmt.Errorf("duplicate category")
	ErrDuplicateItemCode = fmt.Errorf("duplicate item code")
	ErrNegativePrice     = fmt.Errorf("price must not be negative")
	ErrPricePrecision    = fmt.Errorf("price must have at most 2 decimal places")
	ErrNegativeStock     = fmt.Errorf("stock must not be negative")
	ErrEmptyName         = fmt.Errorf("name is required")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
