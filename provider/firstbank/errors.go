package firstbank

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRow is returned when the rate table does not have the expected shape
	ErrMalformedRow = errors.New("malformed rate table row")

	// ErrNumericParse is returned when a price cell is neither a placeholder nor a number
	ErrNumericParse = errors.New("unable to parse price")

	// ErrMissingQuote is returned when a currency has no usable spot or cash quote
	ErrMissingQuote = errors.New("missing quote")

	// ErrDivisionByZero is returned when a currency's mid price is zero
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUnsupportedCurrency is returned when the requested currency is not quoted
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// UnsupportedCurrencyError is returned by GetRates when the requested
// currency is neither the anchor nor present in the published table
type UnsupportedCurrencyError struct {
	Code string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf(
		"the First Bank exchange rate provider can only be used when the primary "+
			"exchange rate currency is supported by First Bank (%q is not)",
		e.Code,
	)
}

func (e *UnsupportedCurrencyError) Unwrap() error {
	return ErrUnsupportedCurrency
}
