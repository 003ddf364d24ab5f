package engine

import (
	"errors"
	"fmt"
)

var ErrInvalidRange = errors.New("the start of the range must not be after its end")

// validate checks a transaction for contract violations.
// Dangling references are not violations.
func validate(t ResolvedTransaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("transaction %s: %w", t.ID, err)
	}

	return nil
}
