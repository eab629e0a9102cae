package audit

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Category classifies audit entries by the kind of event they record.
type Category int

const (
	// CategoryUnknown represents an invalid or undefined category.
	CategoryUnknown Category = iota

	// CategoryDriverStatus records accepted driver status changes.
	CategoryDriverStatus

	// CategoryDeliveryAssign records accepted delivery assignments.
	CategoryDeliveryAssign

	// CategorySecurity records security-relevant access, such as reading the audit log.
	CategorySecurity

	// CategoryError records rejected mutations, such as a blocked deactivation.
	CategoryError

	// CategorySystem records events raised by background jobs.
	CategorySystem

	// CategoryOperation records other accepted business mutations.
	CategoryOperation
)

// getCategoryStrings returns a map of Category values to their wire names.
func getCategoryStrings() map[Category]string {
	return map[Category]string{
		CategoryUnknown:        "UNKNOWN",
		CategoryDriverStatus:   "DRIVER_STATUS",
		CategoryDeliveryAssign: "DELIVERY_ASSIGN",
		CategorySecurity:       "SECURITY",
		CategoryError:          "ERROR",
		CategorySystem:         "SYSTEM",
		CategoryOperation:      "OPERATION",
	}
}

// getValidCategoryStrings returns only the valid Category values.
func getValidCategoryStrings() map[Category]string {
	//nolint:exhaustive // CategoryUnknown is intentionally excluded as it's invalid
	return map[Category]string{
		CategoryDriverStatus:   "DRIVER_STATUS",
		CategoryDeliveryAssign: "DELIVERY_ASSIGN",
		CategorySecurity:       "SECURITY",
		CategoryError:          "ERROR",
		CategorySystem:         "SYSTEM",
		CategoryOperation:      "OPERATION",
	}
}

// Validate checks that the Category is one of the enumerated valid values.
func (c Category) Validate() error {
	if _, ok := getValidCategoryStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"category",
			fmt.Errorf("%d is not a valid audit category", c),
		)
	}
	return nil
}

// String returns the upper-case wire name of the category.
func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "UNKNOWN"
}
