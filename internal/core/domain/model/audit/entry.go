package audit

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for audit operations.
var (
	// ErrDetailsAreRequired is returned when recording an entry without details.
	ErrDetailsAreRequired = errs.NewValueIsRequiredError("details")
	// ErrEntryIsNotConstructed is returned when using an improperly initialized Entry.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")
)

// Entry is an append-only audit record. Entries are never updated or
// deleted; the store assigns RecordedAt at insert time, so a freshly
// created entry carries a zero timestamp until it is persisted.
type Entry struct {
	// id uniquely identifies the entry
	id kernel.UUID
	// category classifies the recorded event
	category Category
	// details is the human-readable event description
	details string
	// recordedAt is assigned by the store at insert time
	recordedAt time.Time
	// guard ensures the entry was properly constructed
	guard guard.ConstructorGuard
}

// NewEntry creates an audit entry for the given category. The timestamp is
// left zero; it is assigned by the store when the entry is inserted.
func NewEntry(id kernel.UUID, category Category, details string) (*Entry, error) {
	e := &Entry{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setCategory(category),
		e.setDetails(details),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry reconstructs an Entry from persistent storage together with
// its store-assigned timestamp.
func RestoreEntry(id kernel.UUID, category Category, details string, recordedAt time.Time) (*Entry, error) {
	e, err := NewEntry(id, category, details)
	if err != nil {
		return nil, err
	}
	e.recordedAt = recordedAt
	return e, nil
}

// Validate checks that the Entry was built through a constructor.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// Category returns the event classification.
func (e *Entry) Category() Category {
	return e.category
}

// Details returns the human-readable event description.
func (e *Entry) Details() string {
	return e.details
}

// RecordedAt returns the store-assigned timestamp. It is zero for an entry
// that has not been persisted yet.
func (e *Entry) RecordedAt() time.Time {
	return e.recordedAt
}

// setID sets the entry's unique identifier with validation.
func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

// setCategory sets the category with validation.
func (e *Entry) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	e.category = category
	return nil
}

// setDetails sets the details with validation.
func (e *Entry) setDetails(details string) error {
	if details == "" {
		return ErrDetailsAreRequired
	}
	e.details = details
	return nil
}
