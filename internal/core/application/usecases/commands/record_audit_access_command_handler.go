package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/audit"
	"dispatch/internal/core/domain/model/kernel"
)

// RecordAuditAccessCommandHandler appends a SECURITY entry each time the
// audit log is read.
type RecordAuditAccessCommandHandler struct {
	uowFactory AuditUoWFactory
}

// NewRecordAuditAccessCommandHandler creates a handler for audit access recording.
func NewRecordAuditAccessCommandHandler(uowFactory AuditUoWFactory) RecordAuditAccessCommandHandler {
	return RecordAuditAccessCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the audit access command.
func (h RecordAuditAccessCommandHandler) Handle(ctx context.Context, command RecordAuditAccessCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		audit.CategorySecurity,
		fmt.Sprintf("%s accessed the audit log", command.Actor()),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
