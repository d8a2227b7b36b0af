package ports

import (
	"context"

	"folio/internal/core/domain/model/audit"
)

// AuditRepository appends to the audit log.
type AuditRepository interface {
	Append(ctx context.Context, entry *audit.Entry) error
}
