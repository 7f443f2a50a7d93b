// Package audit defines the audit trail contract. Document and ledger
// services record who did what to which entity; the storage layer decides
// how the trail is persisted.
package audit

import (
	"context"

	"github.com/Iqbalshah786/inventory/internal/core/id"
)

// Action classifies an audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionLogin  Action = "login"
)

// Recorder persists audit events. Implementations must not fail the
// business operation: errors are logged, not returned.
type Recorder interface {
	Record(ctx context.Context, action Action, entity string, entityID id.ID, payload any)
}

// Record is a nil-safe helper so services can carry an optional recorder.
func Record(r Recorder, ctx context.Context, action Action, entity string, entityID id.ID, payload any) {
	if r == nil {
		return
	}
	r.Record(ctx, action, entity, entityID, payload)
}
