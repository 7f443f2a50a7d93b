package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	corecontext "github.com/Iqbalshah786/inventory/internal/core/context"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/domain/audit"
	"github.com/Iqbalshah786/inventory/pkg/logger"
)

// Compile-time check that AuditRecorder implements the domain contract.
var _ audit.Recorder = (*AuditRecorder)(nil)

// CompressionAlgo specifies the compression algorithm used.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// auditRow is one persisted audit event. Large payloads are stored
// zstd-compressed.
type auditRow struct {
	ID              id.ID           `db:"id"`
	EntityType      string          `db:"entity_type"`
	EntityID        id.ID           `db:"entity_id"`
	Action          audit.Action    `db:"action"`
	Username        string          `db:"username"`
	Payload         json.RawMessage `db:"payload"`
	PayloadZstd     []byte          `db:"payload_compressed"`
	CompressionAlgo CompressionAlgo `db:"compression_algo"`
	CreatedAt       time.Time       `db:"created_at"`
}

// AuditRecorder persists audit events. Recording never fails the caller:
// a write error is logged and swallowed, the business transaction has
// already done its job.
type AuditRecorder struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	compressThreshold int
}

// NewAuditRecorder creates a new audit recorder.
func NewAuditRecorder(txManager *TxManager) (*AuditRecorder, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	return &AuditRecorder{
		txManager:         txManager,
		encoder:           encoder,
		compressThreshold: 10 * 1024, // 10KB
	}, nil
}

// Record implements audit.Recorder.
func (r *AuditRecorder) Record(ctx context.Context, action audit.Action, entity string, entityID id.ID, payload any) {
	row := auditRow{
		ID:              id.New(),
		EntityType:      entity,
		EntityID:        entityID,
		Action:          action,
		CompressionAlgo: CompressionNone,
		CreatedAt:       time.Now().UTC(),
	}

	if user := corecontext.GetUser(ctx); user != nil {
		row.Username = user.Username
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Error(ctx, "audit payload marshal failed", "entity", entity, "error", err)
			return
		}
		if len(data) > r.compressThreshold {
			row.PayloadZstd = r.encoder.EncodeAll(data, nil)
			row.CompressionAlgo = CompressionZstd
		} else {
			row.Payload = data
		}
	}

	sql := `
		INSERT INTO sys_audit (
			id, entity_type, entity_id, action, username,
			payload, payload_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	querier := r.txManager.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		row.ID, row.EntityType, row.EntityID, row.Action, row.Username,
		row.Payload, row.PayloadZstd, row.CompressionAlgo, row.CreatedAt,
	)
	if err != nil {
		logger.Error(ctx, "audit write failed",
			"entity", entity, "entity_id", entityID, "error", err)
	}
}
