package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	appctx "tillpoint/internal/core/context"
	"tillpoint/internal/core/id"
)

// AuditAction represents the type of audited operation.
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// CompressionAlgo specifies the compression algorithm used for the change set.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditEntry records a privileged mutation (who changed what, and how).
type AuditEntry struct {
	ID                id.ID           `db:"id"`
	EntityType        string          `db:"entity_type"`
	EntityID          id.ID           `db:"entity_id"`
	Action            AuditAction     `db:"action"`
	UserID            string          `db:"user_id"`
	UserEmail         string          `db:"user_email"`
	Changes           json.RawMessage `db:"changes"`
	ChangesCompressed []byte          `db:"changes_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	CreatedAt         time.Time       `db:"created_at"`
}

// AuditService writes audit log entries for privileged operations.
// Large change sets are stored zstd-compressed.
type AuditService struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int // bytes
}

// NewAuditService creates a new audit service.
func NewAuditService(txManager *TxManager) (*AuditService, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditService{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Log records an audit entry. User identity is filled from the request
// context when not set explicitly.
func (s *AuditService) Log(ctx context.Context, entry AuditEntry) error {
	if user := appctx.GetUser(ctx); user != nil {
		if entry.UserID == "" {
			entry.UserID = user.UserID
		}
		if entry.UserEmail == "" {
			entry.UserEmail = user.Email
		}
	}

	if id.IsNil(entry.ID) {
		entry.ID = id.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	s.compress(&entry)

	querier := s.txManager.GetQuerier(ctx)
	_, err := querier.Exec(ctx, `
		INSERT INTO audit_log (id, entity_type, entity_id, action, user_id, user_email,
			changes, changes_compressed, compression_algo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		entry.ID, entry.EntityType, entry.EntityID, entry.Action,
		entry.UserID, entry.UserEmail,
		entry.Changes, entry.ChangesCompressed, entry.CompressionAlgo, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// LogChange marshals the change payload and records it. The action is a
// plain string so domain services can depend on a narrow interface.
func (s *AuditService) LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes any) error {
	raw, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}
	return s.Log(ctx, AuditEntry{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     AuditAction(action),
		Changes:    raw,
	})
}

// History returns the audit trail for one entity, newest first, with
// compressed change sets restored to plain JSON.
func (s *AuditService) History(ctx context.Context, entityType string, entityID id.ID) ([]AuditEntry, error) {
	querier := s.txManager.GetQuerier(ctx)
	var entries []AuditEntry
	err := pgxscan.Select(ctx, querier, &entries, `
		SELECT id, entity_type, entity_id, action, user_id, user_email,
			changes, changes_compressed, compression_algo, created_at
		FROM audit_log
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
	`, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("select audit entries: %w", err)
	}

	for i := range entries {
		raw, err := s.Decompress(entries[i])
		if err != nil {
			return nil, err
		}
		entries[i].Changes = raw
		entries[i].ChangesCompressed = nil
		entries[i].CompressionAlgo = CompressionNone
	}
	return entries, nil
}

// compress moves change sets above the threshold into the compressed
// column so the JSONB column stays small.
func (s *AuditService) compress(entry *AuditEntry) {
	entry.CompressionAlgo = CompressionNone
	if len(entry.Changes) > s.compressThreshold {
		entry.ChangesCompressed = s.encoder.EncodeAll(entry.Changes, nil)
		entry.CompressionAlgo = CompressionZstd
		entry.Changes = nil
	}
}

// Decompress restores a compressed change set.
func (s *AuditService) Decompress(entry AuditEntry) (json.RawMessage, error) {
	if entry.CompressionAlgo != CompressionZstd {
		return entry.Changes, nil
	}
	raw, err := s.decoder.DecodeAll(entry.ChangesCompressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress audit changes: %w", err)
	}
	return raw, nil
}
