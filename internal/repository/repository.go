package repository

import (
	"context"
	"errors"

	"github.com/m2tx/workspace-assistant/internal/model"
)

// ErrNotFound is returned by Load when no record exists for the request id.
var ErrNotFound = errors.New("repository: exchange not found")

// ExchangeRepository stores the audit record of each chat exchange.
// Records are never read back into a conversation.
type ExchangeRepository interface {
	// Save persists record, replacing any record with the same request id.
	Save(ctx context.Context, record model.ExchangeRecord) error

	// Load retrieves the record for requestID or ErrNotFound.
	Load(ctx context.Context, requestID string) (*model.ExchangeRecord, error)

	Close(ctx context.Context) error
}
