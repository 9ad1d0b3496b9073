package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m2tx/workspace-assistant/internal/model"
	bolt "go.etcd.io/bbolt"
)

var exchangesBucket = []byte("exchanges")

// BoltExchangeRepository implements ExchangeRepository on a local bbolt file.
type BoltExchangeRepository struct {
	db *bolt.DB
}

func NewBoltExchangeRepository(path string) (*BoltExchangeRepository, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("repository: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(exchangesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: create exchanges bucket: %w", err)
	}

	return &BoltExchangeRepository{db: db}, nil
}

func (r *BoltExchangeRepository) Save(_ context.Context, record model.ExchangeRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("repository: encode exchange %q: %w", record.RequestID, err)
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(exchangesBucket).Put([]byte(record.RequestID), data)
	})
}

func (r *BoltExchangeRepository) Load(_ context.Context, requestID string) (*model.ExchangeRecord, error) {
	var record *model.ExchangeRecord
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(exchangesBucket).Get([]byte(requestID))
		if v == nil {
			return nil
		}
		record = &model.ExchangeRecord{}
		return json.Unmarshal(v, record)
	})
	if err != nil {
		return nil, fmt.Errorf("repository: read exchange %q: %w", requestID, err)
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

func (r *BoltExchangeRepository) Close(context.Context) error {
	return r.db.Close()
}
