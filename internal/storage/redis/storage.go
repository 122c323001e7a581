package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Juror account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.JurorAccount) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, accountKey(account.ID), data, 0).Err()
}

func (s *Storage) GetAccount(ctx context.Context, id model.JurorID) (*model.JurorAccount, error) {
	data, err := s.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.JurorAccount
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.JurorID) error {
	return s.client.Del(ctx, accountKey(id)).Err()
}

// Evaluation record operations

func (s *Storage) SaveRecord(ctx context.Context, record *model.EvaluationRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	rKey := recordKey(record.JurorID, record.GroupID)
	indexKey := recordsForJurorIndexKey(record.JurorID)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, rKey, data, 0)
	pipe.SAdd(ctx, indexKey, rKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRecord(ctx context.Context, jurorID model.JurorID, groupID model.GroupID) (*model.EvaluationRecord, error) {
	data, err := s.client.Get(ctx, recordKey(jurorID, groupID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRecordNotFound
		}
		return nil, err
	}

	var record model.EvaluationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) GetRecordsForJuror(ctx context.Context, jurorID model.JurorID) ([]*model.EvaluationRecord, error) {
	indexKey := recordsForJurorIndexKey(jurorID)

	recordKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(recordKeys) == 0 {
		return []*model.EvaluationRecord{}, nil
	}

	values, err := s.client.MGet(ctx, recordKeys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.EvaluationRecord, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // index entry without a value
		}
		var record model.EvaluationRecord
		if err := json.Unmarshal([]byte(val.(string)), &record); err != nil {
			continue // Skip invalid data
		}
		records = append(records, &record)
	}

	return records, nil
}

func (s *Storage) DeleteRecordsForJuror(ctx context.Context, jurorID model.JurorID) (int, error) {
	indexKey := recordsForJurorIndexKey(jurorID)

	recordKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return 0, err
	}

	if len(recordKeys) == 0 {
		return 0, nil
	}

	// Delete all records and the index in one pipeline
	pipe := s.client.Pipeline()
	for _, key := range recordKeys {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, indexKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return len(recordKeys), nil
}

// Draft operations

func (s *Storage) SaveDraft(ctx context.Context, draft *model.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, draftKey(draft.JurorID), data, 0).Err()
}

func (s *Storage) GetDraft(ctx context.Context, jurorID model.JurorID) (*model.Draft, error) {
	data, err := s.client.Get(ctx, draftKey(jurorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDraftNotFound
		}
		return nil, err
	}

	var draft model.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *Storage) DeleteDraft(ctx context.Context, jurorID model.JurorID) error {
	return s.client.Del(ctx, draftKey(jurorID)).Err()
}
