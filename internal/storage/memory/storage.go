package memory

import (
	"context"
	"sync"

	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts map[model.JurorID]*model.JurorAccount
	records  map[model.RecordKey]*model.EvaluationRecord
	drafts   map[model.JurorID]*model.Draft
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts: make(map[model.JurorID]*model.JurorAccount),
		records:  make(map[model.RecordKey]*model.EvaluationRecord),
		drafts:   make(map[model.JurorID]*model.Draft),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Juror account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.JurorAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *account
	s.accounts[account.ID] = &copied
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.JurorID) (*model.JurorAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.JurorID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, id)
	return nil
}

// Evaluation record operations

func (s *Storage) SaveRecord(ctx context.Context, record *model.EvaluationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	s.records[record.Key()] = &copied
	return nil
}

func (s *Storage) GetRecord(ctx context.Context, jurorID model.JurorID, groupID model.GroupID) (*model.EvaluationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[model.RecordKey{JurorID: jurorID, GroupID: groupID}]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *Storage) GetRecordsForJuror(ctx context.Context, jurorID model.JurorID) ([]*model.EvaluationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []*model.EvaluationRecord
	for key, record := range s.records {
		if key.JurorID == jurorID {
			copied := *record
			records = append(records, &copied)
		}
	}
	return records, nil
}

func (s *Storage) DeleteRecordsForJuror(ctx context.Context, jurorID model.JurorID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key := range s.records {
		if key.JurorID == jurorID {
			delete(s.records, key)
			deleted++
		}
	}
	return deleted, nil
}

// Draft operations

func (s *Storage) SaveDraft(ctx context.Context, draft *model.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *draft
	s.drafts[draft.JurorID] = &copied
	return nil
}

func (s *Storage) GetDraft(ctx context.Context, jurorID model.JurorID) (*model.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[jurorID]
	if !ok {
		return nil, model.ErrDraftNotFound
	}
	copied := *draft
	return &copied, nil
}

func (s *Storage) DeleteDraft(ctx context.Context, jurorID model.JurorID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, jurorID)
	return nil
}
