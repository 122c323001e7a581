package draft

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/openexpo/jurypanel/internal/dependencies/clock"
	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/storage"
)

// Service persists one in-progress evaluation payload per juror.
// Saves overwrite unconditionally; last write wins.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new draft service
func New(store storage.Storage, clk clock.Clock) *Service {
	return &Service{storage: store, clock: clk}
}

// Save upserts the juror's draft with the given payload and the current time
func (s *Service) Save(ctx context.Context, jurorID model.JurorID, payload json.RawMessage) error {
	if !json.Valid(payload) {
		return model.ErrCorruptDraft
	}
	return s.storage.SaveDraft(ctx, &model.Draft{
		JurorID:   jurorID,
		Payload:   payload,
		UpdatedAt: s.clock.Now(),
	})
}

// Load returns the juror's stored draft. Returns model.ErrDraftNotFound if
// none exists and model.ErrCorruptDraft if the stored payload cannot be
// deserialized.
func (s *Service) Load(ctx context.Context, jurorID model.JurorID) (*model.Draft, error) {
	draft, err := s.storage.GetDraft(ctx, jurorID)
	if err != nil {
		return nil, err
	}
	if !json.Valid(draft.Payload) {
		return nil, model.ErrCorruptDraft
	}
	return draft, nil
}

// Delete removes the juror's draft. Deleting an absent draft succeeds.
func (s *Service) Delete(ctx context.Context, jurorID model.JurorID) error {
	err := s.storage.DeleteDraft(ctx, jurorID)
	if errors.Is(err, model.ErrDraftNotFound) {
		return nil
	}
	return err
}
