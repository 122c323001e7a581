package storage

import (
	"context"

	"github.com/openexpo/jurypanel/internal/model"
)

// Storage defines the interface for data persistence.
// It covers both the credential store (juror accounts) and the record
// store (evaluation rows and drafts). Implementations must provide
// read-your-own-writes consistency per key; no multi-row atomicity is
// assumed beyond single-row writes.
type Storage interface {
	// Juror account operations
	SaveAccount(ctx context.Context, account *model.JurorAccount) error
	GetAccount(ctx context.Context, id model.JurorID) (*model.JurorAccount, error)
	DeleteAccount(ctx context.Context, id model.JurorID) error

	// Evaluation record operations. SaveRecord upserts by the
	// composite key (JurorID, GroupID).
	SaveRecord(ctx context.Context, record *model.EvaluationRecord) error
	GetRecord(ctx context.Context, jurorID model.JurorID, groupID model.GroupID) (*model.EvaluationRecord, error)
	GetRecordsForJuror(ctx context.Context, jurorID model.JurorID) ([]*model.EvaluationRecord, error)
	DeleteRecordsForJuror(ctx context.Context, jurorID model.JurorID) (int, error)

	// Draft operations, at most one draft per juror
	SaveDraft(ctx context.Context, draft *model.Draft) error
	GetDraft(ctx context.Context, jurorID model.JurorID) (*model.Draft, error)
	DeleteDraft(ctx context.Context, jurorID model.JurorID) error
}
