package evaluation

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/services/resetwindow"
	"github.com/openexpo/jurypanel/internal/storage"
)

// Submission is one incoming score row. The juror id it carries is checked
// against the authenticated identity, not trusted.
type Submission struct {
	JurorID   model.JurorID
	JurorName string
	JurorDept string
	Timestamp string
	GroupID   model.GroupID
	GroupName string

	ScorePlanning   int
	ScoreExecution  int
	ScoreCreativity int
	ScoreDelivery   int
	ScoreTotal      int

	Comments string
	Status   model.Status
}

// SubmitResult reports what a batch submission did
type SubmitResult struct {
	Updated int
	Added   int
	// StaleSkipped counts submissions dropped because their timestamp
	// sorted before the stored one.
	StaleSkipped int
	// RegressionsIgnored counts updates whose status was clamped back to
	// all_submitted because no reset-unlock window was active.
	RegressionsIgnored int
}

// Service merges score submissions into the record store under the
// composite key (jurorID, groupID), enforcing stale-write rejection and
// status monotonicity.
type Service struct {
	storage storage.Storage
	windows *resetwindow.Service
	logger  *slog.Logger
}

// New creates a new evaluation service
func New(store storage.Storage, windows *resetwindow.Service, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		windows: windows,
		logger:  logger,
	}
}

// SubmitBatch merges a batch of submissions for the authenticated juror.
//
// Submissions claiming another juror's identity are silently dropped. The
// batch is collapsed to at most one submission per group, keeping the last
// occurrence. Each survivor is then resolved against the existing record:
// stale timestamps skip the submission, a finalized status is never
// downgraded outside an active reset-unlock window, and the editing flag is
// derived from the resolved status and window state.
func (s *Service) SubmitBatch(ctx context.Context, jurorID model.JurorID, subs []Submission) (*SubmitResult, error) {
	result := &SubmitResult{}

	// Identity filter + intra-batch last-write-wins collapse,
	// preserving first-seen group order for deterministic application.
	latest := make(map[model.GroupID]int)
	var order []model.GroupID
	dropped := 0
	for i, sub := range subs {
		if sub.JurorID != jurorID {
			dropped++
			continue
		}
		if _, seen := latest[sub.GroupID]; !seen {
			order = append(order, sub.GroupID)
		}
		latest[sub.GroupID] = i
	}
	if dropped > 0 {
		s.logger.Warn("dropped submissions with mismatched juror identity",
			slog.String("juror_id", string(jurorID)),
			slog.Int("dropped", dropped),
		)
	}
	if len(order) == 0 {
		return result, nil
	}

	windowActive, err := s.windows.IsActive(ctx, jurorID)
	if err != nil {
		return nil, err
	}

	// Current secret is copied onto written rows for downstream export
	// convenience only; it plays no part in auth decisions.
	secret := ""
	if account, err := s.storage.GetAccount(ctx, jurorID); err == nil {
		secret = account.Secret
	} else if !errors.Is(err, model.ErrAccountNotFound) {
		return nil, err
	}

	for _, groupID := range order {
		sub := subs[latest[groupID]]

		existing, err := s.storage.GetRecord(ctx, jurorID, groupID)
		if err != nil && !errors.Is(err, model.ErrRecordNotFound) {
			return nil, err
		}

		// Stale-write check: lexicographic comparison of ISO timestamps
		if existing != nil && existing.Timestamp != "" && sub.Timestamp != "" &&
			sub.Timestamp < existing.Timestamp {
			result.StaleSkipped++
			continue
		}

		status := sub.Status
		if existing != nil && existing.Status == model.StatusAllSubmitted &&
			status != model.StatusAllSubmitted && !windowActive {
			status = model.StatusAllSubmitted
			result.RegressionsIgnored++
		}

		editingFlag := model.EditingFlagNone
		switch {
		case status == model.StatusAllSubmitted:
			// finalized rows never carry the editing marker
		case windowActive:
			editingFlag = model.EditingFlagEditing
		case existing != nil:
			editingFlag = existing.EditingFlag
		}

		record := &model.EvaluationRecord{
			JurorID:         jurorID,
			JurorName:       sub.JurorName,
			JurorDept:       sub.JurorDept,
			Timestamp:       sub.Timestamp,
			GroupID:         groupID,
			GroupName:       sub.GroupName,
			ScorePlanning:   sub.ScorePlanning,
			ScoreExecution:  sub.ScoreExecution,
			ScoreCreativity: sub.ScoreCreativity,
			ScoreDelivery:   sub.ScoreDelivery,
			ScoreTotal:      sub.ScoreTotal,
			Comments:        sub.Comments,
			Status:          status,
			EditingFlag:     editingFlag,
			Color:           status.Color(),
			Secret:          secret,
		}

		if err := s.storage.SaveRecord(ctx, record); err != nil {
			return nil, err
		}
		if existing != nil {
			result.Updated++
		} else {
			result.Added++
		}
	}

	return result, nil
}

// ListResolved returns one record per group for the juror. Should the
// underlying store ever hold several rows for a group, the highest-priority
// status wins, with ties broken by the latest timestamp. Results are ordered
// by group id.
func (s *Service) ListResolved(ctx context.Context, jurorID model.JurorID) ([]*model.EvaluationRecord, error) {
	records, err := s.storage.GetRecordsForJuror(ctx, jurorID)
	if err != nil {
		return nil, err
	}

	best := make(map[model.GroupID]*model.EvaluationRecord)
	for _, record := range records {
		current, ok := best[record.GroupID]
		if !ok || preferred(record, current) {
			best[record.GroupID] = record
		}
	}

	resolved := make([]*model.EvaluationRecord, 0, len(best))
	for _, record := range best {
		resolved = append(resolved, record)
	}
	sort.Slice(resolved, func(i, j int) bool {
		return resolved[i].GroupID < resolved[j].GroupID
	})
	return resolved, nil
}

// preferred reports whether a should replace b in resolution
func preferred(a, b *model.EvaluationRecord) bool {
	if a.Status.Rank() != b.Status.Rank() {
		return a.Status.Rank() > b.Status.Rank()
	}
	return a.Timestamp > b.Timestamp
}

// CountFinalized returns how many of the juror's records are all_submitted
func (s *Service) CountFinalized(ctx context.Context, jurorID model.JurorID) (int, error) {
	records, err := s.storage.GetRecordsForJuror(ctx, jurorID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, record := range records {
		if record.Status == model.StatusAllSubmitted {
			count++
		}
	}
	return count, nil
}

// DeleteJurorData removes all of the juror's evaluation records and their
// draft. Returns the number of records deleted.
func (s *Service) DeleteJurorData(ctx context.Context, jurorID model.JurorID) (int, error) {
	deleted, err := s.storage.DeleteRecordsForJuror(ctx, jurorID)
	if err != nil {
		return 0, err
	}
	if err := s.storage.DeleteDraft(ctx, jurorID); err != nil {
		return deleted, err
	}
	return deleted, nil
}
