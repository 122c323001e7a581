package model

// GroupID identifies one evaluated group
type GroupID string

// Status is the submission state of an evaluation record
type Status string

// Evaluation statuses, ordered by precedence
const (
	StatusInProgress     Status = "in_progress"
	StatusGroupSubmitted Status = "group_submitted"
	StatusAllSubmitted   Status = "all_submitted"
)

// Rank returns the precedence of a status. Unknown statuses rank lowest.
func (s Status) Rank() int {
	switch s {
	case StatusInProgress:
		return 1
	case StatusGroupSubmitted:
		return 2
	case StatusAllSubmitted:
		return 3
	default:
		return 0
	}
}

// Color returns the presentation highlight for a status. Cosmetic only;
// never consulted by resolution logic.
func (s Status) Color() string {
	switch s {
	case StatusInProgress:
		return "#fff2cc"
	case StatusGroupSubmitted:
		return "#d9ead3"
	case StatusAllSubmitted:
		return "#b6d7a8"
	default:
		return ""
	}
}

// EditingFlag values for EvaluationRecord
const (
	EditingFlagNone    = ""
	EditingFlagEditing = "editing"
)

// EvaluationRecord is one juror's scores for one group.
// Identity is the composite key (JurorID, GroupID).
type EvaluationRecord struct {
	JurorID   JurorID
	JurorName string
	JurorDept string

	// Timestamp is the caller-supplied ISO 8601 submission time, used
	// for stale-write ordering. Lexicographic comparison is sufficient
	// for ISO strings.
	Timestamp string

	GroupID   GroupID
	GroupName string

	ScorePlanning   int
	ScoreExecution  int
	ScoreCreativity int
	ScoreDelivery   int
	ScoreTotal      int

	Comments string

	Status      Status
	EditingFlag string

	// Color is the presentation hint handed to the record store.
	Color string

	// Secret is a copy of the juror's secret at write time, kept for
	// downstream export convenience. Never used for auth decisions.
	Secret string
}

// Key returns the composite identity of the record
func (r *EvaluationRecord) Key() RecordKey {
	return RecordKey{JurorID: r.JurorID, GroupID: r.GroupID}
}

// RecordKey is the composite identity (jurorID, groupID)
type RecordKey struct {
	JurorID JurorID
	GroupID GroupID
}
