package redis

import (
	"fmt"

	"github.com/openexpo/jurypanel/internal/model"
)

// Key prefix for all juror panel data
const keyPrefix = "jurypanel"

// accountKey returns the Redis key for a JurorAccount
func accountKey(id model.JurorID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// recordKey returns the Redis key for an EvaluationRecord
func recordKey(jurorID model.JurorID, groupID model.GroupID) string {
	return fmt.Sprintf("%s:record:%s:%s", keyPrefix, jurorID, groupID)
}

// recordsForJurorIndexKey returns the Redis key for the SET of record keys
// belonging to one juror
func recordsForJurorIndexKey(jurorID model.JurorID) string {
	return fmt.Sprintf("%s:idx:records_for_juror:%s", keyPrefix, jurorID)
}

// draftKey returns the Redis key for a Draft
func draftKey(jurorID model.JurorID) string {
	return fmt.Sprintf("%s:draft:%s", keyPrefix, jurorID)
}
