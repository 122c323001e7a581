package model

import (
	"encoding/json"
	"time"
)

// Draft is a juror's in-progress evaluation payload. At most one per juror;
// saves overwrite unconditionally.
type Draft struct {
	JurorID   JurorID
	Payload   json.RawMessage
	UpdatedAt time.Time
}
