package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting and printing of command results
type Output struct {
	format string
}

// NewOutput creates a new output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print prints a result in the configured format
func (o *Output) Print(result any) error {
	switch o.format {
	case "json":
		return o.printJSON(result)
	default:
		return o.printText(result)
	}
}

// PrintError prints an error message
func (o *Output) PrintError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// PrintMessage prints a plain message
func (o *Output) PrintMessage(msg string) {
	fmt.Println(msg)
}

func (o *Output) printJSON(result any) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func (o *Output) printText(result any) error {
	switch r := result.(type) {
	case *IssuePINResult:
		fmt.Printf("PIN: %s\n", r.PIN)
		fmt.Printf("Token: %s\n", r.Token)
	case *PINExistsResult:
		if r.Exists {
			fmt.Println("PIN is set")
		} else {
			fmt.Println("No PIN set")
		}
	case *VerifyPINResult:
		if r.Valid {
			fmt.Println("PIN accepted")
			fmt.Printf("Token: %s\n", r.Token)
		} else if r.Locked {
			fmt.Println("Account locked")
		} else {
			fmt.Printf("PIN rejected, %d attempt(s) left\n", r.AttemptsLeft)
		}
	case *DraftResult:
		fmt.Println(string(r.Payload))
	case *SubmitScoresResult:
		fmt.Printf("Updated: %d\n", r.Updated)
		fmt.Printf("Added: %d\n", r.Added)
		fmt.Printf("Stale skipped: %d\n", r.StaleSkipped)
		fmt.Printf("Regressions ignored: %d\n", r.RegressionsIgnored)
	case *ListScoresResult:
		if len(r.Records) == 0 {
			fmt.Println("No scores recorded")
			return nil
		}
		for _, rec := range r.Records {
			fmt.Printf("%s  %s  total=%d  status=%s  %s\n",
				rec.GroupID, rec.GroupName, rec.ScoreTotal, rec.Status, rec.Timestamp)
		}
	case *CountResult:
		fmt.Printf("Finalized: %d\n", r.Count)
	case *DeletedScoresResult:
		fmt.Printf("Deleted %d record(s)\n", r.Count)
	case *AckResult:
		fmt.Println("OK")
	case *HealthResult:
		fmt.Printf("Status: %s\n", r.Status)
	default:
		// Fall back to JSON for unknown types
		return o.printJSON(result)
	}
	return nil
}

// Result types for text output

type IssuePINResult struct {
	PIN   string `json:"pin"`
	Token string `json:"token"`
}

type PINExistsResult struct {
	Exists bool `json:"exists"`
}

type VerifyPINResult struct {
	Valid        bool   `json:"valid"`
	Locked       bool   `json:"locked"`
	AttemptsLeft int    `json:"attempts_left"`
	Token        string `json:"token,omitempty"`
}

type DraftResult struct {
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt string          `json:"updated_at"`
}

type SubmitScoresResult struct {
	Updated            int `json:"updated"`
	Added              int `json:"added"`
	StaleSkipped       int `json:"stale_skipped"`
	RegressionsIgnored int `json:"regressions_ignored"`
}

type ScoreRecordResult struct {
	JurorID         string `json:"juror_id"`
	JurorName       string `json:"juror_name"`
	JurorDept       string `json:"juror_dept"`
	Timestamp       string `json:"timestamp"`
	GroupID         string `json:"group_id"`
	GroupName       string `json:"group_name"`
	ScorePlanning   int    `json:"score_planning"`
	ScoreExecution  int    `json:"score_execution"`
	ScoreCreativity int    `json:"score_creativity"`
	ScoreDelivery   int    `json:"score_delivery"`
	ScoreTotal      int    `json:"score_total"`
	Comments        string `json:"comments"`
	Status          string `json:"status"`
	EditingFlag     string `json:"editing_flag"`
	Color           string `json:"color"`
}

type ListScoresResult struct {
	Records []ScoreRecordResult `json:"records"`
}

type CountResult struct {
	Count int `json:"count"`
}

type DeletedScoresResult struct {
	Count int `json:"count"`
}

type AckResult struct {
	OK bool `json:"ok"`
}

type HealthResult struct {
	Status string `json:"status"`
}
