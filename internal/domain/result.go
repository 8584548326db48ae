package domain

import (
	"strconv"
	"time"
)

// Result classifies a single dispatch attempt.
type Result string

const (
	ResultCorrect          Result = "correct"
	ResultWrong            Result = "wrong"
	ResultErrorResponse    Result = "error_response"
	ResultNoServerResponse Result = "no_server_response"
)

// Delay is how long the scheduler waits before asking the same player again.
// Broken or unreachable players are polled less often than healthy ones.
func (r Result) Delay() time.Duration {
	switch r {
	case ResultCorrect:
		return 5 * time.Second
	case ResultWrong:
		return 10 * time.Second
	default:
		return 20 * time.Second
	}
}

// Outcome is what one dispatch hands back to the scheduler.
type Outcome struct {
	QuestionID string        `json:"questionId"`
	Question   string        `json:"question"`
	Result     Result        `json:"result"`
	Points     int           `json:"points"`
	Status     int           `json:"status"`
	Answer     string        `json:"answer"`
	Delay      time.Duration `json:"delay"`
}

// LogLine records one completed dispatch attempt. Lines are never mutated.
type LogLine struct {
	QuestionID string `json:"questionId"`
	Result     Result `json:"result"`
	Points     int    `json:"points"`
	Status     int    `json:"status"` // HTTP status, 0 when the player never answered
	Answer     string `json:"answer"`
}

func (l LogLine) String() string {
	return l.QuestionID + ": " + string(l.Result) + " - points awarded: " + strconv.Itoa(l.Points)
}
