package assist

import (
	"context"
	"errors"
)

// ErrTimeout marks a review that was aborted because the assist service did
// not answer within the configured deadline.
var ErrTimeout = errors.New("assist request timed out")

type ReviewRequest struct {
	ExerciseID string `json:"exercise_id"`
	Statement  string `json:"statement"`
	Solution   string `json:"solution"`
	Language   string `json:"language"`
}

type Verdict struct {
	Passed   bool   `json:"passed"`
	Feedback string `json:"feedback"`
}

type Checker interface {
	Review(ctx context.Context, req ReviewRequest) (Verdict, error)
}
