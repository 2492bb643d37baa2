package assist

import (
	"context"
	"fmt"

	"github.com/culprog/backend/internal/utils"
)

// MockChecker gives deterministic verdicts when no assist service is
// configured, useful for local development.
type MockChecker struct{}

func (MockChecker) Review(_ context.Context, req ReviewRequest) (Verdict, error) {
	h := utils.HashStringToUint64(req.ExerciseID + req.Solution)
	passed := h%3 != 0
	feedback := "Looks good, nice work."
	if !passed {
		feedback = fmt.Sprintf("Solution for exercise %s needs another pass.", req.ExerciseID)
	}
	return Verdict{Passed: passed, Feedback: feedback}, nil
}
