package cli

import (
	"fmt"

	"github.com/shinji-kodama/gitlet/internal/model"
)

// ExitError carries a Batch-mode exit status out of cobra's RunE. Its
// message has already been written by the dispatcher.
type ExitError struct {
	Code model.ExitCode
}

// Error satisfies the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
