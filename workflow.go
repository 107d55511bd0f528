package golingo

import (
	"strings"

	"github.com/google/uuid"
)

const workflowIDLength = 12

// newWorkflowID returns a random 12 character alphanumeric token shared by
// all chunks of one localization call.
func newWorkflowID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:workflowIDLength]
}
