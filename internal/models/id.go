package models

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID mints a prefixed identifier, e.g. "user-6f1c...". The prefix keeps
// identifiers self-describing in logs and API payloads.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
