package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID mints identifiers shaped like "job-1736263000123-9f2c1a4b":
// resource prefix, unix millis, random suffix.
func NewID(resource string) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s-%d-%s", resource, time.Now().UnixMilli(), suffix)
}
