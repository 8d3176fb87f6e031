package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks a failed invocation of an external binary.
	ErrExternalTool = errors.New("external tool error")
	// ErrMetadata marks capture metadata that could not be extracted or is
	// missing mandatory fields. Detection must not proceed past it.
	ErrMetadata = errors.New("metadata unavailable")
	// ErrStorageCorrupt marks a persisted artifact that exists but cannot be
	// deserialized. The user must invalidate it before retrying.
	ErrStorageCorrupt = errors.New("storage corrupt")
	// ErrIndexOutOfRange marks a burst index not present in the collection.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrValidation marks rejected caller input.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks a missing photo, burst, or artifact.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
