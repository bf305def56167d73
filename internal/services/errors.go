package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrGeneration marks failures of remote generative calls. The stage
	// executor contains these; anything else propagates.
	ErrGeneration = errors.New("generation error")
	// ErrConfiguration marks unusable configuration or credentials.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks malformed inputs detected before a remote call.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrGeneration
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsGeneration reports whether err is a contained generative-call failure.
func IsGeneration(err error) bool {
	return errors.Is(err, ErrGeneration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
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
