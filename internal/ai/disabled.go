package ai

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no provider API key was supplied.
var ErrNotConfigured = errors.New("ai: provider not configured")

// Disabled stands in for the provider when no API key is configured.
type Disabled struct{}

func (Disabled) Generate(ctx context.Context, prompt string) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) Chat(ctx context.Context, system, greeting string, history []Message, message string) (<-chan Chunk, error) {
	return nil, ErrNotConfigured
}
