package external

import "context"

// Question is the provider-neutral shape every client returns.
type Question struct {
	Category   string
	Difficulty string
	Text       string
	Answer     string
}

// Provider fetches ready-made trivia from a public source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, amount int, difficulty string) ([]Question, error)
}
