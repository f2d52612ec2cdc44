package ports

import (
	"context"

	"github.com/securecheck/securecheck/internal/core"
)

// EmailFilter is an ingestion surface that feeds messages into the analysis
// service
type EmailFilter interface {
	// ProcessEmail analyzes a single message and returns the assessment
	ProcessEmail(ctx context.Context, email *core.EmailMessage) (*core.PhishingAssessment, error)

	// Start starts the filter service
	Start() error

	// Stop stops the filter service
	Stop() error
}
