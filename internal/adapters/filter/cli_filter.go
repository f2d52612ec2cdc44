package filter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/core"
)

// CliFilter analyzes a single email and prints the assessment to stdout
type CliFilter struct {
	service *core.AnalysisService
	logger  *zap.Logger
	verbose bool
}

// NewCliFilter creates a new CLI filter
func NewCliFilter(service *core.AnalysisService, logger *zap.Logger, verbose bool) (*CliFilter, error) {
	return &CliFilter{
		service: service,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// ProcessEmail analyzes an email and displays the results
func (f *CliFilter) ProcessEmail(ctx context.Context, email *core.EmailMessage) (*core.PhishingAssessment, error) {
	f.logger.Debug("Processing email", zap.String("sender", email.Sender))

	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", email.Sender)
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.Content))

	if f.verbose {
		preview := email.Content
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nBody preview:\n%s\n", preview)
	}

	fmt.Printf("\n=== Analysis ===\n")
	startTime := time.Now()
	assessment := f.service.AnalyzeEmail(ctx, email)
	duration := time.Since(startTime)

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Risk score: %d/100\n", assessment.Score)
	fmt.Printf("Strategy: %s\n", assessment.StrategyUsed)
	fmt.Printf("Processing time: %v\n", duration)
	if !assessment.Success {
		fmt.Printf("Analysis error: %s\n", assessment.Error)
	}

	if len(assessment.Indicators) == 0 {
		fmt.Printf("Indicators: none\n")
	} else {
		fmt.Printf("Indicators (%d):\n", len(assessment.Indicators))
		for _, ind := range assessment.Indicators {
			fmt.Printf("  [%s] %s (confidence %d%%)\n", ind.Severity, ind.Type, ind.Confidence)
			if f.verbose {
				fmt.Printf("      %s\n", ind.Description)
			}
		}
	}

	return assessment, nil
}

// Start is a no-op for the CLI filter
func (f *CliFilter) Start() error {
	return nil
}

// Stop is a no-op for the CLI filter
func (f *CliFilter) Stop() error {
	return nil
}
