package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/core"
	"github.com/securecheck/securecheck/internal/di"
	"github.com/securecheck/securecheck/internal/ports"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	emailFilter ports.EmailFilter,
	service *core.AnalysisService,
) error {
	defer logger.Sync()

	ctx := context.Background()

	// Fraud event mode skips email parsing entirely
	if flags.FraudEvent != "" {
		return runFraudCheck(ctx, service, flags.FraudEvent)
	}

	email, err := readEmail(flags, logger)
	if err != nil {
		return err
	}

	_, err = emailFilter.ProcessEmail(ctx, email)
	return err
}

// readEmail parses an RFC 822 message from the input file or stdin. The
// sender and subject flags override whatever the message headers carry.
func readEmail(flags *di.CLIFlags, logger *zap.Logger) (*core.EmailMessage, error) {
	var emailReader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file %s: %w", flags.InputFile, err)
		}
		defer file.Close()
		emailReader = file
		logger.Debug("Reading email from file", zap.String("file", flags.InputFile))
	} else {
		emailReader = os.Stdin
		logger.Debug("Reading email from stdin")
	}

	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		return nil, fmt.Errorf("failed to parse email: %w", err)
	}

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read email body: %w", err)
	}

	email := &core.EmailMessage{
		Sender:  msg.Header.Get("From"),
		Subject: msg.Header.Get("Subject"),
		Content: string(bodyBytes),
	}
	if flags.Sender != "" {
		email.Sender = flags.Sender
	}
	if flags.Subject != "" {
		email.Subject = flags.Subject
	}

	return email, nil
}

// runFraudCheck evaluates a JSON event against the fraud rules and prints
// the outcome
func runFraudCheck(ctx context.Context, service *core.AnalysisService, rawEvent string) error {
	var event core.FraudEvent
	if err := json.Unmarshal([]byte(rawEvent), &event); err != nil {
		return fmt.Errorf("failed to parse fraud event JSON: %w", err)
	}

	assessment := service.CheckFraud(ctx, event)

	fmt.Printf("\n=== Fraud Check ===\n")
	fmt.Printf("Fraudulent: %t\n", assessment.IsFraudulent)
	if assessment.IsFraudulent {
		fmt.Printf("Severity: %s\n", assessment.Severity)
	}
	if len(assessment.TriggeredRules) == 0 {
		fmt.Printf("Triggered rules: none\n")
	} else {
		fmt.Printf("Triggered rules: %s\n", strings.Join(assessment.TriggeredRules, ", "))
	}

	return nil
}
