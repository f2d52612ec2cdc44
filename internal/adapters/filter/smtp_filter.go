package filter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/securecheck/securecheck/internal/config"
	"github.com/securecheck/securecheck/internal/core"
)

// SMTPFilter is an after-queue content filter: it accepts messages from the
// MTA, scores them, stamps the phishing headers and relays the message back
// on the re-injection port.
type SMTPFilter struct {
	service *core.AnalysisService
	logger  *zap.Logger
	cfg     config.ServerConfig
	server  *smtp.Server
}

// NewSMTPFilter creates a new SMTP content filter
func NewSMTPFilter(service *core.AnalysisService, logger *zap.Logger, cfg config.ServerConfig) *SMTPFilter {
	return &SMTPFilter{
		service: service,
		logger:  logger,
		cfg:     cfg,
	}
}

// Start starts the SMTP listener
func (f *SMTPFilter) Start() error {
	f.server = smtp.NewServer(&smtpBackend{filter: f})
	f.server.Addr = f.cfg.ListenAddress
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP filter starting", zap.String("address", f.cfg.ListenAddress))

	go func() {
		if err := f.server.ListenAndServe(); err != nil && err != smtp.ErrServerClosed {
			f.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the SMTP listener
func (f *SMTPFilter) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessEmail analyzes a single message, bypassing the SMTP transport.
// Used for testing and direct calls.
func (f *SMTPFilter) ProcessEmail(ctx context.Context, email *core.EmailMessage) (*core.PhishingAssessment, error) {
	return f.service.AnalyzeEmail(ctx, email), nil
}

// relay re-injects the processed message into the downstream MTA
func (f *SMTPFilter) relay(sender string, recipients []string, data []byte) error {
	addr := fmt.Sprintf("%s:%d", f.cfg.RelayAddress, f.cfg.RelayPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}
	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	accepted := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
			continue
		}
		accepted = true
	}
	if !accepted {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send message data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	if err := c.Quit(); err != nil {
		f.logger.Warn("QUIT command failed", zap.Error(err))
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	filter *SMTPFilter
}

func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		filter:     b.filter,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	filter     *SMTPFilter
	sender     string
	recipients []string
}

func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data scores the message, rewrites the headers and relays it onwards
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.filter.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.filter.logger.Error("Failed to parse message", zap.Error(err))
		return err
	}

	body, err := extractTextFromMessage(msg)
	if err != nil {
		s.filter.logger.Error("Failed to extract message text", zap.Error(err))
		return err
	}

	email := &core.EmailMessage{
		Sender:  s.sender,
		Subject: msg.Header.Get("Subject"),
		Content: body,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assessment := s.filter.service.AnalyzeEmail(ctx, email)
	flagged := assessment.Success && assessment.Score >= s.filter.cfg.RejectThreshold

	if flagged && s.filter.cfg.BlockHighRisk {
		s.filter.logger.Info("Rejecting high-risk message",
			zap.String("from", email.Sender),
			zap.Int("score", assessment.Score))
		return fmt.Errorf("550 Rejected as likely phishing (score: %d)", assessment.Score)
	}

	rewritten := s.rewriteMessage(msg, rawData, assessment, flagged)

	if s.filter.cfg.RelayEnabled {
		if err := s.filter.relay(s.sender, s.recipients, rewritten); err != nil {
			s.filter.logger.Error("Failed to relay message",
				zap.Error(err),
				zap.String("sender", email.Sender))
			return err
		}
	} else {
		s.filter.logger.Warn("Relay disabled, message dropped after analysis")
	}

	s.filter.logger.Info("Processed message",
		zap.String("from", email.Sender),
		zap.Int("score", assessment.Score),
		zap.Int("indicator_count", len(assessment.Indicators)),
		zap.String("strategy", assessment.StrategyUsed))

	return nil
}

// rewriteMessage prepends the phishing headers (and optionally tags the
// subject) while preserving the original body bytes, MIME parts included
func (s *smtpSession) rewriteMessage(msg *mail.Message, rawData []byte, assessment *core.PhishingAssessment, flagged bool) []byte {
	cfg := s.filter.cfg
	var out bytes.Buffer

	fmt.Fprintf(&out, "%s: %t\r\n", cfg.FlagHeader, flagged)
	fmt.Fprintf(&out, "%s: %d\r\n", cfg.ScoreHeader, assessment.Score)
	fmt.Fprintf(&out, "%s: %s\r\n", cfg.IndicatorsHeader, indicatorSummary(assessment.Indicators))
	if !assessment.Success {
		fmt.Fprintf(&out, "X-Phishing-Analysis-Error: %s\r\n", assessment.Error)
	}

	tagSubject := flagged && cfg.ModifySubject && cfg.SubjectPrefix != ""
	if tagSubject {
		subject, err := decodeEncodedHeader(msg.Header.Get("Subject"))
		if err != nil {
			subject = msg.Header.Get("Subject")
		}
		if !strings.HasPrefix(subject, cfg.SubjectPrefix) {
			subject = cfg.SubjectPrefix + subject
		}
		fmt.Fprintf(&out, "Subject: %s\r\n", subject)
	}

	for key, values := range msg.Header {
		if tagSubject && strings.EqualFold(key, "Subject") {
			continue
		}
		for _, value := range values {
			fmt.Fprintf(&out, "%s: %s\r\n", key, value)
		}
	}
	fmt.Fprintf(&out, "\r\n")

	// Reuse the raw body bytes instead of the parsed form so attachments
	// survive untouched
	if idx := bytes.Index(rawData, []byte("\r\n\r\n")); idx >= 0 {
		out.Write(rawData[idx+4:])
	} else if idx := bytes.Index(rawData, []byte("\n\n")); idx >= 0 {
		out.Write(rawData[idx+2:])
	} else if bodyBytes, err := io.ReadAll(msg.Body); err == nil {
		out.Write(bodyBytes)
	}

	return out.Bytes()
}

func (s *smtpSession) Logout() error {
	return nil
}

// indicatorSummary renders the indicator list for the summary header
func indicatorSummary(indicators []core.Indicator) string {
	if len(indicators) == 0 {
		return "none"
	}
	kinds := make([]string, 0, len(indicators))
	for _, ind := range indicators {
		kinds = append(kinds, string(ind.Type))
	}
	return strings.Join(kinds, "; ")
}
