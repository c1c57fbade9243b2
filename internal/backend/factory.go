// Package backend assembles the slip service from configuration: which
// layout engine renders slips, which transport sends them, and where
// per-record outcomes are reported.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"payslip/internal/amqp"
	"payslip/internal/assets"
	"payslip/internal/config"
	"payslip/internal/core"
	"payslip/internal/mail/gmail"
	"payslip/internal/mail/memory"
	"payslip/internal/mail/smtp"
	"payslip/internal/render/pdf"
	"payslip/internal/render/xlsx"
	"payslip/internal/services"
	"payslip/internal/slip"
	"payslip/internal/storage"
)

// Factory creates the slip service from application configuration.
type Factory interface {
	CreateService(ctx context.Context, cfg *config.Config) (*services.SlipService, error)
}

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateService wires renderer, transport, asset source and reporters
// into one SlipService. The transport credential is established once
// here and shared by every record in the run.
func (f *DefaultFactory) CreateService(ctx context.Context, cfg *config.Config) (*services.SlipService, error) {
	renderer, err := f.createRenderer(cfg)
	if err != nil {
		return nil, err
	}

	sender, err := f.createSender(ctx, cfg)
	if err != nil {
		return nil, err
	}

	letterhead := assets.NewLetterhead(cfg.LetterheadURL)

	// Report channel: prefer AMQP when configured; otherwise journal
	// outcomes directly. With AMQP the worker owns the journal.
	var (
		reporters  []slip.Reporter
		amqpClient *amqp.Client
		journal    *storage.SQLiteJournal
	)
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without report channel", "error", err)
		} else {
			reporters = append(reporters, amqp.NewOutcomeReporter(amqpClient))
			f.logger.Info("Initialized AMQP report channel",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}
	if amqpClient == nil && cfg.SQLiteDBPath != "" {
		journal, err = storage.NewSQLiteJournal(cfg.SQLiteDBPath)
		if err != nil {
			f.logger.Warn("Failed to initialize dispatch journal, continuing without it", "error", err)
		} else {
			reporters = append(reporters, storage.NewJournalReporter(journal))
			f.logger.Info("Initialized dispatch journal", "db_path", cfg.SQLiteDBPath)
		}
	}

	dispatcher := slip.NewDispatcher(renderer, sender, letterhead, cfg.WorkDir, cfg.CompanyName, reporters...)

	f.logger.Info("Initialized slip service",
		"render_backend", cfg.RenderBackend,
		"mail_backend", cfg.MailBackend,
		"batch_size", cfg.BatchSize,
		"amqp_enabled", amqpClient != nil)

	return services.NewSlipService(
		cfg.BatchSize,
		core.Roster(cfg.CandidateNames),
		cfg.DefaultRecipient,
		dispatcher,
		amqpClient,
		journal,
	), nil
}

func (f *DefaultFactory) createRenderer(cfg *config.Config) (slip.Renderer, error) {
	switch cfg.RenderBackend {
	case "pdf":
		return pdf.New(), nil
	case "xlsx":
		return xlsx.New(), nil
	default:
		return nil, fmt.Errorf("unsupported render backend: %s", cfg.RenderBackend)
	}
}

func (f *DefaultFactory) createSender(ctx context.Context, cfg *config.Config) (slip.Sender, error) {
	switch cfg.MailBackend {
	case "memory":
		return memory.New(), nil
	case "smtp":
		sender, err := smtp.New(smtp.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SMTP transport: %w", err)
		}
		return sender, nil
	case "gmail":
		client, err := gmail.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gmail transport: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported mail backend: %s", cfg.MailBackend)
	}
}
