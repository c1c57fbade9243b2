package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Batch collection
	BatchSize        int
	CandidateNames   []string
	DefaultRecipient string

	// Branding
	CompanyName   string
	LetterheadURL string

	// Rendering
	RenderBackend string // pdf | xlsx
	WorkDir       string

	// Mail transport
	MailBackend  string // memory | smtp | gmail
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// AMQP report channel
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Dispatch journal
	SQLiteDBPath string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		BatchSize:        getEnvInt("BATCH_SIZE", 4),
		CandidateNames:   getEnvList("CANDIDATE_NAMES", []string{"Sajjad", "Aun", "Uma", "Shivani"}),
		DefaultRecipient: getEnv("DEFAULT_RECIPIENT", "aunraza@sinecure.ai"),

		CompanyName:   getEnv("COMPANY_NAME", "Sinecure AI"),
		LetterheadURL: getEnv("LETTERHEAD_URL", "https://i.ibb.co/yXLFZVV/logo.png"),

		RenderBackend: getEnv("RENDER_BACKEND", "pdf"),
		WorkDir:       getEnv("WORK_DIR", os.TempDir()),

		MailBackend:  getEnv("MAIL_BACKEND", "memory"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "payslip"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "slip_dispatched"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/payslip.db"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.BatchSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid batch size %d: must be at least 1", c.BatchSize))
	}
	if len(c.CandidateNames) == 0 {
		errors = append(errors, "candidate names must not be empty")
	}
	if !strings.Contains(c.DefaultRecipient, "@") {
		errors = append(errors, fmt.Sprintf("invalid default recipient '%s'", c.DefaultRecipient))
	}

	switch c.RenderBackend {
	case "pdf", "xlsx":
	default:
		errors = append(errors, fmt.Sprintf("invalid render backend '%s': must be one of [pdf xlsx]", c.RenderBackend))
	}

	switch c.MailBackend {
	case "memory", "gmail":
	case "smtp":
		if c.SMTPHost == "" {
			errors = append(errors, "smtp backend requires SMTP_HOST")
		}
		if c.SMTPFrom == "" {
			errors = append(errors, "smtp backend requires SMTP_FROM")
		}
		if c.SMTPPort < 1 || c.SMTPPort > 65535 {
			errors = append(errors, fmt.Sprintf("invalid smtp port %d", c.SMTPPort))
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid mail backend '%s': must be one of [memory smtp gmail]", c.MailBackend))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
