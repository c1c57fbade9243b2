// Package gmail sends slips through the Gmail API using OAuth
// credentials prepared by cmd/oauth-init.
package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	ggmail "google.golang.org/api/gmail/v1"
	goption "google.golang.org/api/option"

	"payslip/internal/slip"
)

type Client struct {
	svc  *ggmail.Service
	from string
}

var _ slip.Sender = (*Client)(nil)

// NewFromEnv creates a Gmail client using environment variables.
// Required: GMAIL_SENDER plus OAuth client and token material via
// GOOGLE_OAUTH_CLIENT_JSON/GOOGLE_OAUTH_CLIENT_FILE and
// GOOGLE_OAUTH_TOKEN_JSON/GOOGLE_OAUTH_TOKEN_FILE.
func NewFromEnv(ctx context.Context) (*Client, error) {
	from := strings.TrimSpace(os.Getenv("GMAIL_SENDER"))
	if from == "" {
		return nil, errors.New("missing GMAIL_SENDER")
	}

	clientJSON, err := readMaterial("GOOGLE_OAUTH_CLIENT_JSON", "GOOGLE_OAUTH_CLIENT_FILE")
	if err != nil {
		return nil, err
	}
	tokenJSON, err := readMaterial("GOOGLE_OAUTH_TOKEN_JSON", "GOOGLE_OAUTH_TOKEN_FILE")
	if err != nil {
		return nil, err
	}

	cfg, err := google.ConfigFromJSON(clientJSON, ggmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("oauth config: %w", err)
	}

	tok := &oauth2.Token{}
	if err := json.Unmarshal(tokenJSON, tok); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	svc, err := ggmail.NewService(ctx, goption.WithHTTPClient(cfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	slog.InfoContext(ctx, "Gmail client initialized", "sender", from)
	return &Client{svc: svc, from: from}, nil
}

func readMaterial(jsonEnv, fileEnv string) ([]byte, error) {
	if v := strings.TrimSpace(os.Getenv(jsonEnv)); v != "" {
		return []byte(v), nil
	}
	if path := strings.TrimSpace(os.Getenv(fileEnv)); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fileEnv, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("missing credentials (set %s or %s)", jsonEnv, fileEnv)
}

func (c *Client) Send(ctx context.Context, msg slip.Message) error {
	raw, err := buildMIME(c.from, msg)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	_, err = c.svc.Users.Messages.Send("me", &ggmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("send via gmail: %w", err)
	}
	return nil
}

// buildMIME assembles an RFC 2822 multipart/mixed message with the slip
// attached from disk. The boundary is randomized per message so slip
// content can never collide with it.
func buildMIME(from string, msg slip.Message) ([]byte, error) {
	var b bytes.Buffer
	mw := multipart.NewWriter(&b)

	header := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	}
	header("From", from)
	header("To", msg.To)
	header("Subject", msg.Subject)
	header("MIME-Version", "1.0")
	header("Content-Type", `multipart/mixed; boundary="`+mw.Boundary()+`"`)
	b.WriteString("\r\n")

	body, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/plain; charset="UTF-8"`},
	})
	if err != nil {
		return nil, fmt.Errorf("create body part: %w", err)
	}
	if _, err := body.Write([]byte(msg.Body)); err != nil {
		return nil, fmt.Errorf("write body: %w", err)
	}

	if msg.AttachmentPath != "" {
		data, err := os.ReadFile(msg.AttachmentPath)
		if err != nil {
			return nil, fmt.Errorf("read attachment: %w", err)
		}
		filename := filepath.Base(msg.AttachmentPath)
		contentType := mime.TypeByExtension(filepath.Ext(filename))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {contentType + `; name="` + filename + `"`},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {`attachment; filename="` + filename + `"`},
		})
		if err != nil {
			return nil, fmt.Errorf("create attachment part: %w", err)
		}
		if _, err := part.Write([]byte(wrapBase64(base64.StdEncoding.EncodeToString(data)))); err != nil {
			return nil, fmt.Errorf("write attachment: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finish message: %w", err)
	}
	return b.Bytes(), nil
}

func wrapBase64(s string) string {
	const lineLen = 76
	var b strings.Builder
	for len(s) > lineLen {
		b.WriteString(s[:lineLen])
		b.WriteString("\r\n")
		s = s[lineLen:]
	}
	b.WriteString(s)
	return b.String()
}
