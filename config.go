package filecms

import (
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-filecms/pkg/interfaces"
)

var (
	ErrDocumentRootRequired   = errors.New("filecms: document root is required")
	ErrCredentialPathRequired = errors.New("filecms: credential file path is required")
	ErrSessionCookieRequired  = errors.New("filecms: session cookie name is required")
	ErrLoggingLevelInvalid    = errors.New("filecms: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("filecms: logging format is invalid")
)

// Config is the runtime configuration for the filecms module.
type Config struct {
	Documents   DocumentsConfig
	Credentials CredentialsConfig
	Sessions    SessionsConfig
	Server      ServerConfig
	Logging     LoggingConfig
	Markdown    MarkdownConfig
}

// DocumentsConfig locates the document store.
type DocumentsConfig struct {
	// Root is the directory holding every document; it must exist.
	Root string
}

// CredentialsConfig locates the credential file.
type CredentialsConfig struct {
	// Path is the YAML file mapping usernames to bcrypt hashes.
	Path string
	// BcryptCost overrides the hashing cost when non-zero.
	BcryptCost int
}

// SessionsConfig tunes the session store and cookie.
type SessionsConfig struct {
	// CookieName carries the opaque session token.
	CookieName string
	// TTL bounds session lifetime; zero disables expiry.
	TTL time.Duration
}

// ServerConfig tunes the HTTP surface.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// AppName labels the fiber application.
	AppName string
}

// LoggingConfig selects the go-logger provider behaviour.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// MarkdownConfig feeds the goldmark parser defaults.
type MarkdownConfig struct {
	Parser interfaces.ParseOptions
}

// DefaultConfig returns a configuration suitable for local development.
func DefaultConfig() Config {
	return Config{
		Documents: DocumentsConfig{
			Root: "data",
		},
		Credentials: CredentialsConfig{
			Path: "users.yml",
		},
		Sessions: SessionsConfig{
			CookieName: "filecms_session",
			TTL:        24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:    ":8080",
			AppName: "go-filecms",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Markdown: MarkdownConfig{
			Parser: interfaces.ParseOptions{
				Extensions: []string{"gfm", "linkify", "tasklist"},
			},
		},
	}
}

// Validate reports the first configuration problem encountered.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Documents.Root) == "" {
		return ErrDocumentRootRequired
	}
	if strings.TrimSpace(c.Credentials.Path) == "" {
		return ErrCredentialPathRequired
	}
	if strings.TrimSpace(c.Sessions.CookieName) == "" {
		return ErrSessionCookieRequired
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	return nil
}
