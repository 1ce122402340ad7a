package wikidata

import (
	"errors"
	"fromtodk/internal/config"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	defaultBackoff     = 200 * time.Millisecond
)

// Client holds the connection settings shared by the resolver and the
// extractors. It carries no per-request state and is safe for concurrent use.
type Client struct {
	session     *http.Client
	apiURL      string
	sparqlURL   string
	userAgent   string
	maxAttempts int
	backoff     time.Duration
	log         *zap.Logger
}

type Options struct {
	APIURL    string
	SPARQLURL string
	UserAgent string

	// Timeout applies per HTTP attempt. Ignored when HTTPClient is set.
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration

	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIURL) == "" {
		return nil, errors.New("wikidata client: api url is empty")
	}

	session := opts.HTTPClient
	if session == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		session = &http.Client{Timeout: timeout}
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}

	backoff := opts.InitialBackoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		session:     session,
		apiURL:      strings.TrimSpace(opts.APIURL),
		sparqlURL:   strings.TrimSpace(opts.SPARQLURL),
		userAgent:   opts.UserAgent,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		log:         log,
	}, nil
}

// NewClientFromConfig builds a client from the resolved runtime configuration.
func NewClientFromConfig(cfg *config.Config, log *zap.Logger) (*Client, error) {
	return NewClient(Options{
		APIURL:      cfg.APIURL,
		SPARQLURL:   cfg.SPARQLURL,
		UserAgent:   cfg.UserAgent,
		Timeout:     cfg.HTTPTimeout,
		MaxAttempts: cfg.HTTPMaxAttempts,
		Logger:      log,
	})
}
