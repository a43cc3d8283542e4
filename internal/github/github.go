// Package github enriches declared projects with signals fetched from the
// GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/spigell/hire-scorer/internal/domain"
)

const (
	apiURL         = "https://api.github.com"
	userAgent      = "spigell/hire-scorer"
	defaultTimeout = 10 * time.Second
	// Max value for list endpoints.
	perPage = "100"
)

var repoURLRe = regexp.MustCompile(`^(?:https?://|ssh://git@|git@)?(?:www\.)?github\.com[/:]([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)`)

// Options configure a Client. Zero values fall back to public GitHub defaults.
type Options struct {
	Token             string
	APIURL            string
	Timeout           time.Duration
	RequestsPerSecond float64
}

type Client struct {
	token      string
	logger     *zap.Logger
	limiter    *rate.Limiter
	now        func() time.Time
	HTTPClient *http.Client
	APIURL     string
	UserAgent  string
	// Timeout bounds the whole fan-out for one project.
	Timeout time.Duration
}

func New(logger *zap.Logger, opts Options) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	api := strings.TrimRight(strings.TrimSpace(opts.APIURL), "/")
	if api == "" {
		api = apiURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		token:      strings.TrimSpace(opts.Token),
		logger:     logger,
		limiter:    rate.NewLimiter(limit, 5),
		now:        time.Now,
		HTTPClient: &http.Client{Timeout: timeout},
		APIURL:     api,
		UserAgent:  userAgent,
		Timeout:    timeout,
	}
}

// ParseRepositoryURL extracts owner and repository name from a GitHub URL.
func ParseRepositoryURL(raw string) (owner, repo string, err error) {
	m := repoURLRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", "", fmt.Errorf("not a github repository url: %q", raw)
	}
	repo = strings.TrimSuffix(m[2], ".git")
	if repo == "" {
		return "", "", fmt.Errorf("not a github repository url: %q", raw)
	}
	return m[1], repo, nil
}

// Enrich fetches repository signals for p. It never fails: when the URL does
// not parse or any of the requests fails, p is returned as Declared.
func (c *Client) Enrich(ctx context.Context, p domain.DeclaredProject) domain.ProjectSignal {
	owner, name, err := ParseRepositoryURL(p.RepositoryURL)
	if err != nil {
		c.logger.Debug("skipping enrichment", zap.String("project", p.Title), zap.Error(err))
		return domain.Declared{DeclaredProject: p, Reason: "no github repository"}
	}

	snap, err := c.fetch(ctx, owner, name)
	if err != nil {
		c.logger.Warn("repository enrichment failed",
			zap.String("project", p.Title),
			zap.String("repository", owner+"/"+name),
			zap.Error(err),
		)
		return domain.Declared{DeclaredProject: p, Reason: "repository enrichment failed"}
	}

	signals := snap.derive(c.now())
	signals.Owner, signals.Name = owner, name

	c.logger.Debug("repository enriched",
		zap.String("repository", owner+"/"+name),
		zap.Int("code_quality", signals.CodeQuality),
		zap.Bool("is_active", signals.IsActive),
	)

	return domain.Enriched{DeclaredProject: p, Repo: signals}
}

// EnrichAll enriches every project concurrently. Order is preserved and
// failures stay local to their project.
func (c *Client) EnrichAll(ctx context.Context, projects []domain.DeclaredProject) []domain.ProjectSignal {
	out := make([]domain.ProjectSignal, len(projects))
	var g errgroup.Group
	for i, p := range projects {
		g.Go(func() error {
			out[i] = c.Enrich(ctx, p)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// CheckConnection validates the configured token and returns its login.
func (c *Client) CheckConnection(ctx context.Context) (string, error) {
	if c.token == "" {
		return "", fmt.Errorf("github token: %w", domain.ErrCredentialMissing)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	var user struct {
		Login string `json:"login"`
	}
	if err := c.getJSON(ctx, "/user", nil, &user); err != nil {
		return "", fmt.Errorf("check github credential: %w", err)
	}
	if user.Login == "" {
		return "", errors.New("github api returned empty login")
	}
	return user.Login, nil
}
