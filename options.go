package filmdesk

import (
	"path/filepath"
	"time"

	"github.com/filmdesk/filmdesk/pkg/recommend"
)

// Default document and artifact locations, relative to the data directory.
const (
	DefaultDataDir     = "data"
	CatalogDocument    = "catalog.json"
	UsersDocument      = "users.json"
	SalesDocument      = "sales.json"
	RequestArtifact    = "target_user.json"
	ResponseArtifact   = "recommendations.json"
	DefaultRecommender = "./recommender"
)

// config holds the assembled settings for a Filmdesk instance.
type config struct {
	catalogPath  string
	usersPath    string
	salesPath    string
	requestPath  string
	responsePath string
	recommender  string
	recTimeout   time.Duration
	runner       recommend.Runner
	now          func() time.Time
}

// defaults returns the baseline configuration rooted at DefaultDataDir.
func defaults() *config {
	c := &config{
		recommender: DefaultRecommender,
		recTimeout:  recommend.DefaultTimeout,
		now:         time.Now,
	}
	c.setDataDir(DefaultDataDir)
	return c
}

func (c *config) setDataDir(dir string) {
	c.catalogPath = filepath.Join(dir, CatalogDocument)
	c.usersPath = filepath.Join(dir, UsersDocument)
	c.salesPath = filepath.Join(dir, SalesDocument)
	c.requestPath = filepath.Join(dir, RequestArtifact)
	c.responsePath = filepath.Join(dir, ResponseArtifact)
}

// Option is a function that configures a Filmdesk instance.
type Option func(*config) error

// WithDataDir roots every document and artifact path at dir.
func WithDataDir(dir string) Option {
	return func(c *config) error {
		c.setDataDir(dir)
		return nil
	}
}

// WithCatalogPath overrides the catalog document path.
func WithCatalogPath(path string) Option {
	return func(c *config) error {
		c.catalogPath = path
		return nil
	}
}

// WithUsersPath overrides the user document path.
func WithUsersPath(path string) Option {
	return func(c *config) error {
		c.usersPath = path
		return nil
	}
}

// WithSalesPath overrides the sales document path.
func WithSalesPath(path string) Option {
	return func(c *config) error {
		c.salesPath = path
		return nil
	}
}

// WithRecommender configures the external recommendation engine binary
// and its request/response artifact paths. Empty values keep defaults.
func WithRecommender(binPath, requestPath, responsePath string) Option {
	return func(c *config) error {
		if binPath != "" {
			c.recommender = binPath
		}
		if requestPath != "" {
			c.requestPath = requestPath
		}
		if responsePath != "" {
			c.responsePath = responsePath
		}
		return nil
	}
}

// WithRecommenderTimeout bounds a recommendation engine invocation.
func WithRecommenderTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		if timeout > 0 {
			c.recTimeout = timeout
		}
		return nil
	}
}

// WithRunner replaces the recommendation process runner, letting tests
// bypass the real executable.
func WithRunner(runner recommend.Runner) Option {
	return func(c *config) error {
		c.runner = runner
		return nil
	}
}

// WithClock overrides the time source used to stamp sales.
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		if now != nil {
			c.now = now
		}
		return nil
	}
}
