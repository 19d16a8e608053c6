package storefront

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "memory" or "redis"
	addrs     []string
	password  string
	keyPrefix string

	seed         bool
	debounce     time.Duration
	similarLimit int
	phone        string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis stores the catalog and store directory in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix namespaces the Redis keys. Default: "storefront".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithSeed writes the bundled demo catalog and stores on start instead of
// loading what storage already holds.
func WithSeed() Option {
	return optionFunc(func(c *clientConfig) {
		c.seed = true
	})
}

// WithDebounce sets the quiet period before filter edits are published.
// Default: 200ms.
func WithDebounce(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.debounce = d
	})
}

// WithSimilarLimit caps similar-product recommendations. Default: 4.
func WithSimilarLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.similarLimit = n
	})
}

// WithWhatsAppPhone sets the number order links are addressed to.
func WithWhatsAppPhone(phone string) Option {
	return optionFunc(func(c *clientConfig) {
		c.phone = phone
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
