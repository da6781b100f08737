// Package curves is a registry of named elliptic-curve groups. Groups are
// built and validated on first use and kept in an LRU cache.
package curves

import (
	"fmt"
	"sort"
	"sync"

	"github.com/armon/go-metrics"
	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru"

	"github.com/bee2-go/bee2/ec"
	"github.com/bee2-go/bee2/errs"
)

const (
	// DefaultCacheSize is the number of groups kept by default
	DefaultCacheSize = 8

	curvesMetrics = "curves"
)

// Config configures a Registry.
type Config struct {
	Logger    hclog.Logger
	CacheSize int
}

// Registry builds named groups and caches them. Cached groups are
// read-only and may be shared between goroutines.
type Registry struct {
	logger hclog.Logger
	cache  *lru.Cache

	// lock serializes construction so that a group is built once
	lock sync.Mutex
}

// NewRegistry creates a registry; a nil config selects the defaults.
func NewRegistry(config *Config) (*Registry, error) {
	if config == nil {
		config = &Config{}
	}

	logger := config.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	size := config.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("unable to create curve cache, %w", err)
	}

	return &Registry{
		logger: logger.Named("curves"),
		cache:  cache,
	}, nil
}

// Names returns the names of the known curves in sorted order.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Group returns the named group, building and validating it on a cache
// miss.
func (r *Registry) Group(name string) (*ec.Group, error) {
	if g, ok := r.load(name); ok {
		return g, nil
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if g, ok := r.load(name); ok {
		return g, nil
	}

	metrics.IncrCounter([]string{curvesMetrics, "cache_miss"}, 1)

	def, ok := definitions[name]
	if !ok {
		return nil, errs.Wrap(errs.ErrNotFound, "curve %q", name)
	}

	g, err := def.build()
	if err == nil {
		err = ec.IsValidGroup(g, nil)
	}

	if err != nil {
		r.logger.Warn("invalid curve", "name", name, "err", err)

		return nil, fmt.Errorf("curve %s: %w", name, err)
	}

	r.logger.Debug("curve built", "name", name)
	r.cache.Add(name, g)

	return g, nil
}

func (r *Registry) load(name string) (*ec.Group, bool) {
	raw, ok := r.cache.Get(name)
	if !ok {
		return nil, false
	}

	g, ok := raw.(*ec.Group)

	return g, ok
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Get returns the named group from a process-wide registry.
func Get(name string) (*ec.Group, error) {
	defaultRegistryOnce.Do(func() {
		// the default config cannot fail
		defaultRegistry, _ = NewRegistry(nil)
	})

	return defaultRegistry.Group(name)
}
