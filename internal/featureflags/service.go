package featureflags

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the feature flag service.
type ServiceConfig struct {
	Repository   Repository
	Logger       zerolog.Logger
	CacheTTL     time.Duration // How long to cache flags in memory
	DefaultFlags map[string]*Flag
}

// Service provides feature flag evaluation with caching and fallback.
type Service struct {
	repo         Repository
	logger       zerolog.Logger
	cacheTTL     time.Duration
	defaultFlags map[string]*Flag

	mu          sync.RWMutex
	cache       map[string]*Flag
	cacheExpiry time.Time
}

// NewService creates a new feature flag service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Minute
	}

	defaultFlags := cfg.DefaultFlags
	if defaultFlags == nil {
		defaultFlags = DefaultFlags()
	}

	repo := cfg.Repository
	if repo == nil {
		repo = NewInMemoryRepository()
	}

	return &Service{
		repo:         repo,
		logger:       cfg.Logger,
		cacheTTL:     cacheTTL,
		defaultFlags: defaultFlags,
		cache:        make(map[string]*Flag),
	}
}

// GetFlag retrieves a feature flag by key.
// Uses cached value if available and not expired, with fallback to defaults.
func (s *Service) GetFlag(ctx context.Context, key string) *Flag {
	if flag := s.getCached(key); flag != nil {
		return flag
	}

	flag, err := s.repo.GetFlag(ctx, key)
	if err == nil {
		s.setCached(key, flag)
		return flag
	}

	if !errors.Is(err, ErrFlagNotFound) {
		s.logger.Warn().Err(err).Str("flag", key).Msg("failed to get feature flag from repository")
	}

	if defaultFlag, ok := s.defaultFlags[key]; ok {
		return defaultFlag
	}

	return nil
}

// GetAllFlags returns repository flags merged over the defaults, sorted by key.
func (s *Service) GetAllFlags(ctx context.Context) FlagList {
	merged := make(map[string]*Flag, len(s.defaultFlags))
	for k, v := range s.defaultFlags {
		merged[k] = v
	}

	flags, err := s.repo.GetAllFlags(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to get feature flags from repository, using defaults")
	} else {
		for k, v := range flags {
			merged[k] = v
		}

		s.mu.Lock()
		s.cache = flags
		s.cacheExpiry = time.Now().Add(s.cacheTTL)
		s.mu.Unlock()
	}

	list := FlagList{Items: make([]Flag, 0, len(merged))}
	for _, flag := range merged {
		list.Items = append(list.Items, *flag)
	}
	sort.Slice(list.Items, func(i, j int) bool {
		return list.Items[i].Key < list.Items[j].Key
	})
	return list
}

// SetFlags updates multiple feature flags atomically.
func (s *Service) SetFlags(ctx context.Context, flags []*Flag) error {
	if err := s.repo.SetFlags(ctx, flags); err != nil {
		return err
	}

	s.InvalidateCache()

	for _, flag := range flags {
		s.logger.Info().
			Str("flag", flag.Key).
			Bool("value", flag.Value).
			Msg("feature flag updated")
	}
	return nil
}

// InvalidateCache clears the cached flags, forcing a refresh on next access.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*Flag)
	s.cacheExpiry = time.Time{}
}

// IsEnabled returns true if the flag with the given key is enabled.
func (s *Service) IsEnabled(ctx context.Context, key string) bool {
	return s.GetFlag(ctx, key).BoolValue(false)
}

// ShowInsights reports whether the insights column is shown.
func (s *Service) ShowInsights(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagShowInsights)
}

// InteractiveForecastChart reports whether the interactive chart is embedded.
func (s *Service) InteractiveForecastChart(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagInteractiveForecastChart)
}

// RefreshPaused reports whether producers should skip their ticks.
func (s *Service) RefreshPaused(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagPauseRefresh)
}

func (s *Service) getCached(key string) *Flag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if time.Now().After(s.cacheExpiry) {
		return nil
	}
	return s.cache[key]
}

func (s *Service) setCached(key string, flag *Flag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[key] = flag
	if s.cacheExpiry.Before(time.Now()) {
		s.cacheExpiry = time.Now().Add(s.cacheTTL)
	}
}
