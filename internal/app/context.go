package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/reelread/internal/cache"
	"github.com/oggyb/reelread/internal/config"
	"github.com/oggyb/reelread/internal/push"
	"github.com/oggyb/reelread/internal/storage"
)

// AppContext holds shared dependencies (DB, Redis, Logger, etc.)
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger

	// Push and Avatars are optional; services degrade when they are nil.
	Push    *push.Dispatcher
	Avatars *storage.Avatars
}

// Option sets an optional dependency.
type Option func(*AppContext)

func WithPush(d *push.Dispatcher) Option {
	return func(a *AppContext) { a.Push = d }
}

func WithAvatars(s *storage.Avatars) Option {
	return func(a *AppContext) { a.Avatars = s }
}

// New creates a new AppContext
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger, opts ...Option) *AppContext {
	if cfg == nil {
		cfg = &config.Config{}
	}
	a := &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
