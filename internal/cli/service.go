package cli

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ravazquez/claimtrack/internal/cache"
	"github.com/ravazquez/claimtrack/internal/lifecycle"
	"github.com/ravazquez/claimtrack/internal/model"
	"github.com/ravazquez/claimtrack/internal/store"
)

// loadConfig merges defaults, the config file and CLAIMTRACK_* env vars.
func loadConfig() (model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return model.Config{}, fmt.Errorf("parse configuration: %w", err)
	}
	if cfg.Store.BaseURL == "" {
		return model.Config{}, fmt.Errorf("store.base_url is not configured (set it in the config file or CLAIMTRACK_STORE_BASE_URL)")
	}
	return cfg, nil
}

// loadConfigLenient is loadConfig without the base URL requirement, for
// commands that only inspect configuration.
func loadConfigLenient() (model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return model.Config{}, fmt.Errorf("parse configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger; --verbose switches to debug output.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return zcfg.Build()
}

// buildService wires the full stack: transport, retrying client, table
// cache, and lifecycle service.
func buildService() (*lifecycle.Service, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}

	transport := store.NewRESTTransport(cfg.Store.BaseURL, cfg.Store.Token, cfg.Store.Timeout)
	policy := store.Policy{
		MaxAttempts: cfg.Store.MaxAttempts,
		BaseDelay:   cfg.Store.BaseDelay,
		MaxDelay:    cfg.Store.MaxDelay,
		Retryable:   store.IsRetryable,
	}
	client := store.NewClient(
		transport,
		policy,
		store.NewCooldown(cfg.Store.Cooldown),
		rate.NewLimiter(rate.Limit(cfg.Store.RequestsPerSecond), cfg.Store.Burst),
		logger,
	)

	tables := cache.New(client, cfg.Cache.TTL, logger)
	svc, err := lifecycle.New(tables, cfg, lifecycle.NewLogNotifier(logger), logger)
	if err != nil {
		return nil, nil, err
	}
	return svc, logger, nil
}
