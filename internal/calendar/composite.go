package calendar

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/zachd/stretch-my-time-off/internal/optimizer"
)

// CompositeProvider implements Provider with fallback strategy
// Primary: usually the remote API
// Fallback: builtin rules or a local file
type CompositeProvider struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewCompositeProvider creates a new CompositeProvider
func NewCompositeProvider(primary, fallback Provider, logger *zap.Logger) *CompositeProvider {
	return &CompositeProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Holidays tries the primary provider first
func (cp *CompositeProvider) Holidays(ctx context.Context, country, region string, year int) ([]optimizer.Holiday, error) {
	holidays, err := cp.primary.Holidays(ctx, country, region, year)
	if err == nil {
		return holidays, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	cp.logger.Warn("Primary holiday provider failed, falling back",
		zap.String("country", country),
		zap.Int("year", year),
		zap.Error(err))

	holidays, fallbackErr := cp.fallback.Holidays(ctx, country, region, year)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%v, fallback=%w", err, fallbackErr)
	}
	return holidays, nil
}

// LoadFallback loads the fallback provider (if FileProvider)
func (cp *CompositeProvider) LoadFallback() error {
	if fp, ok := cp.fallback.(*FileProvider); ok {
		if err := fp.Load(); err != nil {
			return fmt.Errorf("failed to load fallback holidays: %w", err)
		}
		cp.logger.Info("Fallback holidays loaded successfully")
	}
	return nil
}
