// Package lifecycle implements the claim state machine. It is the only path
// that mutates claim state: every transition resolves the claim's row against
// the freshest snapshot, validates the state change, and issues all of its
// field writes as one batch, so a transition is applied atomically or not at
// all.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ravazquez/claimtrack/internal/cache"
	"github.com/ravazquez/claimtrack/internal/index"
	"github.com/ravazquez/claimtrack/internal/model"
)

// Service drives claim transitions over the table cache.
type Service struct {
	cache     *cache.Cache
	claims    model.Schema
	clients   model.Schema
	notifier  Notifier
	logger    *zap.Logger
	loc       *time.Location
	retention time.Duration

	// stubbed in tests
	now   func() time.Time
	newID func() string
}

// New creates the lifecycle service. A nil notifier disables notifications;
// a nil logger disables logging.
func New(c *cache.Cache, cfg model.Config, notifier Notifier, logger *zap.Logger) (*Service, error) {
	loc, err := time.LoadLocation(cfg.Claims.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Claims.Timezone, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cache:     c,
		claims:    model.ClaimsSchema(cfg.Tables.Claims),
		clients:   model.ClientsSchema(cfg.Tables.Clients),
		notifier:  notifier,
		logger:    logger,
		loc:       loc,
		retention: time.Duration(cfg.Claims.RetentionDays) * 24 * time.Hour,
		now:       time.Now,
		newID:     shortID,
	}, nil
}

// shortID generates the legacy-compatible claim/client identifier format:
// the first eight hex characters of a UUIDv4, uppercased.
func shortID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// Filter narrows a claim listing.
type Filter struct {
	Status       model.Status
	Sector       string
	ClientNumber string
}

// List returns the claims from the current snapshot, newest first, after
// applying the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]model.Claim, error) {
	snap, err := s.cache.Read(ctx, s.claims)
	if err != nil {
		return nil, err
	}
	var claims []model.Claim
	for _, row := range snap.Rows {
		c := model.ClaimFromRow(row, s.loc)
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Sector != "" && c.Sector != strings.TrimSpace(f.Sector) {
			continue
		}
		if f.ClientNumber != "" && c.ClientNumber != strings.TrimSpace(f.ClientNumber) {
			continue
		}
		claims = append(claims, c)
	}
	for i, j := 0, len(claims)-1; i < j; i, j = i+1, j-1 {
		claims[i], claims[j] = claims[j], claims[i]
	}
	return claims, nil
}

// Get returns one claim by identifier.
func (s *Service) Get(ctx context.Context, claimID string) (model.Claim, error) {
	_, _, claim, err := s.locateClaim(ctx, claimID)
	return claim, err
}

// locateClaim resolves a claim to its current physical row. A failed locate
// forces one snapshot refresh and retries exactly once; a second miss
// surfaces as StaleIndexError.
func (s *Service) locateClaim(ctx context.Context, claimID string) (*cache.Snapshot, index.Ref, model.Claim, error) {
	snap, err := s.cache.Read(ctx, s.claims)
	if err != nil {
		return nil, index.Ref{}, model.Claim{}, err
	}

	ref, err := index.Build(snap, model.ClaimColID).Locate(claimID)
	if errors.Is(err, index.ErrNotFound) {
		snap, err = s.cache.Refresh(ctx, s.claims)
		if err != nil {
			return nil, index.Ref{}, model.Claim{}, err
		}
		ref, err = index.Build(snap, model.ClaimColID).Locate(claimID)
		if errors.Is(err, index.ErrNotFound) {
			return nil, index.Ref{}, model.Claim{}, &StaleIndexError{ClaimID: claimID}
		}
	}
	if err != nil {
		return nil, index.Ref{}, model.Claim{}, err
	}

	claim := model.ClaimFromRow(snap.Rows[index.RowOffset(ref.Row)], s.loc)
	return snap, ref, claim, nil
}

// notify delivers a transition event best effort. A misbehaving sink must
// not abort a committed transition.
func (s *Service) notify(claimID string, from, to model.Status, message string) {
	if s.notifier == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("notification sink panicked",
				zap.String("claim_id", claimID),
				zap.Any("panic", r))
		}
	}()
	s.notifier.OnTransition(claimID, from, to, message)
}
