package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ravazquez/claimtrack/internal/index"
	"github.com/ravazquez/claimtrack/internal/model"
	"github.com/ravazquez/claimtrack/internal/store"
)

// TransitionFields carries the optional inputs of a generic transition.
type TransitionFields struct {
	Technicians []string
	Seal        string
	Annotation  string
}

// ApplyTransition validates and applies a transition to the target state.
// It is the generic entry point used by surfaces that work with a target
// state rather than a named action.
func (s *Service) ApplyTransition(ctx context.Context, claimID string, target model.Status, fields TransitionFields) error {
	switch target {
	case model.StatusInProgress:
		return s.Assign(ctx, claimID, fields.Technicians)
	case model.StatusResolved:
		return s.Resolve(ctx, claimID, ResolveInput{Seal: fields.Seal, Annotation: fields.Annotation})
	case model.StatusPending:
		return s.Revert(ctx, claimID)
	default:
		return validationf("no transition targets state %q", target)
	}
}

// Assign moves a claim from Pending to InProgress by giving it a non-empty
// technician set. Re-assigning an InProgress claim replaces the set; applying
// the same assignment twice leaves the row unchanged.
func (s *Service) Assign(ctx context.Context, claimID string, technicians []string) error {
	joined := model.JoinTechnicians(technicians)
	if joined == "" {
		return validationf("at least one technician is required")
	}

	_, ref, claim, err := s.locateClaim(ctx, claimID)
	if err != nil {
		return err
	}
	if claim.Status != model.StatusPending && claim.Status != model.StatusInProgress {
		return validationf("claim %s is %s; only pending claims can be assigned", claimID, claim.Status)
	}

	updates := []store.CellUpdate{
		{Range: store.CellRange(model.ClaimColStatus+1, ref.Row), Value: string(model.StatusInProgress)},
		{Range: store.CellRange(model.ClaimColTechnician+1, ref.Row), Value: joined},
	}
	if err := s.cache.WriteBatch(ctx, s.claims.Table, updates); err != nil {
		return fmt.Errorf("assign claim %s: %w", claimID, err)
	}

	s.notify(claimID, claim.Status, model.StatusInProgress, "assigned to "+joined)
	return nil
}

// ResolveInput carries the optional closing fields of a resolution.
type ResolveInput struct {
	Seal       string
	Annotation string
}

// Resolve closes an InProgress claim (or an active disconnection) by stamping
// the resolution time. A changed seal number is propagated to the client row;
// the claim write always goes first, and its failure aborts the whole
// transition with no client write attempted.
func (s *Service) Resolve(ctx context.Context, claimID string, in ResolveInput) error {
	_, ref, claim, err := s.locateClaim(ctx, claimID)
	if err != nil {
		return err
	}
	if claim.Status != model.StatusInProgress && claim.Status != model.StatusDisconnection {
		return validationf("claim %s is %s; only claims in progress can be resolved", claimID, claim.Status)
	}

	resolvedAt := s.now().In(s.loc)
	updates := []store.CellUpdate{
		{Range: store.CellRange(model.ClaimColStatus+1, ref.Row), Value: string(model.StatusResolved)},
		{Range: store.CellRange(model.ClaimColResolved+1, ref.Row), Value: model.FormatTime(resolvedAt)},
	}
	annotation := strings.TrimSpace(in.Annotation)
	if annotation != "" {
		updates = append(updates, store.CellUpdate{
			Range: store.CellRange(model.ClaimColAnnotation+1, ref.Row), Value: annotation,
		})
	}
	seal := strings.TrimSpace(in.Seal)
	sealChanged := seal != "" && seal != claim.Seal
	if sealChanged {
		updates = append(updates, store.CellUpdate{
			Range: store.CellRange(model.ClaimColSeal+1, ref.Row), Value: seal,
		})
	}

	if err := s.cache.WriteBatch(ctx, s.claims.Table, updates); err != nil {
		return fmt.Errorf("resolve claim %s: %w", claimID, err)
	}

	if sealChanged {
		if err := s.propagateSeal(ctx, claim.ClientNumber, seal); err != nil {
			return fmt.Errorf("resolve claim %s: seal propagation: %w", claimID, err)
		}
	}

	s.notify(claimID, claim.Status, model.StatusResolved, "resolved at "+model.FormatTime(resolvedAt))
	return nil
}

// propagateSeal updates the canonical client row with the new seal number.
func (s *Service) propagateSeal(ctx context.Context, clientNumber, seal string) error {
	snap, err := s.cache.Read(ctx, s.clients)
	if err != nil {
		return err
	}
	ref, err := index.Build(snap, model.ClientColNumber).Locate(clientNumber)
	if errors.Is(err, index.ErrNotFound) {
		// Claims can reference clients that never got a row; nothing to update.
		s.logger.Warn("no client row for seal propagation", zap.String("client", clientNumber))
		return nil
	}
	if err != nil {
		return err
	}
	updates := []store.CellUpdate{
		{Range: store.CellRange(model.ClientColSeal+1, ref.Row), Value: seal},
		{Range: store.CellRange(model.ClientColModified+1, ref.Row), Value: model.FormatTime(s.now().In(s.loc))},
	}
	return s.cache.WriteBatch(ctx, s.clients.Table, updates)
}

// Revert returns an InProgress claim to Pending, clearing the technician set
// and the resolution timestamp and touching nothing else.
func (s *Service) Revert(ctx context.Context, claimID string) error {
	_, ref, claim, err := s.locateClaim(ctx, claimID)
	if err != nil {
		return err
	}
	if claim.Status != model.StatusInProgress {
		return validationf("claim %s is %s; only claims in progress can be reverted", claimID, claim.Status)
	}

	updates := []store.CellUpdate{
		{Range: store.CellRange(model.ClaimColStatus+1, ref.Row), Value: string(model.StatusPending)},
		{Range: store.CellRange(model.ClaimColTechnician+1, ref.Row), Value: ""},
		{Range: store.CellRange(model.ClaimColResolved+1, ref.Row), Value: ""},
	}
	if err := s.cache.WriteBatch(ctx, s.claims.Table, updates); err != nil {
		return fmt.Errorf("revert claim %s: %w", claimID, err)
	}

	s.notify(claimID, claim.Status, model.StatusPending, "returned to pending")
	return nil
}

// Purge deletes resolved claims whose resolution timestamp is strictly older
// than the retention window. The eligible claims are returned; with dryRun
// set nothing is deleted. Rows from the snapshot are submitted in descending
// order so earlier deletions cannot shift the later addresses.
func (s *Service) Purge(ctx context.Context, dryRun bool) ([]model.Claim, error) {
	// Structural deletes need the freshest addresses available.
	snap, err := s.cache.Refresh(ctx, s.claims)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().In(s.loc).Add(-s.retention)
	var eligible []model.Claim
	var rows []int
	for offset, row := range snap.Rows {
		c := model.ClaimFromRow(row, s.loc)
		if c.Status != model.StatusResolved || c.ResolvedAt.IsZero() {
			continue
		}
		// Strictly older than the window; a claim exactly at the boundary stays.
		if c.ResolvedAt.Before(cutoff) {
			eligible = append(eligible, c)
			rows = append(rows, index.RowAddress(offset))
		}
	}

	if dryRun || len(rows) == 0 {
		return eligible, nil
	}

	if err := s.cache.DeleteRows(ctx, s.claims.Table, index.DeleteOrder(rows)); err != nil {
		return nil, fmt.Errorf("purge resolved claims: %w", err)
	}
	s.logger.Info("purged resolved claims",
		zap.Int("count", len(rows)),
		zap.Time("cutoff", cutoff))
	return eligible, nil
}
