package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ravazquez/claimtrack/internal/index"
	"github.com/ravazquez/claimtrack/internal/model"
	"github.com/ravazquez/claimtrack/internal/store"
)

// NewClaimInput is the intake form for a new claim.
type NewClaimInput struct {
	ClientNumber string
	Name         string
	Address      string
	Phone        string
	Sector       string
	Category     string
	Description  string
	Seal         string
	HandledBy    string
}

// Create registers a new claim. Ordinary categories start in Pending; the
// disconnect category starts directly in Disconnection. The client row is
// created or brought up to date as a side effect. A client with an active
// claim cannot open another.
func (s *Service) Create(ctx context.Context, in NewClaimInput) (model.Claim, error) {
	in.ClientNumber = strings.TrimSpace(in.ClientNumber)

	if err := s.validateNewClaim(in); err != nil {
		return model.Claim{}, err
	}
	sector, err := NormalizeSector(in.Sector)
	if err != nil {
		return model.Claim{}, err
	}

	snap, err := s.cache.Read(ctx, s.claims)
	if err != nil {
		return model.Claim{}, err
	}
	for _, row := range snap.Rows {
		existing := model.ClaimFromRow(row, s.loc)
		if existing.ClientNumber != in.ClientNumber {
			continue
		}
		if existing.Status.Active() || existing.Status == model.StatusDisconnection {
			return model.Claim{}, validationf(
				"client %s already has an unresolved claim (%s, %s)",
				in.ClientNumber, existing.ID, existing.Status)
		}
	}

	status := model.StatusPending
	if model.IsDisconnectCategory(in.Category) {
		status = model.StatusDisconnection
	}

	claim := model.Claim{
		ID:           s.newID(),
		ClientNumber: in.ClientNumber,
		Sector:       sector,
		Name:         strings.ToUpper(strings.TrimSpace(in.Name)),
		Address:      strings.ToUpper(strings.TrimSpace(in.Address)),
		Phone:        strings.TrimSpace(in.Phone),
		Category:     strings.TrimSpace(in.Category),
		Description:  strings.ToUpper(strings.TrimSpace(in.Description)),
		Status:       status,
		Seal:         strings.TrimSpace(in.Seal),
		HandledBy:    strings.ToUpper(strings.TrimSpace(in.HandledBy)),
		CreatedAt:    s.now().In(s.loc),
	}

	if err := s.cache.Append(ctx, s.claims.Table, claim.Row()); err != nil {
		return model.Claim{}, fmt.Errorf("create claim: %w", err)
	}

	// The claim row is the system of record; a failed client upsert leaves
	// contact data stale but must not fail the already-appended claim.
	if err := s.upsertClient(ctx, claim); err != nil {
		s.logger.Warn("client upsert failed after claim creation",
			zap.String("claim_id", claim.ID),
			zap.String("client", claim.ClientNumber),
			zap.Error(err))
	}

	s.notify(claim.ID, "", status, fmt.Sprintf("claim created for client %s", claim.ClientNumber))
	return claim, nil
}

func (s *Service) validateNewClaim(in NewClaimInput) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"client number", in.ClientNumber},
		{"name", in.Name},
		{"address", in.Address},
		{"sector", in.Sector},
		{"category", in.Category},
		{"handled by", in.HandledBy},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return validationf("required fields missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// NormalizeSector validates a sector against the accepted range and returns
// its canonical decimal form.
func NormalizeSector(raw string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return "", validationf("sector must be a number between %d and %d, got %q", model.SectorMin, model.SectorMax, raw)
	}
	if n < model.SectorMin || n > model.SectorMax {
		return "", validationf("sector must be between %d and %d, got %d", model.SectorMin, model.SectorMax, n)
	}
	return strconv.Itoa(n), nil
}

// upsertClient creates the client row on first contact, or writes only the
// contact fields that differ from the stored row. The first row matching the
// client number is canonical; duplicates are ignored.
func (s *Service) upsertClient(ctx context.Context, claim model.Claim) error {
	snap, err := s.cache.Read(ctx, s.clients)
	if err != nil {
		return err
	}

	ref, err := index.Build(snap, model.ClientColNumber).Locate(claim.ClientNumber)
	if errors.Is(err, index.ErrNotFound) {
		client := model.Client{
			Number:     claim.ClientNumber,
			Sector:     claim.Sector,
			Name:       claim.Name,
			Address:    claim.Address,
			Phone:      claim.Phone,
			Seal:       claim.Seal,
			ID:         s.newID(),
			ModifiedAt: s.now().In(s.loc),
		}
		return s.cache.Append(ctx, s.clients.Table, client.Row())
	}
	if err != nil {
		return err
	}

	existing := model.ClientFromRow(snap.Rows[index.RowOffset(ref.Row)], s.loc)
	var updates []store.CellUpdate
	for _, field := range []struct {
		col      int
		stored   string
		incoming string
	}{
		{model.ClientColSector, existing.Sector, claim.Sector},
		{model.ClientColName, strings.TrimSpace(existing.Name), claim.Name},
		{model.ClientColAddress, strings.TrimSpace(existing.Address), claim.Address},
		{model.ClientColPhone, existing.Phone, claim.Phone},
		{model.ClientColSeal, existing.Seal, claim.Seal},
	} {
		if field.incoming != field.stored {
			updates = append(updates, store.CellUpdate{
				Range: store.CellRange(field.col+1, ref.Row),
				Value: field.incoming,
			})
		}
	}
	if len(updates) == 0 {
		return nil
	}
	updates = append(updates, store.CellUpdate{
		Range: store.CellRange(model.ClientColModified+1, ref.Row),
		Value: model.FormatTime(s.now().In(s.loc)),
	})
	return s.cache.WriteBatch(ctx, s.clients.Table, updates)
}
