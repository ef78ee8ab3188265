package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ixstats/engine/ixstats/atomic"
	"github.com/ixstats/engine/ixstats/clock"
	"github.com/ixstats/engine/ixstats/database/models"
	"github.com/ixstats/engine/ixstats/database/repositories"
	"github.com/uptrace/bun"
)

// Service is the policy engine facade: context extraction, validation,
// impact projection, recommendations, and persisted application.
type Service struct {
	db        *bun.DB
	nations   repositories.NationRepository
	synergies repositories.SynergyRepository
	extractor *Extractor
	validator *Validator
	impact    *ImpactCalculator
	generator *Generator
	applier   *Applier
	clk       clock.Clock
}

func NewService(db *bun.DB, nations repositories.NationRepository, synergies repositories.SynergyRepository, extractor *Extractor, impact *ImpactCalculator, clk clock.Clock) *Service {
	return &Service{
		db:        db,
		nations:   nations,
		synergies: synergies,
		extractor: extractor,
		validator: NewValidator(),
		impact:    impact,
		generator: NewGenerator(),
		applier:   NewApplier(),
		clk:       clk,
	}
}

// ContextFor assembles a fresh snapshot for the nation.
func (s *Service) ContextFor(ctx context.Context, nationID string) (*Context, error) {
	nation, err := s.nations.GetByNationID(ctx, nationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load nation for policy context: %w", err)
	}
	return s.extractor.ContextFromNation(nation, s.clk.Now(), s.liveSynergies(ctx)), nil
}

// liveSynergies loads the admin-maintained synergy table. A missing repository
// or a read failure yields no rows, which sends the calculator to its static
// registry fallback.
func (s *Service) liveSynergies(ctx context.Context) []atomic.Synergy {
	if s.synergies == nil {
		return nil
	}
	rows, err := s.synergies.GetAll(ctx)
	if err != nil {
		slog.Warn("Failed to load live synergy table",
			slog.String("type", "policy"),
			slog.Any("error", err))
		return nil
	}
	return synergiesFromRows(rows)
}

// synergiesFromRows maps stored synergy rows onto the calculator's shape.
func synergiesFromRows(rows []*models.ComponentSynergy) []atomic.Synergy {
	if len(rows) == 0 {
		return nil
	}
	synergies := make([]atomic.Synergy, 0, len(rows))
	for _, row := range rows {
		synergies = append(synergies, atomic.Synergy{
			ComponentA:   atomic.ComponentType(row.ComponentA),
			ComponentB:   atomic.ComponentType(row.ComponentB),
			Type:         atomic.SynergyType(row.SynergyType),
			BonusPercent: row.BonusPercent,
			Description:  row.Description,
		})
	}
	return synergies
}

func (s *Service) Validate(ctx context.Context, nationID string, p Policy) (ValidationResult, error) {
	snapshot, err := s.ContextFor(ctx, nationID)
	if err != nil {
		return ValidationResult{}, err
	}
	return s.validator.Validate(p, snapshot), nil
}

func (s *Service) CalculateImpact(ctx context.Context, nationID string, p Policy) (PolicyImpact, error) {
	snapshot, err := s.ContextFor(ctx, nationID)
	if err != nil {
		return PolicyImpact{}, err
	}
	return s.impact.Calculate(p, snapshot), nil
}

func (s *Service) Recommendations(ctx context.Context, nationID string) ([]Recommendation, error) {
	snapshot, err := s.ContextFor(ctx, nationID)
	if err != nil {
		return nil, err
	}
	return s.generator.Generate(snapshot), nil
}

// Apply validates, applies, and persists a policy in one transaction. A
// validation failure or apply error leaves no record behind; the caller gets
// a structured result either way, never a panic.
func (s *Service) Apply(ctx context.Context, nationID string, p Policy) (ApplyResult, error) {
	snapshot, err := s.ContextFor(ctx, nationID)
	if err != nil {
		return ApplyResult{}, err
	}

	validation := s.validator.Validate(p, snapshot)
	if !validation.Valid {
		return ApplyResult{
			Success:              false,
			UnifiedEffectiveness: snapshot.Cross.UnifiedEffectiveness,
			Error:                validation.Errors[0],
		}, nil
	}

	result := s.applier.Apply(p, snapshot)
	if !result.Success {
		return result, nil
	}

	changesJSON, err := json.Marshal(result.Changes)
	if err != nil {
		return ApplyResult{
			Success:              false,
			UnifiedEffectiveness: snapshot.Cross.UnifiedEffectiveness,
			Error:                fmt.Sprintf("failed to encode changes: %v", err),
		}, nil
	}

	record := &models.PolicyRecord{
		NationID:             nationID,
		Name:                 p.Name,
		PolicyType:           string(p.PolicyType),
		Category:             p.Category,
		Priority:             string(p.Priority),
		ImplementationCost:   p.ImplementationCost,
		Changes:              changesJSON,
		UnifiedEffectiveness: result.UnifiedEffectiveness,
		AppliedAt:            s.clk.Now(),
		CreatedAt:            time.Now(),
	}

	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return ApplyResult{
			Success:              false,
			UnifiedEffectiveness: snapshot.Cross.UnifiedEffectiveness,
			Error:                fmt.Sprintf("failed to persist policy record: %v", err),
		}, nil
	}

	slog.Info("Policy applied",
		slog.String("type", "policy"),
		slog.String("nation_id", nationID),
		slog.String("policy", p.Name),
		slog.Int("changes", len(result.Changes)))

	return result, nil
}
