package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"dayline/internal/models"
)

// CalculateCalories derives calories from macro grams using the Atwater
// factors (4/4/9). Every call site (entry preview, stored totals, day
// summaries) goes through this one function so rounding never drifts.
func CalculateCalories(protein, carbs, fats float64) int {
	return int(math.Round(protein*4 + carbs*4 + fats*9))
}

// MacroService tracks protein/carbs/fats entries and daily targets. Values
// are always grams; there is no unit normalization on this track.
type MacroService struct {
	repo Repository
	now  func() time.Time
}

func NewMacroService(repo Repository) *MacroService {
	return &MacroService{repo: repo, now: time.Now}
}

type MacroEntryInput struct {
	Protein    float64    `json:"protein"`
	Carbs      float64    `json:"carbs"`
	Fats       float64    `json:"fats"`
	Notes      *string    `json:"notes,omitempty"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

type MacroDayTotals struct {
	DayKey   string             `json:"day_key"`
	Protein  float64            `json:"protein"`
	Carbs    float64            `json:"carbs"`
	Fats     float64            `json:"fats"`
	Calories int                `json:"calories"`
	Entries  []models.MacroEntry `json:"entries"`
	Target   *models.MacroTarget `json:"target,omitempty"`
}

// SetTargets creates or replaces the user's daily macro targets.
func (s *MacroService) SetTargets(ctx context.Context, userID int, protein, carbs, fats float64) (models.MacroTarget, error) {
	if protein <= 0 || carbs <= 0 || fats <= 0 {
		return models.MacroTarget{}, validationf("macro targets must be > 0")
	}
	return s.repo.UpsertMacroTarget(ctx, userID, protein, carbs, fats)
}

// UpdateTargets is SetTargets requiring that targets already exist.
func (s *MacroService) UpdateTargets(ctx context.Context, userID int, protein, carbs, fats float64) (models.MacroTarget, error) {
	if protein <= 0 || carbs <= 0 || fats <= 0 {
		return models.MacroTarget{}, validationf("macro targets must be > 0")
	}
	existing, err := s.repo.GetMacroTarget(ctx, userID)
	if err != nil {
		return models.MacroTarget{}, fmt.Errorf("load macro target: %w", err)
	}
	if existing == nil {
		return models.MacroTarget{}, notFound("macro target", userID)
	}
	return s.repo.UpsertMacroTarget(ctx, userID, protein, carbs, fats)
}

// GetTargets returns the user's targets with derived total calories, nil
// when none are set.
func (s *MacroService) GetTargets(ctx context.Context, userID int) (*models.MacroTarget, error) {
	return s.repo.GetMacroTarget(ctx, userID)
}

// AddEntry records one macro observation; calories are derived, never
// supplied by the caller.
func (s *MacroService) AddEntry(ctx context.Context, userID int, in MacroEntryInput) (models.MacroEntry, error) {
	if in.Protein < 0 || in.Carbs < 0 || in.Fats < 0 {
		return models.MacroEntry{}, validationf("macro values must be >= 0")
	}
	if in.Protein == 0 && in.Carbs == 0 && in.Fats == 0 {
		return models.MacroEntry{}, validationf("at least one macro value must be > 0")
	}
	recordedAt := s.now()
	if in.RecordedAt != nil {
		recordedAt = *in.RecordedAt
	}
	return s.repo.CreateMacroEntry(ctx, CreateMacroEntryParams{
		UserID:     userID,
		Protein:    in.Protein,
		Carbs:      in.Carbs,
		Fats:       in.Fats,
		Calories:   CalculateCalories(in.Protein, in.Carbs, in.Fats),
		DayKey:     models.DayKeyOf(recordedAt),
		RecordedAt: recordedAt,
		Notes:      in.Notes,
	})
}

// UpdateEntry replaces an entry's macro values and recomputes calories.
func (s *MacroService) UpdateEntry(ctx context.Context, entryID int, in MacroEntryInput) (models.MacroEntry, error) {
	if in.Protein < 0 || in.Carbs < 0 || in.Fats < 0 {
		return models.MacroEntry{}, validationf("macro values must be >= 0")
	}
	entry, err := s.repo.GetMacroEntryByID(ctx, entryID)
	if err != nil {
		return models.MacroEntry{}, fmt.Errorf("load macro entry %d: %w", entryID, err)
	}
	if entry == nil {
		return models.MacroEntry{}, notFound("macro entry", entryID)
	}
	return s.repo.UpdateMacroEntry(ctx, entry.ID, UpdateMacroEntryParams{
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fats:     in.Fats,
		Calories: CalculateCalories(in.Protein, in.Carbs, in.Fats),
		Notes:    in.Notes,
	})
}

func (s *MacroService) DeleteEntry(ctx context.Context, entryID int) error {
	entry, err := s.repo.GetMacroEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("load macro entry %d: %w", entryID, err)
	}
	if entry == nil {
		return notFound("macro entry", entryID)
	}
	return s.repo.DeleteMacroEntry(ctx, entry.ID)
}

// GetDayTotals sums the day's macro entries and derives total calories the
// same way individual entries do.
func (s *MacroService) GetDayTotals(ctx context.Context, userID int, dayKey string) (MacroDayTotals, error) {
	if err := validateDayKey(dayKey); err != nil {
		return MacroDayTotals{}, err
	}
	entries, err := s.repo.GetMacroEntriesForDay(ctx, userID, dayKey)
	if err != nil {
		return MacroDayTotals{}, fmt.Errorf("load macro entries for %s: %w", dayKey, err)
	}
	totals := MacroDayTotals{DayKey: dayKey, Entries: entries}
	for _, e := range entries {
		totals.Protein += e.Protein
		totals.Carbs += e.Carbs
		totals.Fats += e.Fats
	}
	totals.Calories = CalculateCalories(totals.Protein, totals.Carbs, totals.Fats)
	target, err := s.repo.GetMacroTarget(ctx, userID)
	if err != nil {
		return MacroDayTotals{}, fmt.Errorf("load macro target: %w", err)
	}
	totals.Target = target
	return totals, nil
}
