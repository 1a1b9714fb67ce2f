package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dayline/internal/models"
	"dayline/internal/service"
)

const macroEntryColumns = `id, user_id, protein, carbs, fats, calories, day_key, recorded_at, notes`

func (r *Postgres) GetMacroTarget(ctx context.Context, userID int) (*models.MacroTarget, error) {
	var t models.MacroTarget
	err := r.db.GetContext(ctx, &t,
		`SELECT id, user_id, protein, carbs, fats, updated_at FROM macro_targets WHERE user_id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select macro target: %w", err)
	}
	return &t, nil
}

func (r *Postgres) UpsertMacroTarget(ctx context.Context, userID int, protein, carbs, fats float64) (models.MacroTarget, error) {
	var t models.MacroTarget
	err := r.db.GetContext(ctx, &t, `
		INSERT INTO macro_targets (user_id, protein, carbs, fats, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET protein=EXCLUDED.protein, carbs=EXCLUDED.carbs,
			fats=EXCLUDED.fats, updated_at=NOW()
		RETURNING id, user_id, protein, carbs, fats, updated_at`,
		userID, protein, carbs, fats)
	if err != nil {
		return models.MacroTarget{}, fmt.Errorf("upsert macro target: %w", err)
	}
	return t, nil
}

func (r *Postgres) CreateMacroEntry(ctx context.Context, p service.CreateMacroEntryParams) (models.MacroEntry, error) {
	var e models.MacroEntry
	err := r.db.GetContext(ctx, &e, `
		INSERT INTO macro_entries (user_id, protein, carbs, fats, calories, day_key, recorded_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+macroEntryColumns,
		p.UserID, p.Protein, p.Carbs, p.Fats, p.Calories, p.DayKey, p.RecordedAt, p.Notes)
	if err != nil {
		return models.MacroEntry{}, fmt.Errorf("insert macro entry: %w", err)
	}
	return e, nil
}

func (r *Postgres) GetMacroEntryByID(ctx context.Context, id int) (*models.MacroEntry, error) {
	var e models.MacroEntry
	err := r.db.GetContext(ctx, &e, `SELECT `+macroEntryColumns+` FROM macro_entries WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select macro entry %d: %w", id, err)
	}
	return &e, nil
}

func (r *Postgres) UpdateMacroEntry(ctx context.Context, id int, p service.UpdateMacroEntryParams) (models.MacroEntry, error) {
	var e models.MacroEntry
	err := r.db.GetContext(ctx, &e, `
		UPDATE macro_entries SET protein=$1, carbs=$2, fats=$3, calories=$4, notes=COALESCE($5, notes)
		WHERE id=$6
		RETURNING `+macroEntryColumns,
		p.Protein, p.Carbs, p.Fats, p.Calories, p.Notes, id)
	if err != nil {
		return models.MacroEntry{}, fmt.Errorf("update macro entry %d: %w", id, err)
	}
	return e, nil
}

func (r *Postgres) DeleteMacroEntry(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM macro_entries WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete macro entry %d: %w", id, err)
	}
	return nil
}

func (r *Postgres) GetMacroEntriesForDay(ctx context.Context, userID int, dayKey string) ([]models.MacroEntry, error) {
	var entries []models.MacroEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT `+macroEntryColumns+` FROM macro_entries WHERE user_id=$1 AND day_key=$2 ORDER BY recorded_at, id`,
		userID, dayKey)
	if err != nil {
		return nil, fmt.Errorf("select macro entries for %s: %w", dayKey, err)
	}
	return entries, nil
}
