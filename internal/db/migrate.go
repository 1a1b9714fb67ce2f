package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

func RunMigrations(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS metrics (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL,
    slug TEXT NOT NULL,
    name TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('counter', 'value')),
    display_unit TEXT NOT NULL,
    canonical_unit TEXT NOT NULL,
    conversion_factor DOUBLE PRECISION NOT NULL CHECK (conversion_factor > 0),
    default_target DOUBLE PRECISION CHECK (default_target >= 0),
    color TEXT NOT NULL DEFAULT '',
    icon TEXT NOT NULL DEFAULT '',
    order_index INTEGER NOT NULL DEFAULT 0,
    input_type TEXT NOT NULL,
    deleted_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Active-slug uniqueness lives here, on the non-deleted partition only;
-- the service-level existence check is just the fast path.
CREATE UNIQUE INDEX IF NOT EXISTS metrics_user_slug_active_idx
    ON metrics (user_id, slug) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS quick_actions (
    id SERIAL PRIMARY KEY,
    metric_id INTEGER NOT NULL REFERENCES metrics(id) ON DELETE CASCADE,
    label TEXT NOT NULL,
    value DOUBLE PRECISION NOT NULL CHECK (value > 0),
    value_normalized DOUBLE PRECISION NOT NULL CHECK (value_normalized > 0),
    icon TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL DEFAULT 0 CHECK (position >= 0)
);

CREATE TABLE IF NOT EXISTS entries (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL,
    metric_id INTEGER NOT NULL REFERENCES metrics(id),
    value DOUBLE PRECISION NOT NULL CHECK (value >= 0),
    value_normalized DOUBLE PRECISION NOT NULL CHECK (value_normalized >= 0),
    unit TEXT NOT NULL,
    day_key TEXT NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    source TEXT NOT NULL CHECK (source IN ('manual', 'quick_action')),
    notes TEXT,
    display_value TEXT
);

CREATE INDEX IF NOT EXISTS entries_user_day_idx ON entries (user_id, day_key);
CREATE INDEX IF NOT EXISTS entries_user_metric_day_idx ON entries (user_id, metric_id, day_key);

CREATE TABLE IF NOT EXISTS macro_targets (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL UNIQUE,
    protein DOUBLE PRECISION NOT NULL CHECK (protein > 0),
    carbs DOUBLE PRECISION NOT NULL CHECK (carbs > 0),
    fats DOUBLE PRECISION NOT NULL CHECK (fats > 0),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS macro_entries (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL,
    protein DOUBLE PRECISION NOT NULL CHECK (protein >= 0),
    carbs DOUBLE PRECISION NOT NULL CHECK (carbs >= 0),
    fats DOUBLE PRECISION NOT NULL CHECK (fats >= 0),
    calories INTEGER NOT NULL CHECK (calories >= 0),
    day_key TEXT NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    notes TEXT
);

CREATE INDEX IF NOT EXISTS macro_entries_user_day_idx ON macro_entries (user_id, day_key);
`
	_, err := db.ExecContext(context.Background(), schema)
	return err
}
