package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema tablas de documentos. El stock es una sola fila JSONB (id = 'main');
// los reportes usan la fecha ISO como clave.
const schema = `
CREATE TABLE IF NOT EXISTS stock_records (
	id         TEXT PRIMARY KEY,
	document   JSONB NOT NULL,
	version    BIGINT NOT NULL DEFAULT 1,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS shift_reports (
	report_date    TEXT PRIMARY KEY CHECK (report_date ~ '^\d{4}-\d{2}-\d{2}$'),
	supervisor     TEXT NOT NULL,
	unit           TEXT NOT NULL,
	shift          TEXT NOT NULL,
	morning        JSONB NOT NULL DEFAULT '[]',
	afternoon      JSONB NOT NULL DEFAULT '[]',
	dashboard_data JSONB,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_shift_reports_unit_shift ON shift_reports (unit, shift);
`

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
