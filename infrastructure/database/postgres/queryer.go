package postgres

import (
	"context"
	"database/sql"
)

// Queryer é o subconjunto de operações satisfeito tanto por *sql.DB quanto
// por *sql.Tx, permitindo que os repositórios rodem dentro ou fora de
// transações
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
