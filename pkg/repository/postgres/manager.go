package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhub/backend/pkg/auth"
	"github.com/taskhub/backend/pkg/security/session"
	"github.com/taskhub/backend/pkg/task"
)

// Querier is the subset of pgx used by the repositories. Both
// *pgxpool.Pool and pgx.Tx satisfy it, which lets the Manager hand out
// repositories bound to either.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Manager hands out repositories over one shared pool and runs scoped
// transactions.
type Manager struct {
	pool *pgxpool.Pool
	q    Querier
}

func NewManager(pool *pgxpool.Pool) *Manager {
	return &Manager{pool: pool, q: pool}
}

var _ auth.Repositories = (*Manager)(nil)
var _ auth.TxRunner = (*Manager)(nil)

func (m *Manager) Users() auth.UserRepository {
	return NewUserRepository(m.q)
}

func (m *Manager) ActionTokens() auth.ActionTokenRepository {
	return NewActionTokenRepository(m.q)
}

func (m *Manager) Tasks() task.Repository {
	return NewTaskRepository(m.q)
}

func (m *Manager) Sessions() session.Repository {
	return NewSessionRepository(m.q)
}

// InTx runs fn with repositories bound to one transaction: commit when fn
// returns nil, rollback on error or panic. Panics are rethrown.
func (m *Manager) InTx(ctx context.Context, fn func(r auth.Repositories) error) (err error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	err = fn(&Manager{pool: m.pool, q: tx})
	return err
}
