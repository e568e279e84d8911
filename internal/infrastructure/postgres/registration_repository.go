package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/registro-empresas/internal/domain"
	"github.com/jhoicas/registro-empresas/internal/domain/entity"
	"github.com/jhoicas/registro-empresas/internal/domain/repository"
)

// Asegura que RegistrationRepo implementa repository.RegistrationRepository.
var _ repository.RegistrationRepository = (*RegistrationRepo)(nil)

const registrationColumns = `id, raw_identifier, normalized_identifier, identification_type, name, email, phone, address, registered_at, status`

// RegistrationRepo implementación del puerto RegistrationRepository sobre PostgreSQL.
// La unicidad la garantiza el índice único sobre normalized_identifier.
type RegistrationRepo struct {
	q      Querier
	pool   *pgxpool.Pool
	runner *TxRunner
}

// NewRegistrationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRegistrationRepository(q Querier) *RegistrationRepo {
	return &RegistrationRepo{q: q}
}

// NewRegistrationStore construye el adaptador dueño del pool (Seed transaccional, Close cierra el pool).
func NewRegistrationStore(pool *pgxpool.Pool) *RegistrationRepo {
	return &RegistrationRepo{q: pool, pool: pool, runner: NewTxRunner(pool)}
}

// FindByNormalizedIdentifier obtiene un registro por su clave normalizada.
func (r *RegistrationRepo) FindByNormalizedIdentifier(ctx context.Context, key string) (*entity.RegisteredEntity, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE normalized_identifier = $1`
	e, err := scanRegistration(r.q.QueryRow(ctx, query, key))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, unavailable("get registration", err)
	}
	return e, nil
}

// InsertIfAbsent inserta con ON CONFLICT DO NOTHING; si otra transacción ganó, devuelve su registro.
func (r *RegistrationRepo) InsertIfAbsent(ctx context.Context, e *entity.RegisteredEntity) (*entity.RegisteredEntity, error) {
	if e == nil || e.NormalizedIdentifier == "" {
		return nil, fmt.Errorf("insert registration: %w: clave normalizada vacía", domain.ErrInvalidInput)
	}
	query := `
		INSERT INTO registrations (` + registrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (normalized_identifier) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query, registrationArgs(e)...)
	if err != nil && !isUniqueViolation(err) {
		return nil, unavailable("insert registration", err)
	}
	if err == nil && cmd.RowsAffected() == 1 {
		return e.Clone(), nil
	}
	existing, ferr := r.FindByNormalizedIdentifier(ctx, e.NormalizedIdentifier)
	if ferr != nil {
		return nil, ferr
	}
	if existing == nil {
		// Conflicto sobre otra restricción (id duplicado): no es un registro previo.
		return nil, unavailable("insert registration", err)
	}
	return existing, &domain.AlreadyRegisteredError{Existing: existing.Clone()}
}

// Seed fusiona por clave normalizada (el último gana) en una sola transacción.
func (r *RegistrationRepo) Seed(ctx context.Context, list []*entity.RegisteredEntity) (int, error) {
	if r.runner == nil {
		return r.upsertAll(ctx, list)
	}
	var n int
	err := r.runner.Run(ctx, func(repo *RegistrationRepo) error {
		var err error
		n, err = repo.upsertAll(ctx, list)
		return err
	})
	return n, err
}

func (r *RegistrationRepo) upsertAll(ctx context.Context, list []*entity.RegisteredEntity) (int, error) {
	query := `
		INSERT INTO registrations (` + registrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (normalized_identifier) DO UPDATE SET
			id = EXCLUDED.id, raw_identifier = EXCLUDED.raw_identifier,
			identification_type = EXCLUDED.identification_type, name = EXCLUDED.name,
			email = EXCLUDED.email, phone = EXCLUDED.phone, address = EXCLUDED.address,
			registered_at = EXCLUDED.registered_at, status = EXCLUDED.status`
	for _, e := range list {
		if e == nil || e.NormalizedIdentifier == "" {
			return 0, fmt.Errorf("seed registrations: %w: registro sin clave normalizada", domain.ErrInvalidInput)
		}
		if _, err := r.q.Exec(ctx, query, registrationArgs(e)...); err != nil {
			return 0, unavailable("seed registration", err)
		}
	}
	return len(list), nil
}

// List devuelve registros en orden de registro con paginación.
func (r *RegistrationRepo) List(ctx context.Context, limit, offset int) ([]*entity.RegisteredEntity, error) {
	if offset < 0 {
		offset = 0
	}
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	query := `SELECT ` + registrationColumns + ` FROM registrations ORDER BY seq LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitArg, offset)
	if err != nil {
		return nil, unavailable("list registrations", err)
	}
	defer rows.Close()

	list := []*entity.RegisteredEntity{}
	for rows.Next() {
		e, err := scanRegistration(rows)
		if err != nil {
			return nil, unavailable("scan registration", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list registrations", err)
	}
	return list, nil
}

// Count número de registros.
func (r *RegistrationRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, unavailable("count registrations", err)
	}
	return n, nil
}

// Close cierra el pool si el repositorio es su dueño.
func (r *RegistrationRepo) Close() error {
	if r.pool != nil {
		r.pool.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*entity.RegisteredEntity, error) {
	var e entity.RegisteredEntity
	var typ string
	if err := row.Scan(&e.ID, &e.RawIdentifier, &e.NormalizedIdentifier, &typ, &e.Name,
		&e.Email, &e.Phone, &e.Address, &e.RegisteredAt, &e.Status); err != nil {
		return nil, err
	}
	e.IdentificationType = entity.IdentificationType(typ)
	e.RegisteredAt = e.RegisteredAt.UTC()
	return &e, nil
}

func registrationArgs(e *entity.RegisteredEntity) []any {
	return []any{
		e.ID, e.RawIdentifier, e.NormalizedIdentifier, string(e.IdentificationType),
		e.Name, e.Email, e.Phone, e.Address, e.RegisteredAt, e.Status,
	}
}
