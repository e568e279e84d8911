// Package sqlite implementa RegistrationRepository sobre SQLite (ncruces/go-sqlite3).
// La unicidad la garantiza el índice UNIQUE sobre normalized_identifier.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/jhoicas/registro-empresas/internal/domain"
	"github.com/jhoicas/registro-empresas/internal/domain/entity"
	"github.com/jhoicas/registro-empresas/internal/domain/repository"
)

//go:embed schema.sql
var schema string

var _ repository.RegistrationRepository = (*Store)(nil)

const columns = `id, raw_identifier, normalized_identifier, identification_type, name, email, phone, address, registered_at, status`

// Store repositorio de registros sobre una base SQLite local.
type Store struct {
	db *sql.DB
}

// Open abre (o crea) la base en path y aplica el esquema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: crear directorio: %w", errors.Join(domain.ErrStorageUnavailable, err))
	}
	dsn := "file:" + path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(10000)&_pragma=synchronous(full)&_txlock=immediate"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir: %w", errors.Join(domain.ErrStorageUnavailable, err))
	}
	db.SetMaxOpenConns(4)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", errors.Join(domain.ErrStorageUnavailable, err))
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: aplicar esquema: %w", err)
	}
	return &Store{db: db}, nil
}

// FindByNormalizedIdentifier devuelve nil, nil si no existe.
func (s *Store) FindByNormalizedIdentifier(ctx context.Context, key string) (*entity.RegisteredEntity, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM registrations WHERE normalized_identifier = ?`, key)
	e, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, unavailable("buscar registro", err)
	}
	return e, nil
}

// InsertIfAbsent delega la atomicidad al índice único (ON CONFLICT DO NOTHING).
func (s *Store) InsertIfAbsent(ctx context.Context, e *entity.RegisteredEntity) (*entity.RegisteredEntity, error) {
	if e == nil || e.NormalizedIdentifier == "" {
		return nil, fmt.Errorf("sqlite: %w: clave normalizada vacía", domain.ErrInvalidInput)
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO registrations (`+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (normalized_identifier) DO NOTHING`, args(e)...)
	if err != nil {
		return nil, unavailable("insertar registro", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, unavailable("insertar registro", err)
	}
	if n == 0 {
		existing, err := s.FindByNormalizedIdentifier(ctx, e.NormalizedIdentifier)
		if err != nil {
			return nil, err
		}
		return existing, &domain.AlreadyRegisteredError{Existing: existing.Clone()}
	}
	return e.Clone(), nil
}

// Seed fusiona por clave normalizada dentro de una transacción.
func (s *Store) Seed(ctx context.Context, list []*entity.RegisteredEntity) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, unavailable("iniciar transacción", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO registrations (`+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (normalized_identifier) DO UPDATE SET
			id = excluded.id, raw_identifier = excluded.raw_identifier,
			identification_type = excluded.identification_type, name = excluded.name,
			email = excluded.email, phone = excluded.phone, address = excluded.address,
			registered_at = excluded.registered_at, status = excluded.status`)
	if err != nil {
		return 0, unavailable("preparar seed", err)
	}
	defer stmt.Close()

	for _, e := range list {
		if e == nil || e.NormalizedIdentifier == "" {
			return 0, fmt.Errorf("sqlite: %w: registro sin clave normalizada", domain.ErrInvalidInput)
		}
		if _, err := stmt.ExecContext(ctx, args(e)...); err != nil {
			return 0, unavailable("seed", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, unavailable("confirmar seed", err)
	}
	return len(list), nil
}

// List devuelve registros en orden de inserción (rowid).
func (s *Store) List(ctx context.Context, limit, offset int) ([]*entity.RegisteredEntity, error) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+columns+` FROM registrations ORDER BY rowid LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, unavailable("listar registros", err)
	}
	defer rows.Close()

	list := []*entity.RegisteredEntity{}
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, unavailable("leer registro", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Count número de registros.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, unavailable("contar registros", err)
	}
	return n, nil
}

// Close cierra la base.
func (s *Store) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scan(r scanner) (*entity.RegisteredEntity, error) {
	var e entity.RegisteredEntity
	var typ, registeredAt string
	if err := r.Scan(&e.ID, &e.RawIdentifier, &e.NormalizedIdentifier, &typ, &e.Name,
		&e.Email, &e.Phone, &e.Address, &registeredAt, &e.Status); err != nil {
		return nil, err
	}
	e.IdentificationType = entity.IdentificationType(typ)
	t, err := time.Parse(time.RFC3339Nano, registeredAt)
	if err != nil {
		return nil, fmt.Errorf("registered_at inválido %q: %w", registeredAt, err)
	}
	e.RegisteredAt = t
	return &e, nil
}

func args(e *entity.RegisteredEntity) []any {
	return []any{
		e.ID, e.RawIdentifier, e.NormalizedIdentifier, string(e.IdentificationType),
		e.Name, e.Email, e.Phone, e.Address,
		e.RegisteredAt.UTC().Format(time.RFC3339Nano), e.Status,
	}
}

func unavailable(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("sqlite: %s: %w", op, err)
	}
	return fmt.Errorf("sqlite: %s: %w", op, errors.Join(domain.ErrStorageUnavailable, err))
}
