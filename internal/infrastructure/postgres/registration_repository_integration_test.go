//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/registro-empresas/internal/domain"
	"github.com/jhoicas/registro-empresas/internal/domain/entity"
	"github.com/jhoicas/registro-empresas/internal/infrastructure/postgres"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	store     *postgres.RegistrationRepo
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("registro"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = ctr

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.Require().NoError(postgres.Migrate(dsn))
	s.Require().NoError(postgres.Migrate(dsn), "las migraciones deben ser idempotentes")

	s.pool, err = pgxpool.New(ctx, dsn)
	s.Require().NoError(err)
	s.store = postgres.NewRegistrationStore(s.pool)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Close()
	}
	_ = testcontainers.TerminateContainer(s.container)
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE registrations`)
	s.Require().NoError(err)
}

func newTestEntity(key string) *entity.RegisteredEntity {
	return &entity.RegisteredEntity{
		ID:                   uuid.NewString(),
		RawIdentifier:        key,
		NormalizedIdentifier: key,
		IdentificationType:   entity.IdentificationNIT,
		Name:                 "Acme",
		Email:                "a@acme.com",
		Phone:                "3000000001",
		Address:              "Cra 1 # 1-1",
		RegisteredAt:         time.Now().UTC().Truncate(time.Microsecond),
		Status:               entity.StatusActive,
	}
}

func (s *PostgresStoreSuite) TestInsertAndFindRoundTrip() {
	ctx := context.Background()
	e := newTestEntity("900674335")
	_, err := s.store.InsertIfAbsent(ctx, e)
	s.Require().NoError(err)

	found, err := s.store.FindByNormalizedIdentifier(ctx, "900674335")
	s.Require().NoError(err)
	s.Equal(e, found)
}

// TestConcurrentUniqueViolation: de N inserciones concurrentes con la misma clave
// exactamente una gana.
func (s *PostgresStoreSuite) TestConcurrentUniqueViolation() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.InsertIfAbsent(ctx, newTestEntity("900674335"))
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, domain.ErrAlreadyRegistered) {
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get conflict error")

	n, err := s.store.Count(ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *PostgresStoreSuite) TestSeedLastWriteWins() {
	ctx := context.Background()
	a := newTestEntity("900674335")
	a2 := newTestEntity("900674335")
	a2.Name = "Seeded Company A"
	b := newTestEntity("811033098")

	n, err := s.store.Seed(ctx, []*entity.RegisteredEntity{a, b, a2})
	s.Require().NoError(err)
	s.Equal(3, n)

	list, err := s.store.List(ctx, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Seeded Company A", list[0].Name)
}
