//go:build integration

package roll

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"voteguard/pkg/platform/sentinel"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	store     *PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("voteguard"),
		tcpostgres.WithUsername("voteguard"),
		tcpostgres.WithPassword("voteguard"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.pool, err = pgxpool.New(ctx, dsn)
	s.Require().NoError(err)

	s.store = NewPostgres(s.pool)
	s.Require().NoError(s.store.EnsureSchema(ctx))
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE voters RESTART IDENTITY`)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	v := Voter{
		ID: "VOT-1", Name: "VIJAY KUMAR", Age: 44, DOB: "1980-01-10",
		Address: "Block 1", State: "Delhi", Zone: "North", District: "New Delhi",
		PollingStation: "Booth-200", LastVerifiedYear: 2023, RiskScore: 12,
		Status: StatusActive, FlaggedReasons: []string{},
		AadhaarMeta: &AadhaarMetadata{
			Initials: "VK", YearOfBirth: 1980, StateCode: "DL",
			LastUpdatedYear: 2022, SyncRevision: 1,
			Consistency: ConsistencyConsistent, IDHash: "HASH-1",
		},
	}
	s.Require().NoError(s.store.Insert(ctx, v))

	got, err := s.store.Get(ctx, "VOT-1")
	s.Require().NoError(err)
	s.Equal(v.Name, got.Name)
	s.Require().NotNil(got.AadhaarMeta)
	s.Equal("HASH-1", got.AadhaarMeta.IDHash)
	s.Nil(got.OtherIDMeta)
}

func (s *PostgresStoreSuite) TestInsertDuplicateConflicts() {
	ctx := context.Background()
	s.Require().NoError(s.store.Insert(ctx, Voter{ID: "VOT-1", Status: StatusActive}))
	s.ErrorIs(s.store.Insert(ctx, Voter{ID: "VOT-1", Status: StatusActive}), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestListOrderFollowsInsertion() {
	ctx := context.Background()
	for _, id := range []string{"VOT-3", "VOT-1", "VOT-2"} {
		s.Require().NoError(s.store.Insert(ctx, Voter{ID: id, Status: StatusActive}))
	}
	voters, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(voters, 3)
	s.Equal("VOT-3", voters[0].ID)
	s.Equal("VOT-1", voters[1].ID)
	s.Equal("VOT-2", voters[2].ID)
}

func (s *PostgresStoreSuite) TestUpdateAppendsHistory() {
	ctx := context.Background()
	s.Require().NoError(s.store.Insert(ctx, Voter{
		ID: "VOT-1", Status: StatusPending, IsFlagged: true,
		FlaggedReasons: []string{"inconsistency"},
	}))

	now := time.Now().UTC().Truncate(time.Second)
	updated, err := s.store.Update(ctx, "VOT-1", func(v Voter) (Voter, error) {
		v.Status = StatusDeceased
		v.IsArchived = true
		v.IsFlagged = false
		v.FlaggedHistory = append(v.FlaggedHistory, FlagHistory{
			Timestamp: now, ResolvedBy: "Officer A", Resolution: "Deceased",
			Remarks: "confirmed", OriginalFlags: v.FlaggedReasons,
		})
		v.FlaggedReasons = nil
		return v, nil
	})
	s.Require().NoError(err)
	s.True(updated.IsArchived)

	got, err := s.store.Get(ctx, "VOT-1")
	s.Require().NoError(err)
	s.Require().Len(got.FlaggedHistory, 1)
	s.Equal("Deceased", got.FlaggedHistory[0].Resolution)
	s.Equal([]string{"inconsistency"}, got.FlaggedHistory[0].OriginalFlags)
}

func (s *PostgresStoreSuite) TestUpdateUnknownNotFound() {
	_, err := s.store.Update(context.Background(), "missing", func(v Voter) (Voter, error) {
		return v, nil
	})
	s.ErrorIs(err, sentinel.ErrNotFound)
}
