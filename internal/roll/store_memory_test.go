package roll

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"voteguard/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
}

func (s *MemoryStoreSuite) seed(ids ...string) {
	ctx := context.Background()
	for _, id := range ids {
		s.Require().NoError(s.store.Insert(ctx, Voter{ID: id, Status: StatusActive}))
	}
}

func (s *MemoryStoreSuite) TestInsertAndGet() {
	ctx := context.Background()
	s.seed("V1")

	got, err := s.store.Get(ctx, "V1")
	s.NoError(err)
	s.Equal("V1", got.ID)

	s.Run("duplicate id rejected", func() {
		err := s.store.Insert(ctx, Voter{ID: "V1"})
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("unknown id not found", func() {
		_, err := s.store.Get(ctx, "missing")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestListPreservesInsertionOrder() {
	ctx := context.Background()
	s.seed("V3", "V1", "V2")

	voters, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(voters, 3)
	s.Equal("V3", voters[0].ID)
	s.Equal("V1", voters[1].ID)
	s.Equal("V2", voters[2].ID)

	// Order is stable across mutations.
	_, err = s.store.Update(ctx, "V1", func(v Voter) (Voter, error) {
		v.Status = StatusShifted
		return v, nil
	})
	s.Require().NoError(err)

	voters, err = s.store.List(ctx)
	s.Require().NoError(err)
	s.Equal("V1", voters[1].ID)
	s.Equal(StatusShifted, voters[1].Status)
}

func (s *MemoryStoreSuite) TestUpdateReplacesOnlyTarget() {
	ctx := context.Background()
	s.seed("V1", "V2")

	_, err := s.store.Update(ctx, "V1", func(v Voter) (Voter, error) {
		v.Status = StatusDeceased
		v.IsArchived = true
		return v, nil
	})
	s.Require().NoError(err)

	other, err := s.store.Get(ctx, "V2")
	s.Require().NoError(err)
	s.Equal(StatusActive, other.Status)
	s.False(other.IsArchived)
}

func (s *MemoryStoreSuite) TestUpdateMutationErrorAbortsReplacement() {
	ctx := context.Background()
	s.seed("V1")

	_, err := s.store.Update(ctx, "V1", func(v Voter) (Voter, error) {
		return v, sentinel.ErrInvalidTransition
	})
	s.ErrorIs(err, sentinel.ErrInvalidTransition)

	got, err := s.store.Get(ctx, "V1")
	s.Require().NoError(err)
	s.Equal(StatusActive, got.Status)
}

func (s *MemoryStoreSuite) TestUpdateUnknownIDNotFound() {
	_, err := s.store.Update(context.Background(), "missing", func(v Voter) (Voter, error) {
		return v, nil
	})
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestCopyOnWriteIsolation() {
	ctx := context.Background()
	s.Require().NoError(s.store.Insert(ctx, Voter{
		ID:             "V1",
		FlaggedReasons: []string{"original"},
	}))

	got, err := s.store.Get(ctx, "V1")
	s.Require().NoError(err)
	got.FlaggedReasons[0] = "tampered"

	fresh, err := s.store.Get(ctx, "V1")
	s.Require().NoError(err)
	s.Equal("original", fresh.FlaggedReasons[0])
}

func (s *MemoryStoreSuite) TestUpdateCannotRekeyRecord() {
	ctx := context.Background()
	s.seed("V1")

	updated, err := s.store.Update(ctx, "V1", func(v Voter) (Voter, error) {
		v.ID = "V9"
		return v, nil
	})
	s.Require().NoError(err)
	s.Equal("V1", updated.ID)

	_, err = s.store.Get(ctx, "V1")
	s.NoError(err)
}

func (s *MemoryStoreSuite) TestConcurrentUpdatesSerialize() {
	ctx := context.Background()
	s.seed("V1")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Update(ctx, "V1", func(v Voter) (Voter, error) {
				v.RiskScore++
				return v, nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	got, err := s.store.Get(ctx, "V1")
	s.Require().NoError(err)
	s.Equal(20, got.RiskScore)
}
