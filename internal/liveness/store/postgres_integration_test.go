//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"cardcheck/internal/liveness"
	"cardcheck/internal/liveness/store"
	"cardcheck/pkg/platform/sentinel"
	"cardcheck/pkg/testutil/containers"
)

type PostgresResultStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresResultStore
}

func TestPostgresResultStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresResultStoreSuite))
}

func (s *PostgresResultStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgresResultStore(s.postgres.Pool)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresResultStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "liveness_results"))
}

func newRecord(createdAt time.Time, analysis *liveness.Analysis) *liveness.ClassificationRecord {
	record := &liveness.ClassificationRecord{
		ID:         uuid.New(),
		FrameCount: 45,
		RequestID:  "req-" + uuid.NewString()[:8],
		CreatedAt:  createdAt.UTC().Truncate(time.Microsecond),
	}
	if analysis != nil {
		record.Result = *liveness.BuildResult(*analysis)
	} else {
		record.Result = liveness.Result{Reason: liveness.ReasonInsufficientFrames}
		record.FrameCount = 3
	}
	return record
}

func (s *PostgresResultStoreSuite) TestEnsureSchemaIsIdempotent() {
	s.NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresResultStoreSuite) TestSaveAndFindAnalyzedRecord() {
	ctx := context.Background()
	seqID := uuid.New()
	record := newRecord(time.Now(), &liveness.Analysis{
		DepthVariation: 0.865, HologramPresence: 0.482, MotionConsistency: 0.667, LightingVariation: 0.379,
	})
	record.SequenceID = &seqID

	s.Require().NoError(s.store.Save(ctx, record))

	got, err := s.store.FindByID(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(record.ID, got.ID)
	s.Require().NotNil(got.SequenceID)
	s.Equal(seqID, *got.SequenceID)
	s.Equal(record.Result, got.Result)
	s.True(record.CreatedAt.Equal(got.CreatedAt))
}

func (s *PostgresResultStoreSuite) TestSaveAndFindShortCircuitRecord() {
	ctx := context.Background()
	record := newRecord(time.Now(), nil)
	s.Require().NoError(s.store.Save(ctx, record))

	got, err := s.store.FindByID(ctx, record.ID)
	s.Require().NoError(err)
	s.Nil(got.SequenceID)
	s.Nil(got.Result.Analysis)
	s.Equal(liveness.ReasonInsufficientFrames, got.Result.Reason)
}

func (s *PostgresResultStoreSuite) TestDuplicateIsConflict() {
	ctx := context.Background()
	record := newRecord(time.Now(), nil)
	s.Require().NoError(s.store.Save(ctx, record))
	s.ErrorIs(s.store.Save(ctx, record), sentinel.ErrConflict)
}

func (s *PostgresResultStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(context.Background(), uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresResultStoreSuite) TestListRecent() {
	ctx := context.Background()
	base := time.Now()
	var ids []uuid.UUID
	for i := range 3 {
		r := newRecord(base.Add(time.Duration(i)*time.Second), nil)
		ids = append(ids, r.ID)
		s.Require().NoError(s.store.Save(ctx, r))
	}

	got, err := s.store.ListRecent(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(ids[2], got[0].ID)
	s.Equal(ids[1], got[1].ID)
}
