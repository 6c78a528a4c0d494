package tournament_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KirkDiggler/knight-battles/internal/domain/battle"
	"github.com/KirkDiggler/knight-battles/internal/domain/knight"
	knighterr "github.com/KirkDiggler/knight-battles/internal/errors"
	"github.com/KirkDiggler/knight-battles/internal/repositories/rosters"
	mockrosters "github.com/KirkDiggler/knight-battles/internal/repositories/rosters/mock"
	"github.com/KirkDiggler/knight-battles/internal/services/tournament"
	"github.com/KirkDiggler/knight-battles/internal/testutils"
	mockuuid "github.com/KirkDiggler/knight-battles/internal/uuid/mocks"
)

type ServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	repository    *mockrosters.MockRepository
	uuidGenerator *mockuuid.MockGenerator
	logs          *observer.ObservedLogs
	service       tournament.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repository = mockrosters.NewMockRepository(s.ctrl)
	s.uuidGenerator = mockuuid.NewMockGenerator(s.ctrl)

	core, logs := observer.New(zap.InfoLevel)
	s.logs = logs

	s.service = tournament.NewService(&tournament.ServiceConfig{
		Repository:    s.repository,
		UUIDGenerator: s.uuidGenerator,
		Logger:        zap.New(core),
	})
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) TestNewService_Panics() {
	s.Panics(func() { tournament.NewService(nil) })
	s.Panics(func() { tournament.NewService(&tournament.ServiceConfig{}) })
}

func (s *ServiceTestSuite) TestRun_ReferenceRoster() {
	ctx := context.Background()
	s.uuidGenerator.EXPECT().New().Return("run-1")
	s.repository.EXPECT().List(ctx).Return(testutils.CreateTestRoster(), nil)

	report, err := s.service.Run(ctx)
	s.Require().NoError(err)

	s.Equal("run-1", report.RunID)
	s.Equal(battle.Result(testutils.ReferenceResult()), report.Results)
	s.Len(report.Fights, 2)

	entries := s.logs.FilterMessage("battle conducted").All()
	s.Require().Len(entries, 1)
	s.Equal("run-1", entries[0].ContextMap()["run_id"])
}

func (s *ServiceTestSuite) TestRun_CustomSchedule() {
	ctx := context.Background()
	svc := tournament.NewService(&tournament.ServiceConfig{
		Repository:    s.repository,
		UUIDGenerator: s.uuidGenerator,
		Schedule:      battle.Schedule{{First: "arthur", Second: "lancelot"}},
	})

	s.uuidGenerator.EXPECT().New().Return("run-2")
	s.repository.EXPECT().List(ctx).Return(map[string]*knight.Config{
		"arthur":   testutils.CreateTestArthur(),
		"lancelot": testutils.CreateTestLancelot(),
	}, nil)

	report, err := svc.Run(ctx)
	s.Require().NoError(err)

	// arthur: 70 - (85-55) = 40; lancelot: 100 - 115 floors at 0
	s.Equal(battle.Result{"Arthur": 40, "Lancelot": 0}, report.Results)
}

func (s *ServiceTestSuite) TestRun_RepositoryError() {
	ctx := context.Background()
	s.uuidGenerator.EXPECT().New().Return("run-3")
	s.repository.EXPECT().List(ctx).Return(nil, errors.New("redis down"))

	report, err := s.service.Run(ctx)
	s.Nil(report)
	s.Error(err)
	s.Contains(err.Error(), "redis down")
	s.Equal(1, s.logs.FilterMessage("failed to list roster").Len())
}

func (s *ServiceTestSuite) TestRun_MissingScheduledKnight() {
	ctx := context.Background()
	knights := testutils.CreateTestRoster()
	delete(knights, "arthur")

	s.uuidGenerator.EXPECT().New().Return("run-4")
	s.repository.EXPECT().List(ctx).Return(knights, nil)

	report, err := s.service.Run(ctx)
	s.Nil(report)
	s.True(knighterr.IsConfiguration(err))
}

func (s *ServiceTestSuite) TestRun_BattleAborted() {
	ctx := context.Background()
	knights := testutils.CreateTestRoster()
	knights["red_knight"].Power = -200

	s.uuidGenerator.EXPECT().New().Return("run-5")
	s.repository.EXPECT().List(ctx).Return(knights, nil)

	report, err := s.service.Run(ctx)
	s.Nil(report)
	s.True(knighterr.IsInvalidDamage(err))
	s.Equal(1, s.logs.FilterMessage("battle aborted").Len())
}

func (s *ServiceTestSuite) TestImportRoster() {
	ctx := context.Background()
	knights := testutils.CreateTestRoster()

	s.repository.EXPECT().Put(ctx, "arthur", knights["arthur"]).Return(nil)
	s.repository.EXPECT().Put(ctx, "lancelot", knights["lancelot"]).Return(nil)
	s.repository.EXPECT().Put(ctx, "mordred", knights["mordred"]).Return(nil)
	s.repository.EXPECT().Put(ctx, "red_knight", knights["red_knight"]).Return(nil)

	s.NoError(s.service.ImportRoster(ctx, knights))
	s.Equal(1, s.logs.FilterMessage("roster imported").Len())
}

func (s *ServiceTestSuite) TestImportRoster_InvalidRecordWritesNothing() {
	ctx := context.Background()
	knights := testutils.CreateTestRoster()
	knights["mordred"].Weapon = nil

	// no Put expectations: any call fails the test
	err := s.service.ImportRoster(ctx, knights)
	s.True(knighterr.IsConfiguration(err))
	s.Contains(err.Error(), `knight "mordred"`)
}

func (s *ServiceTestSuite) TestImportRoster_Empty() {
	err := s.service.ImportRoster(context.Background(), nil)
	s.True(knighterr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestImportRoster_RepositoryError() {
	ctx := context.Background()
	knights := map[string]*knight.Config{"arthur": testutils.CreateTestArthur()}

	s.repository.EXPECT().Put(ctx, "arthur", knights["arthur"]).
		Return(knighterr.WrapWithCode(errors.New("redis down"), knighterr.CodeInternal, "failed to store knight"))

	err := s.service.ImportRoster(ctx, knights)
	s.Equal(knighterr.CodeInternal, knighterr.GetCode(err))
}

// Import followed by a run against the real in-memory store
func TestImportThenRun_InMemory(t *testing.T) {
	ctx := context.Background()
	svc := tournament.NewService(&tournament.ServiceConfig{
		Repository: rosters.NewInMemoryRepository(),
	})

	if err := svc.ImportRoster(ctx, testutils.CreateTestRoster()); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	report, err := svc.Run(ctx)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if report.RunID == "" {
		t.Error("expected a run id")
	}
	for name, hp := range testutils.ReferenceResult() {
		if report.Results[name] != hp {
			t.Errorf("%s: expected hp %d, got %d", name, hp, report.Results[name])
		}
	}
}
