package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/euroleague-stats/internal/domain/gamelog"
	"github.com/riskibarqy/euroleague-stats/internal/domain/playerstats"
	"github.com/riskibarqy/euroleague-stats/internal/domain/schedule"
	"github.com/riskibarqy/euroleague-stats/internal/domain/shot"
	gamelogmock "github.com/riskibarqy/euroleague-stats/internal/mocks/domain/gamelog"
	playerstatsmock "github.com/riskibarqy/euroleague-stats/internal/mocks/domain/playerstats"
	schedulemock "github.com/riskibarqy/euroleague-stats/internal/mocks/domain/schedule"
	shotmock "github.com/riskibarqy/euroleague-stats/internal/mocks/domain/shot"
	"github.com/riskibarqy/euroleague-stats/internal/platform/logging"
	"github.com/riskibarqy/euroleague-stats/internal/platform/result"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type providerMock struct {
	mock.Mock
}

func (m *providerMock) FetchGames(ctx context.Context, competitionCode, seasonCode string) ([]ExternalGame, error) {
	args := m.Called(ctx, competitionCode, seasonCode)
	games, _ := args.Get(0).([]ExternalGame)
	return games, args.Error(1)
}

func (m *providerMock) FetchShots(ctx context.Context, seasonCode string, gamecode int) ([]ExternalShot, error) {
	args := m.Called(ctx, seasonCode, gamecode)
	shots, _ := args.Get(0).([]ExternalShot)
	return shots, args.Error(1)
}

func (m *providerMock) FetchBoxScore(ctx context.Context, seasonCode string, gamecode int) ([]ExternalBoxScoreRow, error) {
	args := m.Called(ctx, seasonCode, gamecode)
	rows, _ := args.Get(0).([]ExternalBoxScoreRow)
	return rows, args.Error(1)
}

func (m *providerMock) FetchPlayerStats(ctx context.Context, query PlayerStatsQuery) ([]ExternalPlayerStatLine, error) {
	args := m.Called(ctx, query)
	lines, _ := args.Get(0).([]ExternalPlayerStatLine)
	return lines, args.Error(1)
}

func newProviderMock(t *testing.T) *providerMock {
	m := &providerMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type counterMock struct {
	mock.Mock
}

func (m *counterMock) CountBySeason(ctx context.Context, table string, seasons []int) (map[int]int, error) {
	args := m.Called(ctx, table, seasons)
	counts, _ := args.Get(0).(map[int]int)
	return counts, args.Error(1)
}

func intPtr(v int) *int { return &v }

func seasonGames() []ExternalGame {
	return []ExternalGame{
		{
			Gamecode: 1, Season: 2023, Phase: "RS", Round: 1, Date: "2023-10-05T20:00:00", Played: true,
			Home: ExternalClub{Code: "MAD", Name: "Real Madrid", Crest: "mad.png"},
			Away: ExternalClub{Code: "BAR", Name: "FC Barcelona", Crest: "bar.png"},
			HomeScore: intPtr(88), AwayScore: intPtr(80),
		},
		{
			Gamecode: 2, Season: 2023, Phase: "RS", Round: 2, Date: "2023-10-12T20:00:00", Played: true,
			Home: ExternalClub{Code: "BAR", Name: "FC Barcelona", Crest: "bar.png"},
			Away: ExternalClub{Code: "MAD", Name: "Real Madrid", Crest: "mad.png"},
			HomeScore: intPtr(90), AwayScore: intPtr(70),
		},
		{
			Gamecode: 3, Season: 2023, Phase: "RS", Round: 3, Date: "2023-10-19T20:00:00",
			Home: ExternalClub{Code: "MAD", Name: "Real Madrid"},
			Away: ExternalClub{Code: "BAR", Name: "FC Barcelona"},
		},
	}
}

func newTestSyncService(provider StatsProvider, repos SyncRepositories, policy result.Policy) *SyncService {
	return NewSyncService(provider, repos, SyncConfig{MaxWorkers: 2, RowErrorPolicy: policy}, logging.NewNop())
}

func TestSyncService_Run_RejectsInvalidRequest(t *testing.T) {
	t.Parallel()

	service := newTestSyncService(newProviderMock(t), SyncRepositories{}, result.PolicySkip)
	cases := []SyncRequest{
		{Competition: "X", Datasets: []string{DatasetShots}, DryRun: true},
		{Competition: "E", FromSeason: 2024, ToSeason: 2020, Datasets: []string{DatasetShots}, DryRun: true},
		{Competition: "E", FromSeason: 1990, Datasets: []string{DatasetShots}, DryRun: true},
		{Competition: "E", Datasets: []string{"boxscores"}, DryRun: true},
		{Competition: "E", DryRun: true},
	}
	for i, req := range cases {
		if _, err := service.Run(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestSyncService_Run_RequiresWritersUnlessDryRun(t *testing.T) {
	t.Parallel()

	service := newTestSyncService(newProviderMock(t), SyncRepositories{}, result.PolicySkip)
	_, err := service.Run(context.Background(), SyncRequest{Competition: "E", Datasets: []string{DatasetSchedule}})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestSyncService_Run_ShotsAndAveragesShareOneFetch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := newProviderMock(t)
	shotRepo := shotmock.NewRepository(t)

	provider.On("FetchGames", mock.Anything, "E", "E2023").Return(seasonGames(), nil).Once()
	provider.On("FetchShots", mock.Anything, "E2023", 1).Return([]ExternalShot{
		{NumAnot: 1, PlayerID: "P1", ActionCode: "3FGM", Action: "Three Pointer", Points: float64(3), X: float64(0), Y: float64(700)},
		{NumAnot: 2, PlayerID: "P1", ActionCode: "2FGA", Action: "Missed Two Pointer", Points: float64(0), X: float64(0), Y: float64(10)},
		{NumAnot: 3, PlayerID: "P2", ActionCode: "FTM", Action: "Free Throw In", Points: float64(1)},
		{NumAnot: 4, PlayerID: "P2", ActionCode: "2FGM", Points: float64(2), X: "left", Y: float64(10)},
	}, nil).Once()
	provider.On("FetchShots", mock.Anything, "E2023", 2).Return([]ExternalShot{
		{NumAnot: 1, PlayerID: "P3", ActionCode: "2FGM", Points: "2", X: "0", Y: "50", UTC: "20231012201530"},
	}, nil).Once()

	shotRepo.
		On("UpsertShots", mock.Anything, "shot_data_euroleague", mock.MatchedBy(func(shots []shot.Shot) bool {
			return len(shots) == 3
		})).
		Return(nil).
		Once()
	shotRepo.
		On("UpsertAverages", mock.Anything, "shot_data_euroleague_averages", mock.MatchedBy(func(avgs []shot.ZoneAverage) bool {
			if len(avgs) != 2 {
				return false
			}
			// at the rim sorts before top 3
			return avgs[0].Zone == shot.ZoneAtTheRim && avgs[0].TotalShots == 2 && avgs[0].MadeShots == 1 &&
				avgs[1].Zone == shot.ZoneTopThree && avgs[1].ShotPercentage == 1
		})).
		Return(nil).
		Once()

	service := newTestSyncService(provider, SyncRepositories{Shots: shotRepo}, result.PolicySkip)
	got, err := service.Run(ctx, SyncRequest{
		Competition: "e",
		FromSeason:  2023,
		ToSeason:    2023,
		Datasets:    []string{"averages", "shots"},
	})
	require.NoError(t, err)
	require.Len(t, got.Datasets, 2)
	require.Equal(t, DatasetShots, got.Datasets[0].Dataset)
	require.Equal(t, 5, got.Datasets[0].Fetched)
	require.Equal(t, 1, got.Datasets[0].RowErrors)
	require.Equal(t, 3, got.Datasets[0].Written)
	require.Equal(t, DatasetAverages, got.Datasets[1].Dataset)
	require.Equal(t, 2, got.Datasets[1].Written)
}

func TestSyncService_Run_AbortPolicyStopsOnMalformedRow(t *testing.T) {
	t.Parallel()

	provider := newProviderMock(t)
	shotRepo := shotmock.NewRepository(t)

	provider.On("FetchGames", mock.Anything, "E", "E2023").Return(seasonGames()[:1], nil).Once()
	provider.On("FetchShots", mock.Anything, "E2023", 1).Return([]ExternalShot{
		{NumAnot: 1, ActionCode: "2FGM", Points: float64(2), X: float64(0), Y: "not-a-number"},
	}, nil).Once()

	service := newTestSyncService(provider, SyncRepositories{Shots: shotRepo}, result.PolicyAbort)
	got, err := service.Run(context.Background(), SyncRequest{
		Competition: "E", FromSeason: 2023, ToSeason: 2023, Datasets: []string{DatasetShots},
	})
	if !errors.Is(err, ErrRowRejected) {
		t.Fatalf("expected ErrRowRejected, got %v", err)
	}
	if got.Datasets[0].Status != syncStatusFailed {
		t.Fatalf("expected failed status, got %s", got.Datasets[0].Status)
	}
	shotRepo.AssertNotCalled(t, "UpsertShots", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncService_Run_ScheduleBuildsRecordsPerTeam(t *testing.T) {
	t.Parallel()

	provider := newProviderMock(t)
	scheduleRepo := schedulemock.NewRepository(t)

	provider.On("FetchGames", mock.Anything, "E", "E2023").Return(seasonGames(), nil).Once()

	var written []schedule.RecordEntry
	scheduleRepo.
		On("UpsertRecords", mock.Anything, "schedule_results_euroleague", mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(2).([]schedule.RecordEntry) }).
		Return(nil).
		Once()

	service := newTestSyncService(provider, SyncRepositories{Schedule: scheduleRepo}, result.PolicySkip)
	got, err := service.Run(context.Background(), SyncRequest{
		Competition: "E", FromSeason: 2023, ToSeason: 2023, Datasets: []string{DatasetSchedule},
	})
	require.NoError(t, err)
	require.Equal(t, 1, got.Datasets[0].Skipped)
	require.Len(t, written, 4)

	// FC Barcelona sorts first: lost at Madrid, then won at home
	require.Equal(t, "FC Barcelona", written[0].Team)
	require.Equal(t, "0-1", written[0].Record)
	require.Equal(t, schedule.LocationAway, written[0].Location)
	require.Equal(t, "1-1", written[1].Record)
	require.Equal(t, "Real Madrid", written[2].Team)
	require.Equal(t, "1-0", written[2].Record)
	require.Equal(t, "RS", written[3].PhaseGroup)
}

func TestSyncService_Run_GameLogsNumberRowsAcrossSeasons(t *testing.T) {
	t.Parallel()

	provider := newProviderMock(t)
	gamelogRepo := gamelogmock.NewRepository(t)

	provider.On("FetchGames", mock.Anything, "U", "U2022").Return([]ExternalGame{
		{Gamecode: 7, Season: 2022, Phase: "RS", Round: 5, Played: true, HomeScore: intPtr(1), AwayScore: intPtr(0)},
	}, nil).Once()
	provider.On("FetchGames", mock.Anything, "U", "U2023").Return([]ExternalGame{
		{Gamecode: 9, Season: 2023, Phase: "RS", Round: 1, Played: true, HomeScore: intPtr(1), AwayScore: intPtr(0)},
	}, nil).Once()
	provider.On("FetchBoxScore", mock.Anything, "U2022", 7).Return([]ExternalBoxScoreRow{
		{Home: 1, Team: "VAL", PlayerID: "P1", Player: "Alpha", Cells: map[string]any{"Points": float64(10), "Minutes": "20:00"}},
		{Home: 1, Team: "VAL", PlayerID: "Team", Player: "Team", Cells: map[string]any{"Points": "DNP"}},
	}, nil).Once()
	provider.On("FetchBoxScore", mock.Anything, "U2023", 9).Return([]ExternalBoxScoreRow{
		{Home: 0, Team: "VAL", PlayerID: "P1", Player: "Alpha", Cells: map[string]any{"Points": "12", "Plusminus": "-4"}},
		{Home: 0, Team: "VAL", PlayerID: "P9", Player: "Broken", Cells: map[string]any{"Points": "twelve"}},
	}, nil).Once()

	var written []gamelog.Row
	gamelogRepo.
		On("UpsertGameLogs", mock.Anything, "game_logs_eurocup", mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(2).([]gamelog.Row) }).
		Return(nil).
		Once()

	service := newTestSyncService(provider, SyncRepositories{GameLogs: gamelogRepo}, result.PolicySkip)
	got, err := service.Run(context.Background(), SyncRequest{
		Competition: "U", FromSeason: 2022, ToSeason: 2023, Datasets: []string{DatasetGameLogs},
	})
	require.NoError(t, err)
	require.Equal(t, 1, got.Datasets[0].RowErrors)
	require.Len(t, written, 3)

	require.Equal(t, "Alpha", written[0].Player)
	require.Equal(t, 2023, written[0].Season)
	require.Equal(t, 1, *written[0].GameSequence)
	require.Equal(t, -4.0, *written[0].PlusMinus)
	require.Equal(t, 2, *written[1].GameSequence)
	require.Equal(t, "2022-5", written[1].SeasonRound)
	require.Equal(t, gamelog.RowTypeTeam, written[2].RowType)
	require.Nil(t, written[2].GameSequence)
	require.Nil(t, written[2].Points)
}

func TestSyncService_Run_PlayerStatsToleratesEndpointFailure(t *testing.T) {
	t.Parallel()

	provider := newProviderMock(t)
	statsRepo := playerstatsmock.NewRepository(t)

	alpha := ExternalPlayerStatLine{Code: "P1", Name: "Alpha", TeamCode: "MAD", TeamName: "Real Madrid"}
	withFields := func(fields map[string]any) []ExternalPlayerStatLine {
		line := alpha
		line.Fields = fields
		return []ExternalPlayerStatLine{line}
	}
	isQuery := func(phase, endpoint string) any {
		return mock.MatchedBy(func(q PlayerStatsQuery) bool {
			return q.SeasonCode == "E2023" && q.Phase == phase && q.Endpoint == endpoint && q.StatisticMode == "PerGame"
		})
	}

	provider.On("FetchPlayerStats", mock.Anything, isQuery("RS", playerstats.EndpointTraditional)).
		Return(withFields(map[string]any{"pointsScored": float64(14.5), "twoPointersPercentage": "52.1%"}), nil).Once()
	provider.On("FetchPlayerStats", mock.Anything, isQuery("RS", playerstats.EndpointMisc)).
		Return(nil, errors.New("upstream 500")).Once()
	provider.On("FetchPlayerStats", mock.Anything, isQuery("RS", playerstats.EndpointScoring)).
		Return(withFields(map[string]any{"twoPointRate": "61%"}), nil).Once()
	provider.On("FetchPlayerStats", mock.Anything, isQuery("RS", playerstats.EndpointAdvanced)).
		Return(withFields(map[string]any{"pir": float64(99)}), nil).Once()
	for _, phase := range []string{"PI", "PO", "FF"} {
		for _, endpoint := range playerstats.Endpoints() {
			provider.On("FetchPlayerStats", mock.Anything, isQuery(phase, endpoint)).Return(nil, nil).Once()
		}
	}

	var written []playerstats.SeasonStats
	statsRepo.
		On("UpsertSeasonStats", mock.Anything, "player_stats_euroleague", mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(2).([]playerstats.SeasonStats) }).
		Return(nil).
		Once()

	service := newTestSyncService(provider, SyncRepositories{PlayerStats: statsRepo}, result.PolicySkip)
	got, err := service.Run(context.Background(), SyncRequest{
		Competition: "E", FromSeason: 2023, ToSeason: 2023, Datasets: []string{DatasetPlayerStats},
	})
	require.NoError(t, err)
	require.Equal(t, 1, got.Datasets[0].Skipped)
	require.Len(t, written, 1)

	stats := written[0]
	require.Equal(t, "RS", stats.Phase)
	require.Equal(t, "0.521", stats.Value("twoPointersPercentage").Decimal.String())
	require.Equal(t, "0.61", stats.Value("twoPointRate").Decimal.String())
	require.False(t, stats.Value("doubleDoubles").Valid)
	// pir belongs to the traditional endpoint and is dropped from advanced
	require.False(t, stats.Value("pir").Valid)
}

func TestSyncService_Run_DryRunSkipsWrites(t *testing.T) {
	t.Parallel()

	provider := newProviderMock(t)
	provider.On("FetchGames", mock.Anything, "E", "E2023").Return(seasonGames(), nil).Once()

	service := newTestSyncService(provider, SyncRepositories{}, result.PolicySkip)
	got, err := service.Run(context.Background(), SyncRequest{
		Competition: "E", FromSeason: 2023, ToSeason: 2023, Datasets: []string{DatasetSchedule}, DryRun: true,
	})
	require.NoError(t, err)
	require.True(t, got.DryRun)
	require.Equal(t, 4, got.Datasets[0].Written)
}

func TestSyncService_Run_FailedDatasetDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	provider := newProviderMock(t)
	scheduleRepo := schedulemock.NewRepository(t)

	provider.On("FetchGames", mock.Anything, "E", "E2023").Return(nil, ErrDependencyUnavailable).Once()
	provider.On("FetchGames", mock.Anything, "E", "E2023").Return(seasonGames(), nil).Once()
	scheduleRepo.On("UpsertRecords", mock.Anything, "schedule_results_euroleague", mock.Anything).Return(nil).Once()

	service := newTestSyncService(provider, SyncRepositories{Shots: shotmock.NewRepository(t), Schedule: scheduleRepo}, result.PolicySkip)
	got, err := service.Run(context.Background(), SyncRequest{
		Competition: "E", FromSeason: 2023, ToSeason: 2023, Datasets: []string{DatasetSchedule, DatasetShots},
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected joined dependency error, got %v", err)
	}
	require.Len(t, got.Datasets, 2)
	require.Equal(t, DatasetShots, got.Datasets[0].Dataset)
	require.Equal(t, syncStatusFailed, got.Datasets[0].Status)
	require.Equal(t, syncStatusSuccess, got.Datasets[1].Status)
}

func TestSyncService_Run_ReportsStoredRows(t *testing.T) {
	t.Parallel()

	provider := newProviderMock(t)
	scheduleRepo := schedulemock.NewRepository(t)
	counter := &counterMock{}
	counter.Test(t)
	t.Cleanup(func() { counter.AssertExpectations(t) })

	provider.On("FetchGames", mock.Anything, "E", "E2023").Return(seasonGames(), nil).Once()
	scheduleRepo.On("UpsertRecords", mock.Anything, "schedule_results_euroleague", mock.Anything).Return(nil).Once()
	counter.On("CountBySeason", mock.Anything, "schedule_results_euroleague", []int{2023}).
		Return(map[int]int{2023: 4}, nil).
		Once()

	service := newTestSyncService(provider, SyncRepositories{Schedule: scheduleRepo, Counter: counter}, result.PolicySkip)
	got, err := service.Run(context.Background(), SyncRequest{
		Competition: "E", FromSeason: 2023, ToSeason: 2023, Datasets: []string{DatasetSchedule},
	})
	require.NoError(t, err)
	require.Equal(t, map[int]int{2023: 4}, got.Datasets[0].StoredBySeason)
}

func TestSyncService_Run_CountFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	provider := newProviderMock(t)
	scheduleRepo := schedulemock.NewRepository(t)
	counter := &counterMock{}
	counter.Test(t)

	provider.On("FetchGames", mock.Anything, "E", "E2023").Return(seasonGames(), nil).Once()
	scheduleRepo.On("UpsertRecords", mock.Anything, "schedule_results_euroleague", mock.Anything).Return(nil).Once()
	counter.On("CountBySeason", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("relation missing")).Once()

	service := newTestSyncService(provider, SyncRepositories{Schedule: scheduleRepo, Counter: counter}, result.PolicySkip)
	got, err := service.Run(context.Background(), SyncRequest{
		Competition: "E", FromSeason: 2023, ToSeason: 2023, Datasets: []string{DatasetSchedule},
	})
	require.NoError(t, err)
	require.Equal(t, "success", got.Datasets[0].Status)
	require.Nil(t, got.Datasets[0].StoredBySeason)
}
