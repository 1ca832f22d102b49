package euroleague

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/euroleague-stats/internal/platform/logging"
	"github.com/riskibarqy/euroleague-stats/internal/platform/resilience"
	"github.com/riskibarqy/euroleague-stats/internal/usecase"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, cfg ClientConfig) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.HTTPClient = server.Client()
	cfg.LiveBaseURL = server.URL
	cfg.APIBaseURL = server.URL
	cfg.FeedsBaseURL = server.URL + "/feeds/"
	cfg.RetryBackoff = time.Millisecond
	cfg.Logger = logging.NewNop()
	return NewClient(cfg)
}

func TestFetchGames_MapsClubsAndScores(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/competitions/E/seasons/E2023/games", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{
			"gameCode":7,"round":3,"date":"2023-10-19T20:00:00","played":true,
			"season":{"code":"E2023","year":2023},
			"phaseType":{"code":"RS"},
			"local":{"club":{"code":"PAN","name":"Panathinaikos","images":{"crest":"pan.png"}},"score":90},
			"road":{"club":{"code":"FEN","name":"Fenerbahce","images":{"crest":"fen.png"}},"score":84}
		},{
			"gameCode":8,"round":3,"date":"2023-10-20T20:00:00","played":false,
			"season":{"code":"E2023","year":2023},
			"phaseType":{"code":"RS"},
			"local":{"club":{"code":"MAD","name":"Real Madrid"}},
			"road":{"club":{"code":"BAR","name":"Barcelona"}}
		}]}`))
	}), ClientConfig{})

	games, err := client.FetchGames(context.Background(), "E", "E2023")
	require.NoError(t, err)
	require.Len(t, games, 2)

	first := games[0]
	require.Equal(t, 7, first.Gamecode)
	require.Equal(t, 2023, first.Season)
	require.Equal(t, "RS", first.Phase)
	require.Equal(t, "PAN", first.Home.Code)
	require.Equal(t, "fen.png", first.Away.Crest)
	require.Equal(t, 90, *first.HomeScore)
	require.Equal(t, 84, *first.AwayScore)

	require.False(t, games[1].Played)
	require.Nil(t, games[1].HomeScore)
}

func TestFetchShots_DecodesLooseCells(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Points", r.URL.Path)
		require.Equal(t, "12", r.URL.Query().Get("gamecode"))
		require.Equal(t, "E2022", r.URL.Query().Get("seasoncode"))
		_, _ = w.Write([]byte(`{"Rows":[{
			"NUM_ANOT":4,"TEAM":"OLY       ","ID_PLAYER":"P002   ","PLAYER":"SLOUKAS, KOSTAS",
			"ID_ACTION":"3FGM","ACTION":"Three Pointer","POINTS":3,"COORD_X":-650,"COORD_Y":210,
			"ZONE":"G","FASTBREAK":"0","SECOND_CHANCE":"1","POINTS_OFF_TURNOVER":"0","MINUTE":2,
			"CONSOLE":"08:14","POINTS_A":3,"POINTS_B":null,"UTC":"20221013190514"
		}]}`))
	}), ClientConfig{})

	shots, err := client.FetchShots(context.Background(), "E2022", 12)
	require.NoError(t, err)
	require.Len(t, shots, 1)

	shot := shots[0]
	require.Equal(t, 4, shot.NumAnot)
	require.Equal(t, "P002", shot.PlayerID)
	require.Equal(t, "3FGM", shot.ActionCode)
	require.Equal(t, float64(-650), shot.X)
	require.Equal(t, "1", shot.SecondChance)
	require.Nil(t, shot.PointsB)
}

func TestFetchShots_EmptyBodyMeansNoRows(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), ClientConfig{})

	shots, err := client.FetchShots(context.Background(), "E2022", 300)
	require.NoError(t, err)
	require.Empty(t, shots)
}

func TestFetchBoxScore_AddsTeamAndTotalRows(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Boxscore", r.URL.Path)
		_, _ = w.Write([]byte(`{"Stats":[
			{"PlayersStats":[{"Player_ID":"P1   ","Team":"MAD","Player":"ONE","Points":12,"Minutes":"25:10"}],
			 "tmr":{"Points":0,"DefensiveRebounds":2},
			 "totr":{"Points":88,"Minutes":"200:00"}},
			{"PlayersStats":[{"Player_ID":"P2","Team":"BAR","Player":"TWO","Points":"DNP","Minutes":"DNP"}],
			 "totr":{"Points":80}}
		]}`))
	}), ClientConfig{})

	rows, err := client.FetchBoxScore(context.Background(), "E2023", 1)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	require.Equal(t, "P1", rows[0].PlayerID)
	require.Equal(t, 1, rows[0].Home)
	require.Equal(t, float64(12), rows[0].Cells["Points"])

	require.Equal(t, "Team", rows[1].PlayerID)
	require.Equal(t, "MAD", rows[1].Team)
	require.Equal(t, "Total", rows[2].PlayerID)
	require.Equal(t, "200:00", rows[2].Cells["Minutes"])

	require.Equal(t, 0, rows[3].Home)
	require.Equal(t, "DNP", rows[3].Cells["Points"])
	require.Equal(t, "Total", rows[4].Player)
	require.Equal(t, "BAR", rows[4].Team)
}

func TestFetchPlayerStats_SplitsIdentityFromFields(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/feeds/v3/competitions/U/statistics/players/traditional", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "U2024", query.Get("seasonCode"))
		require.Equal(t, "PerGame", query.Get("statisticMode"))
		require.Equal(t, "8F", query.Get("phaseTypeCode"))
		require.Equal(t, "1000", query.Get("limit"))
		_, _ = w.Write([]byte(`{"players":[{
			"player":{"code":"009","name":"DOE, JOHN","age":24,"imageUrl":"doe.png","team":{"code":"HAP","name":"Hapoel"}},
			"pointsScored":17.5,"threePointersPercentage":"41.2%"
		}]}`))
	}), ClientConfig{})

	lines, err := client.FetchPlayerStats(context.Background(), usecase.PlayerStatsQuery{
		CompetitionCode: "U",
		SeasonCode:      "U2024",
		Endpoint:        "traditional",
		Phase:           "8F",
		StatisticMode:   "PerGame",
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	line := lines[0]
	require.Equal(t, "009", line.Code)
	require.Equal(t, 24, *line.Age)
	require.Equal(t, "HAP", line.TeamCode)
	require.Equal(t, 17.5, line.Fields["pointsScored"])
	require.NotContains(t, line.Fields, "player")
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"Rows":[]}`))
	}), ClientConfig{MaxRetries: 2})

	_, err := client.FetchShots(context.Background(), "E2023", 1)
	require.NoError(t, err)
	require.EqualValues(t, 3, calls.Load())
}

func TestClient_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad season", http.StatusBadRequest)
	}), ClientConfig{MaxRetries: 3})

	_, err := client.FetchGames(context.Background(), "E", "E1999")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=400")
	require.EqualValues(t, 1, calls.Load())
}

func TestClient_OpenCircuitRejectsWithDependencyUnavailable(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}), ClientConfig{
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	_, err := client.FetchShots(context.Background(), "E2023", 1)
	require.Error(t, err)
	require.False(t, errors.Is(err, usecase.ErrDependencyUnavailable))

	_, err = client.FetchShots(context.Background(), "E2023", 2)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	require.EqualValues(t, 1, calls.Load())
}

func TestClient_BadRequestDoesNotTripCircuit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "missing", http.StatusNotFound)
	}), ClientConfig{
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for gamecode := 1; gamecode <= 3; gamecode++ {
		_, err := client.FetchShots(context.Background(), "E2023", gamecode)
		require.Error(t, err)
		require.False(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	}
	require.EqualValues(t, 3, calls.Load())
}

func TestClient_CanceledContextStopsRetries(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cancel()
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}), ClientConfig{MaxRetries: 5})
	client.retryBackoff = time.Hour

	_, err := client.FetchShots(ctx, "E2023", 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFetchGames_CachesSeasonList(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"data":[{"gameCode":1,"season":{"code":"U2023","year":2023}}]}`))
	})
	client := newTestClient(t, handler, ClientConfig{})

	for i := 0; i < 3; i++ {
		games, err := client.FetchGames(context.Background(), "U", "U2023")
		require.NoError(t, err)
		require.Len(t, games, 1)
	}
	require.EqualValues(t, 1, calls.Load())

	_, err := client.FetchGames(context.Background(), "U", "U2024")
	require.NoError(t, err)
	require.EqualValues(t, 2, calls.Load())

	uncached := newTestClient(t, handler, ClientConfig{GamesCacheTTL: -1})
	for i := 0; i < 2; i++ {
		_, err := uncached.FetchGames(context.Background(), "U", "U2023")
		require.NoError(t, err)
	}
	require.EqualValues(t, 4, calls.Load())
}
