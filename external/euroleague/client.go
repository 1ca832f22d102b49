package euroleague

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/euroleague-stats/internal/platform/cache"
	"github.com/riskibarqy/euroleague-stats/internal/platform/logging"
	"github.com/riskibarqy/euroleague-stats/internal/platform/resilience"
	"github.com/riskibarqy/euroleague-stats/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultLiveBaseURL  = "https://live.euroleague.net"
	defaultAPIBaseURL   = "https://api-live.euroleague.net"
	defaultFeedsBaseURL = "https://feeds.incrowdsports.com/provider/euroleague-feeds"

	defaultRetryBackoff  = time.Second
	defaultGamesCacheTTL = 10 * time.Minute
	maxPayloadBytes      = 6 << 20
	playerStatsLimit     = 1000
)

var errEuroleagueTransient = crerr.New("euroleague transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	LiveBaseURL    string
	APIBaseURL     string
	FeedsBaseURL   string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	RequestDelay   time.Duration
	// GamesCacheTTL keeps season game lists, which several datasets read.
	// Zero means 10 minutes, negative disables the cache.
	GamesCacheTTL  time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient   *http.Client
	liveBaseURL  string
	apiBaseURL   string
	feedsBaseURL string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	throttle     *resilience.Throttle
	flight       resilience.SingleFlight[[]byte]
	games        *cache.Store[[]usecase.ExternalGame]
}

var _ usecase.StatsProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}
	var games *cache.Store[[]usecase.ExternalGame]
	switch {
	case cfg.GamesCacheTTL == 0:
		games = cache.NewStore[[]usecase.ExternalGame](defaultGamesCacheTTL)
	case cfg.GamesCacheTTL > 0:
		games = cache.NewStore[[]usecase.ExternalGame](cfg.GamesCacheTTL)
	}

	return &Client{
		httpClient:   httpClient,
		liveBaseURL:  baseURLOrDefault(cfg.LiveBaseURL, defaultLiveBaseURL),
		apiBaseURL:   baseURLOrDefault(cfg.APIBaseURL, defaultAPIBaseURL),
		feedsBaseURL: baseURLOrDefault(cfg.FeedsBaseURL, defaultFeedsBaseURL),
		maxRetries:   maxInt(cfg.MaxRetries, 0),
		retryBackoff: retryBackoff,
		logger:       logger,
		breaker:      resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
		throttle:     resilience.NewThrottle(cfg.RequestDelay),
		games:        games,
	}
}

// FetchGames lists a season's games. Callers share the cached slice and must
// not modify it.
func (c *Client) FetchGames(ctx context.Context, competitionCode, seasonCode string) ([]usecase.ExternalGame, error) {
	if c.games == nil {
		return c.fetchGames(ctx, competitionCode, seasonCode)
	}
	return c.games.GetOrLoad(ctx, competitionCode+"|"+seasonCode, func(ctx context.Context) ([]usecase.ExternalGame, error) {
		return c.fetchGames(ctx, competitionCode, seasonCode)
	})
}

func (c *Client) fetchGames(ctx context.Context, competitionCode, seasonCode string) ([]usecase.ExternalGame, error) {
	path := fmt.Sprintf("/v2/competitions/%s/seasons/%s/games", url.PathEscape(competitionCode), url.PathEscape(seasonCode))

	var payload gamesEnvelope
	if err := c.doJSON(ctx, c.apiBaseURL+path, nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch games season=%s: %w", seasonCode, err)
	}

	out := make([]usecase.ExternalGame, 0, len(payload.Data))
	for _, item := range payload.Data {
		out = append(out, item.toExternal())
	}
	return out, nil
}

func (c *Client) FetchShots(ctx context.Context, seasonCode string, gamecode int) ([]usecase.ExternalShot, error) {
	query := url.Values{}
	query.Set("gamecode", strconv.Itoa(gamecode))
	query.Set("seasoncode", seasonCode)

	var payload pointsEnvelope
	if err := c.doJSON(ctx, c.liveBaseURL+"/api/Points", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch points season=%s gamecode=%d: %w", seasonCode, gamecode, err)
	}

	out := make([]usecase.ExternalShot, 0, len(payload.Rows))
	for _, row := range payload.Rows {
		out = append(out, row.toExternal())
	}
	return out, nil
}

func (c *Client) FetchBoxScore(ctx context.Context, seasonCode string, gamecode int) ([]usecase.ExternalBoxScoreRow, error) {
	query := url.Values{}
	query.Set("gamecode", strconv.Itoa(gamecode))
	query.Set("seasoncode", seasonCode)

	var payload boxScoreEnvelope
	if err := c.doJSON(ctx, c.liveBaseURL+"/api/Boxscore", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch boxscore season=%s gamecode=%d: %w", seasonCode, gamecode, err)
	}
	return payload.rows(), nil
}

func (c *Client) FetchPlayerStats(ctx context.Context, q usecase.PlayerStatsQuery) ([]usecase.ExternalPlayerStatLine, error) {
	path := fmt.Sprintf("/v3/competitions/%s/statistics/players/%s", url.PathEscape(q.CompetitionCode), url.PathEscape(q.Endpoint))

	query := url.Values{}
	query.Set("seasonMode", "Single")
	query.Set("seasonCode", q.SeasonCode)
	query.Set("statisticMode", q.StatisticMode)
	query.Set("phaseTypeCode", q.Phase)
	query.Set("limit", strconv.Itoa(playerStatsLimit))

	var payload playerStatsEnvelope
	if err := c.doJSON(ctx, c.feedsBaseURL+path, query, &payload); err != nil {
		return nil, fmt.Errorf("fetch player stats endpoint=%s season=%s phase=%s: %w", q.Endpoint, q.SeasonCode, q.Phase, err)
	}

	out := make([]usecase.ExternalPlayerStatLine, 0, len(payload.Players))
	for _, item := range payload.Players {
		out = append(out, playerStatLine(item))
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint string, query url.Values, target any) error {
	fullURL := endpoint
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		if c.breaker == nil {
			return c.executeRequest(ctx, fullURL)
		}
		var body []byte
		err := c.breaker.Execute(func() error {
			var reqErr error
			body, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isEuroleagueCircuitFailure)
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "euroleague circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: euroleague provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return body, err
	})
	if err != nil {
		return err
	}

	// the live API answers games without data with an empty 200
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.throttle.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %v", errEuroleagueTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errEuroleagueTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errEuroleagueTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "euroleague request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isEuroleagueCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return stderrors.Is(err, errEuroleagueTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func baseURLOrDefault(value, fallback string) string {
	value = strings.TrimRight(strings.TrimSpace(value), "/")
	if value == "" {
		return fallback
	}
	return value
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
