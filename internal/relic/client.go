// Package relic is a read-only client for the Relic CoH2 leaderboard API.
//
// For one match it resolves unknown profile IDs by alias, fetches personal
// stats for every player concurrently with bounded parallelism, and absorbs
// per-player failures into "unavailable" markers; a match fetch as a whole
// never fails.
package relic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/coh2live/coh2live-go/internal/config"
	"github.com/coh2live/coh2live-go/pkg/coh2live/match"
)

const (
	defaultBaseURL   = "https://coh2-api.reliclink.com"
	pathPersonalStat = "/community/leaderboard/GetPersonalStat"
	pathLeaderboard  = "/community/leaderboard/getleaderboard2"
)

// ErrNotFound is returned when an alias lookup yields no profile.
var ErrNotFound = errors.New("profile not found")

// StatusError is a non-200 API response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// Client makes requests to the CoH2 leaderboard API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cfg        config.Stats
	logger     *slog.Logger

	mu         sync.RWMutex
	rankTotals map[int]int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an API client. logger may be nil to disable logging.
func NewClient(cfg config.Stats, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		cfg:        cfg,
		logger:     logger,
		rankTotals: make(map[int]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InitLeaderboards fetches the total number of ranked players for every
// known leaderboard. Totals feed relative ranks and level estimation;
// boards whose fetch failed keep an unknown total, and the combined
// error names every failed board without discarding the rest.
func (c *Client) InitLeaderboards(ctx context.Context) error {
	ids := AllLeaderboardIDs()
	sem := semaphore.NewWeighted(c.cfg.MaxConcurrent)

	totals := make([]int, len(ids))
	fetchErrs := make([]error, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			params := url.Values{}
			params.Set("title", "coh2")
			params.Set("count", "1")
			params.Set("leaderboard_id", fmt.Sprint(id))

			var resp leaderboardResponse
			if err := c.getJSONRetry(ctx, sem, pathLeaderboard, params, &resp); err != nil {
				fetchErrs[i] = fmt.Errorf("leaderboard %d (%s): %w", id, LeaderboardName(id), err)
				return nil
			}
			totals[i] = resp.RankTotal
			return nil
		})
	}
	g.Wait()

	stored := 0
	c.mu.Lock()
	for i, id := range ids {
		if fetchErrs[i] == nil {
			c.rankTotals[id] = totals[i]
			stored++
		}
	}
	c.mu.Unlock()

	c.logger.Info("initialized leaderboards", "stored", stored, "boards", len(ids))
	return errors.Join(fetchErrs...)
}

// RankTotal returns the cached total ranked player count of a leaderboard.
func (c *Client) RankTotal(leaderboardID int) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total, ok := c.rankTotals[leaderboardID]
	return total, ok && total > 0
}

// FetchMatch fetches stats for every player of the match. All requests run
// concurrently under one per-match limiter. The result always has one
// entry per player in roster order; players whose requests failed
// terminally, exhausted their retries, or were still pending when the
// overall fetch timeout fired are marked unavailable.
func (c *Client) FetchMatch(ctx context.Context, m *match.Match) []PlayerStats {
	players := m.Players()
	out := make([]PlayerStats, len(players))

	fctx, cancel := context.WithTimeout(ctx, c.cfg.FetchTimeout)
	defer cancel()

	sem := semaphore.NewWeighted(c.cfg.MaxConcurrent)
	var g errgroup.Group
	for i, p := range players {
		g.Go(func() error {
			out[i] = c.fetchPlayer(fctx, sem, m.Type, p)
			return nil
		})
	}
	g.Wait()
	return out
}

// fetchPlayer resolves and fetches one player's stats. Failures are
// absorbed: the returned PlayerStats has a nil Stats field.
func (c *Client) fetchPlayer(ctx context.Context, sem *semaphore.Weighted, t match.Type, p match.Player) PlayerStats {
	ps := PlayerStats{ProfileID: p.ProfileID, Prestige: -1}

	profileID := p.ProfileID
	if profileID <= 0 {
		id, err := c.lookupProfile(ctx, sem, p.Name)
		if err != nil {
			c.logger.Warn("profile lookup failed", "name", p.Name, "error", err)
			return ps
		}
		profileID = id
		ps.ProfileID = id
	}

	resp, err := c.getPersonalStat(ctx, sem, profileID)
	if err != nil {
		c.logger.Warn("stats fetch failed", "profile_id", profileID, "error", err)
		return ps
	}

	boardID := SoloLeaderboardID(t, p.Faction)
	c.fillPlayerStats(&ps, boardID, resp)
	return ps
}

// lookupProfile resolves a display name to a profile ID. When the API
// returns multiple candidates the closest alias by edit distance wins.
func (c *Client) lookupProfile(ctx context.Context, sem *semaphore.Weighted, name string) (int64, error) {
	aliases, err := json.Marshal([]string{name})
	if err != nil {
		return 0, err
	}
	params := url.Values{}
	params.Set("title", "coh2")
	params.Set("aliases", string(aliases))

	var resp personalStatResponse
	if err := c.getJSONRetry(ctx, sem, pathPersonalStat, params, &resp); err != nil {
		return 0, err
	}

	best := int64(0)
	bestDist := -1
	for _, g := range resp.StatGroups {
		for _, m := range g.Members {
			dist := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(m.Alias))
			if bestDist < 0 || dist < bestDist {
				best, bestDist = m.ProfileID, dist
			}
		}
	}
	if best <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return best, nil
}

func (c *Client) getPersonalStat(ctx context.Context, sem *semaphore.Weighted, profileID int64) (*personalStatResponse, error) {
	params := url.Values{}
	params.Set("title", "coh2")
	params.Set("profile_ids", fmt.Sprintf("[%d]", profileID))

	var resp personalStatResponse
	if err := c.getJSONRetry(ctx, sem, pathPersonalStat, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// fillPlayerStats copies identity data, the stats of the applicable
// leaderboard and the player's pre-made team entries from the response.
// A player with no entry on that board gets empty stats (zero games, no
// rank), not an unavailable marker.
func (c *Client) fillPlayerStats(ps *PlayerStats, boardID int, resp *personalStatResponse) {
	for _, g := range resp.StatGroups {
		for _, m := range g.Members {
			if m.ProfileID == ps.ProfileID {
				ps.Alias = m.Alias
				ps.SteamProfile = m.Name
				ps.Country = m.Country
				ps.Prestige = m.Level
			}
		}
	}

	ps.Teams = c.teamStats(ps.ProfileID, resp)

	stats := &LeaderboardStats{LeaderboardID: boardID}
	for _, s := range resp.LeaderboardStats {
		if s.LeaderboardID != boardID {
			continue
		}
		stats.Wins = s.Wins
		stats.Losses = s.Losses
		stats.Drops = s.Drops
		stats.Streak = s.Streak
		stats.Rating = optPositive(s.Rating)
		stats.Rank = optPositive(s.Rank)
		stats.RankLevel = optPositive(s.RankLevel)
		stats.HighestRank = optPositive(s.HighestRank)
		stats.HighestRankLevel = optPositive(s.HighestRankLevel)
		stats.RankTotal = optPositive(s.RankTotal)
		break
	}
	if stats.RankTotal == nil {
		if total, ok := c.RankTotal(boardID); ok {
			stats.RankTotal = &total
		}
	}
	ps.Stats = stats
}

// teamStats extracts the pre-made team entries of a profile: stat groups
// of sizes 2..4 the profile is a member of, joined with their entries on
// the team leaderboards.
func (c *Client) teamStats(profileID int64, resp *personalStatResponse) []TeamStats {
	var teams []TeamStats
	for _, g := range resp.StatGroups {
		if g.Type < 2 || g.Type > 4 {
			continue
		}
		members := make([]int64, 0, len(g.Members))
		inGroup := false
		for _, m := range g.Members {
			members = append(members, m.ProfileID)
			if m.ProfileID == profileID {
				inGroup = true
			}
		}
		if !inGroup {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })

		for _, s := range resp.LeaderboardStats {
			if s.StatGroupID != g.ID || !IsTeamLeaderboard(s.LeaderboardID) {
				continue
			}
			ts := TeamStats{
				LeaderboardID: s.LeaderboardID,
				Members:       members,
				Wins:          s.Wins,
				Losses:        s.Losses,
				Rank:          optPositive(s.Rank),
				RankLevel:     optPositive(s.RankLevel),
				HighestRank:   optPositive(s.HighestRank),
				RankTotal:     optPositive(s.RankTotal),
			}
			if ts.RankTotal == nil {
				if total, ok := c.RankTotal(s.LeaderboardID); ok {
					ts.RankTotal = &total
				}
			}
			teams = append(teams, ts)
		}
	}
	return teams
}

// getJSONRetry performs a GET with retries. Transient failures (network
// errors, timeouts, 408/429/5xx) back off exponentially up to the
// configured retry count; terminal failures (other statuses, malformed
// payloads) abort immediately.
func (c *Client) getJSONRetry(ctx context.Context, sem *semaphore.Weighted, path string, params url.Values, out any) error {
	op := func() error {
		err := c.getJSON(ctx, sem, path, params, out)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	bo := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewExponentialBackOff(backoff.WithInitialInterval(c.cfg.BackoffBase)),
			c.cfg.RetryCount,
		),
		ctx,
	)
	return backoff.Retry(op, bo)
}

// getJSON performs a single GET attempt under the per-match limiter and
// the per-request timeout.
func (c *Client) getJSON(ctx context.Context, sem *semaphore.Weighted, path string, params url.Values, out any) error {
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer sem.Release(1)

	rctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(rctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.URL.RawQuery = params.Encode()

	c.logger.Debug("GET", "url", req.URL.String())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return backoff.Permanent(fmt.Errorf("decoding %s response: %w", path, err))
	}
	return nil
}

// isTransient classifies request failures. Status errors are transient
// only for timeout, throttling and server-side codes; everything else
// that reached the network layer is assumed retryable.
func isTransient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusRequestTimeout ||
			se.StatusCode == http.StatusTooManyRequests ||
			se.StatusCode >= 500
	}
	return true
}
