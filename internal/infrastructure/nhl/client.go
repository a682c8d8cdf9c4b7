// Package nhl reads the public NHL schedule API.
package nhl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gameday-relay/internal/config"
)

// Client queries the schedule endpoint for a fixed team.
type Client struct {
	baseURL string
	teamID  int
	client  *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.NHLAPIURL,
		teamID:  cfg.NHLTeamID,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// scheduleResponse carries only the fields we read; gameDate is RFC 3339.
type scheduleResponse struct {
	Dates []struct {
		Games []struct {
			GameDate time.Time `json:"gameDate"`
		} `json:"games"`
	} `json:"dates"`
}

// NextGameTime returns the start time of the team's first game on date
// (YYYY-MM-DD). The second return is false when no game is scheduled.
func (c *Client) NextGameTime(ctx context.Context, date string) (time.Time, bool, error) {
	endpoint := fmt.Sprintf("%s/schedule?startDate=%s&endDate=%s&teamId=%d", c.baseURL, date, date, c.teamID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build schedule request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("schedule API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, false, fmt.Errorf("schedule API returned %s", resp.Status)
	}

	var sched scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&sched); err != nil {
		return time.Time{}, false, fmt.Errorf("decode schedule response: %w", err)
	}

	if len(sched.Dates) == 0 || len(sched.Dates[0].Games) == 0 {
		return time.Time{}, false, nil
	}
	return sched.Dates[0].Games[0].GameDate, true, nil
}
