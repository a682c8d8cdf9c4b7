package config

import (
	"testing"
	"time"

	"github.com/gameday-relay/internal/pkg/validate"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "1337", cfg.AppPort)
	assert.Equal(t, "psids", cfg.DynamoTables.Subscribers)
	assert.Equal(t, 10, cfg.NHLTeamID)
	assert.Equal(t, 10*time.Minute, cfg.NotifyWindow)
	assert.Equal(t, "SafeStreams", cfg.RedditSubreddit)
	assert.Equal(t, "theavs", cfg.PostAuthor)
	assert.Equal(t, "leafs", cfg.PostKeyword)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("NHL_TEAM_ID", "22")
	t.Setenv("NOTIFY_WINDOW", "30m")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 22, cfg.NHLTeamID)
	assert.Equal(t, 30*time.Minute, cfg.NotifyWindow)
}

func TestValidation_RejectsMissingSecrets(t *testing.T) {
	cfg := Load()
	cfg.VerifyToken = ""
	cfg.PageAccessToken = ""

	err := validate.Struct(cfg)

	assert.ErrorContains(t, err, "VerifyToken")
}
