package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// Webhook verification secret shared with the messaging platform.
	VerifyToken string `validate:"required"`

	// Messenger Send API.
	PageAccessToken string `validate:"required"`
	MessengerAPIURL string

	// Reddit feed credentials and filter.
	RedditClientID     string `validate:"required"`
	RedditClientSecret string `validate:"required"`
	RedditRefreshToken string `validate:"required"`
	RedditUserAgent    string
	RedditSubreddit    string
	PostAuthor         string
	PostKeyword        string

	// NHL schedule API.
	NHLAPIURL string
	NHLTeamID int

	// How close to faceoff the cron invocation must land for notifications
	// to go out.
	NotifyWindow time.Duration

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Subscribers string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "1337"),
		AppEnv:  getEnv("APP_ENV", "development"),

		VerifyToken: getEnv("VERIFY_TOKEN", ""),

		PageAccessToken: getEnv("PAGE_ACCESS_TOKEN", ""),
		MessengerAPIURL: getEnv("MESSENGER_API_URL", "https://graph.facebook.com/v2.6/me/messages"),

		RedditClientID:     getEnv("REDDIT_CLIENT_ID", ""),
		RedditClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		RedditRefreshToken: getEnv("REDDIT_REFRESH_TOKEN", ""),
		RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "gameday-relay/1.0"),
		RedditSubreddit:    getEnv("REDDIT_SUBREDDIT", "SafeStreams"),
		PostAuthor:         getEnv("POST_AUTHOR", "theavs"),
		PostKeyword:        getEnv("POST_KEYWORD", "leafs"),

		NHLAPIURL: getEnv("NHL_API_URL", "https://statsapi.web.nhl.com/api/v1"),
		NHLTeamID: getEnvInt("NHL_TEAM_ID", 10),

		NotifyWindow: getEnvDuration("NOTIFY_WINDOW", 10*time.Minute),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Subscribers: getEnv("DYNAMO_TABLE_SUBSCRIBERS", "psids"),
		},

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
