package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort string
	LogLevel logrus.Level

	JWTSecret  string
	SessionTTL time.Duration
	// SecureCookies marks the session cookie Secure; enable behind TLS.
	SecureCookies bool

	// ChallengeStart is the first day of the challenge; monthly winners are
	// materialised from its month onwards.
	ChallengeStart time.Time
	// GrandWinnerDate is when the leaderboard starts showing the grand winner.
	GrandWinnerDate time.Time
	// WinnerSchedule is a cron spec for automatic winner calculation. Empty disables it.
	WinnerSchedule string

	OperatorWorkers int

	SignInRateLimitRPS   float64
	SignInRateLimitBurst int

	CORSAllowedOrigins []string
}

// PostgresURL builds the lib/pq connection string.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:      "localhost",
		PostgresPort:         "5433",
		PostgresDB:           "postgres",
		PostgresUsername:     "postgres",
		PostgresPassword:     "testpassword",
		HTTPPort:             "9446",
		LogLevel:             logrus.InfoLevel,
		JWTSecret:            "local-development-secret",
		SessionTTL:           7 * 24 * time.Hour,
		ChallengeStart:       time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC),
		GrandWinnerDate:      time.Date(2027, time.January, 10, 0, 0, 0, 0, time.UTC),
		WinnerSchedule:       "0 6 10 * *",
		OperatorWorkers:      4,
		SignInRateLimitRPS:   1,
		SignInRateLimitBurst: 5,
		CORSAllowedOrigins:   []string{"*"},
	}

	setString := func(name string, target *string) {
		if v := os.Getenv(name); len(v) != 0 {
			*target = v
		}
	}

	setString("POSTGRES_ADDRESS", &env.PostgresAddress)
	setString("POSTGRES_PORT", &env.PostgresPort)
	setString("POSTGRES_DB", &env.PostgresDB)
	setString("POSTGRES_USERNAME", &env.PostgresUsername)
	setString("POSTGRES_PASSWORD", &env.PostgresPassword)
	setString("HTTP_PORT", &env.HTTPPort)
	setString("JWT_SECRET", &env.JWTSecret)

	// WINNER_SCHEDULE may be set to an empty string to switch the scheduler off.
	if v, ok := os.LookupEnv("WINNER_SCHEDULE"); ok {
		env.WinnerSchedule = strings.TrimSpace(v)
	}

	if v := os.Getenv("LOG_LEVEL"); len(v) != 0 {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		env.LogLevel = level
	}

	if v := os.Getenv("SESSION_TTL"); len(v) != 0 {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SESSION_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", v)
		}
		env.SessionTTL = ttl
	}

	if v := os.Getenv("SECURE_COOKIES"); len(v) != 0 {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SECURE_COOKIES: %w", err)
		}
		env.SecureCookies = secure
	}

	if v := os.Getenv("CHALLENGE_START"); len(v) != 0 {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("CHALLENGE_START: %w", err)
		}
		env.ChallengeStart = d
	}

	if v := os.Getenv("GRAND_WINNER_DATE"); len(v) != 0 {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("GRAND_WINNER_DATE: %w", err)
		}
		env.GrandWinnerDate = d
	}

	if v := os.Getenv("OPERATOR_WORKERS"); len(v) != 0 {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("OPERATOR_WORKERS: %w", err)
		}
		env.OperatorWorkers = n
	}

	if v := os.Getenv("SIGN_IN_RATE_LIMIT_RPS"); len(v) != 0 {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("SIGN_IN_RATE_LIMIT_RPS: %w", err)
		}
		env.SignInRateLimitRPS = f
	}

	if v := os.Getenv("SIGN_IN_RATE_LIMIT_BURST"); len(v) != 0 {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SIGN_IN_RATE_LIMIT_BURST: %w", err)
		}
		env.SignInRateLimitBurst = n
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); len(v) != 0 {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		env.CORSAllowedOrigins = origins
	}

	if env.WinnerSchedule != "" {
		if _, err := cron.ParseStandard(env.WinnerSchedule); err != nil {
			return nil, fmt.Errorf("WINNER_SCHEDULE: %w", err)
		}
	}

	return &env, nil
}
