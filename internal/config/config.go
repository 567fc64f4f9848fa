package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	GitHub  GitHubConfig
	Grading GradingConfig
	Ledger  LedgerConfig
}

type GitHubConfig struct {
	Token      string
	Owner      string
	Repo       string
	APIBaseURL string
}

type GradingConfig struct {
	Timezone     string
	SchedulePath string
	StatePath    string
}

// LedgerConfig enables the optional postgres audit trail. The ledger is off
// unless a host is configured.
type LedgerConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func Load() *Config {
	_ = godotenv.Load()

	owner, repo := splitRepository(os.Getenv("GITHUB_REPOSITORY"))

	return &Config{
		GitHub: GitHubConfig{
			Token:      getEnv("INPUT_TOKEN", os.Getenv("GITHUB_TOKEN")),
			Owner:      getEnv("GRADEBOT_OWNER", owner),
			Repo:       getEnv("GRADEBOT_REPO", repo),
			APIBaseURL: os.Getenv("GRADEBOT_API_URL"),
		},
		Grading: GradingConfig{
			Timezone:     getEnv("GRADEBOT_TIMEZONE", "America/Los_Angeles"),
			SchedulePath: os.Getenv("GRADEBOT_SCHEDULE"),
			StatePath:    getEnv("GRADEBOT_STATE", ".gradebot-state.env"),
		},
		Ledger: LedgerConfig{
			Host:     os.Getenv("LEDGER_DB_HOST"),
			Port:     getEnv("LEDGER_DB_PORT", "5432"),
			User:     getEnv("LEDGER_DB_USER", "gradebot"),
			Password: getEnv("LEDGER_DB_PASSWORD", "gradebot"),
			DBName:   getEnv("LEDGER_DB_NAME", "grade_requests"),
			SSLMode:  getEnv("LEDGER_DB_SSLMODE", "disable"),
		},
	}
}

// Enabled reports whether the audit ledger is configured
func (c LedgerConfig) Enabled() bool {
	return c.Host != ""
}

func splitRepository(full string) (string, string) {
	parts := strings.SplitN(full, "/", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
