package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string        // API bind address, e.g., "127.0.0.1:8080" (Windows) or ":8080" (Docker)
	LogDir         string        // logs directory
	BaseURL        string        // upstream API root, e.g., https://jsonplaceholder.typicode.com
	UserID         int           // whose dashboard to assemble by default
	PostsLimit     int           // cap on fetched posts (0 = no cap)
	TodosLimit     int           // cap on fetched todos (0 = no cap)
	HTTPTimeout    time.Duration // per-request timeout against the upstream
	SlackWebhook   string        // empty disables Slack notifications
	AllowedOrigins []string      // CORS allowlist for the API
	ResourcesFile  string        // optional YAML file overriding the resource catalog
}

// Load reads a .env file if one is present, then builds the config from the
// environment. Variables already set in the environment win over the file.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	// Bind address (Windows-friendly default)
	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	// Logs
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	// Upstream API
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "https://jsonplaceholder.typicode.com"
	}

	userID := 1
	if v := os.Getenv("USER_ID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			userID = n
		}
	}

	postsLimit := 5
	if v := os.Getenv("POSTS_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			postsLimit = n
		}
	}

	todosLimit := 5
	if v := os.Getenv("TODOS_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			todosLimit = n
		}
	}

	timeout := 5 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	// Notifications (empty means disabled)
	webhook := os.Getenv("SLACK_WEBHOOK_URL")

	origins := []string{"*"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = origins[:0]
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Addr:           addr,
		LogDir:         logDir,
		BaseURL:        baseURL,
		UserID:         userID,
		PostsLimit:     postsLimit,
		TodosLimit:     todosLimit,
		HTTPTimeout:    timeout,
		SlackWebhook:   webhook,
		AllowedOrigins: origins,
		ResourcesFile:  os.Getenv("RESOURCES_FILE"),
	}
}
