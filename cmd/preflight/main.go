// cmd/preflight/main.go
package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hamed0406/dashfetch/internal/config"
	"github.com/hamed0406/dashfetch/internal/fetch"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg := config.Load()

	// Upstream URL must be a sane http(s) address.
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Hostname() == "" {
		fail("BASE_URL is not a valid URL: " + cfg.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		fail("BASE_URL must be http or https, got " + u.Scheme)
	}
	ok("BASE_URL=" + cfg.BaseURL)

	// Can we even resolve the upstream host?
	dns := fetch.CheckDNS(fetch.ExtractHost(cfg.BaseURL))
	switch dns.Class {
	case fetch.DNSResolves:
		ok(fmt.Sprintf("%s resolves (%d addresses)", dns.Host, len(dns.IPs)))
	case fetch.DNSNxdomain:
		fail(dns.Host + " does not exist (NXDOMAIN) — fetches will all fail.")
	case fetch.DNSNoARecord:
		fail(dns.Host + " has no address records — nothing to connect to.")
	case fetch.DNSInvalid:
		fail("BASE_URL host looks invalid: " + dns.Host)
	default:
		warn(dns.Host + " did not resolve (resolver trouble?): " + dns.ResolverError)
	}

	if strings.TrimSpace(os.Getenv("API_ADDR")) == "" {
		warn("API_ADDR is empty; default 127.0.0.1:8080 will be used.")
	} else {
		ok("API_ADDR=" + cfg.Addr)
	}

	if cfg.HTTPTimeout < 100*time.Millisecond {
		warn(fmt.Sprintf("HTTP_TIMEOUT_MS=%d is very tight; upstream rarely answers that fast.", cfg.HTTPTimeout/time.Millisecond))
	} else {
		ok(fmt.Sprintf("HTTP timeout %v", cfg.HTTPTimeout))
	}

	if cfg.PostsLimit == 0 || cfg.TodosLimit == 0 {
		warn("a limit of 0 fetches every post/todo for the user; responses may be large.")
	}
	ok(fmt.Sprintf("user %d, posts limit %d, todos limit %d", cfg.UserID, cfg.PostsLimit, cfg.TodosLimit))

	if cfg.SlackWebhook == "" {
		warn("SLACK_WEBHOOK_URL empty — fetch failures will only be logged, not notified.")
	} else if !strings.HasPrefix(cfg.SlackWebhook, "https://hooks.slack.com/") {
		warn("SLACK_WEBHOOK_URL does not look like a Slack webhook.")
	} else {
		ok("Slack notifications configured")
	}

	if cfg.ResourcesFile != "" {
		if _, err := config.LoadCatalog(cfg.ResourcesFile); err != nil {
			fail("RESOURCES_FILE invalid: " + err.Error())
		}
		ok("RESOURCES_FILE=" + cfg.ResourcesFile)
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		warn("ALLOWED_ORIGINS defaults to * — fine for local use, tighten for anything shared.")
	} else {
		ok("ALLOWED_ORIGINS=" + strings.Join(cfg.AllowedOrigins, ","))
	}

	ok("preflight passed")
}
