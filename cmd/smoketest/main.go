// Command smoketest exercises the core API of a running server: readiness,
// recovery and volume reads, workout generation and exercise substitution.
// It exits non-zero on the first failure.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mkoskin/treeni/internal/logging"
	"github.com/mkoskin/treeni/internal/testhelpers"
)

const readyTimeout = 30 * time.Second

func waitForReady(ctx context.Context, client *http.Client, url string) error {
	deadline := time.Now().Add(readyTimeout)
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+"/api/healthy", nil)
		if err != nil {
			return fmt.Errorf("build readiness request: %w", err)
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("server not ready within %s", readyTimeout)
		}
		time.Sleep(time.Second)
	}
}

func checkGet(ctx context.Context, client *http.Client, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}

func checkGenerateWorkout(ctx context.Context, client *http.Client, url string) error {
	body, err := json.Marshal(map[string]int{"target_duration_minutes": 60})
	if err != nil {
		return fmt.Errorf("marshal generation request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		url+"/api/workouts/generate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("generate workout: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("generate workout: unexpected status %d", resp.StatusCode)
	}

	var plan struct {
		Exercises []json.RawMessage `json:"exercises"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return fmt.Errorf("decode workout plan: %w", err)
	}
	if len(plan.Exercises) == 0 {
		return fmt.Errorf("generated workout has no exercises")
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	client := &http.Client{Timeout: 10 * time.Second} //nolint:mnd,exhaustruct // generous request timeout.

	if err := waitForReady(ctx, client, url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	for _, path := range []string{"/api/recovery", "/api/volume", "/api/exercises/1"} {
		if err := checkGet(ctx, client, url, path); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "error checking endpoint", slog.Any("error", err))
			os.Exit(1)
		}
	}
	if err := checkGenerateWorkout(ctx, client, url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error generating workout", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
