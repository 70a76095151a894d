// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source loads the Markdown dictionary from disk or over HTTP.
package source

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/dictgen/internal/httputil"
	"github.com/pdiddy/dictgen/pkg/types"
)

const defaultTimeout = 30 * time.Second

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Load returns the full text of the document at location, which is either
// a filesystem path or an http(s) URL. Errors name the location.
func Load(ctx context.Context, location string, cfg types.HTTPConfig) (string, error) {
	if !IsRemote(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return "", fmt.Errorf("reading source %s: %w", location, err)
		}
		return string(data), nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	data, err := httputil.GetWithRetry(ctx, client, location, cfg.UserAgent, cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("loading source: %w", err)
	}
	return string(data), nil
}
