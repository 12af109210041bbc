// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides shared HTTP helpers.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// BackoffBase controls the starting backoff on HTTP 429 responses. arXiv
// rate-limits aggressively, so the default is deliberately generous. Tests
// override this to avoid real sleeps.
var BackoffBase = 5 * time.Second

const defaultMaxRetries = 3

// DoWithRetry executes req and retries on HTTP 429 (Too Many Requests) with
// exponential backoff, doubling the wait each attempt. Each backoff is
// announced on w. When maxRetries is 0 the default (3) is used. The response
// body is drained and closed before each retry. A cancelled context during a
// wait returns ctx.Err(). After exhausting retries the last 429 response is
// returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, w io.Writer) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if w == nil {
		w = io.Discard
	}

	backoff := BackoffBase
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		if attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		fmt.Fprintf(w, "  rate limited, retrying in %v (attempt %d/%d)\n", backoff, attempt+1, maxRetries)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}
