package client

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// requestFactory builds a fresh request per attempt; request bodies cannot
// be replayed once consumed.
type requestFactory func(ctx context.Context) (*http.Request, error)

// doWithRetry issues the request up to c.opts.MaxAttempts times. Only
// transport-level failures are retried; any received response, success or
// not, is returned to the caller. Attempt k waits BaseDelay * 2^k before
// retrying. Context expiry surfaces as ErrTimeout.
func (c *Client) doWithRetry(ctx context.Context, build requestFactory) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < c.opts.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.opts.BaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, classifyCtxErr(ctx.Err())
			case <-time.After(delay):
			}
		}

		req, err := build(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "build request")
		}

		resp, err := c.http.Do(req)
		if err == nil {
			return resp, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, classifyCtxErr(ctxErr)
		}

		lastErr = &TransportError{URL: req.URL.String(), Err: err}
		log.Warn().
			Err(err).
			Str("url", req.URL.String()).
			Int("attempt", attempt+1).
			Int("max_attempts", c.opts.MaxAttempts).
			Msg("request transport failure")
	}

	return nil, lastErr
}

func classifyCtxErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(ErrTimeout, "request aborted")
	}
	return errors.Wrap(err, "request canceled")
}
