// Package httputil provides HTTP plumbing shared by network data sources.
//
//   - [Retry] retries transient failures with exponential backoff
//   - [Transport] reports every outgoing request to the observability hooks
//
// Wrap transient failures (timeouts, 5xx, 429) in [RetryableError] so that
// [Retry] attempts them again:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    res, err := query(ctx)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
package httputil
