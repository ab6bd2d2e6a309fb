package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/chartistry/pkg/observability"
)

var errFlaky = errors.New("flaky")

func TestRetry(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return Retryable(errFlaky)
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("Retry() = %v after %d calls, want nil after 3", err, calls)
	}

	calls = 0
	err = Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		return errFlaky
	})
	if err != errFlaky || calls != 1 {
		t.Errorf("non-retryable: %v after %d calls", err, calls)
	}

	calls = 0
	err = Retry(ctx, 2, time.Millisecond, func() error {
		calls++
		return Retryable(errFlaky)
	})
	if !errors.Is(err, errFlaky) || calls != 2 {
		t.Errorf("exhausted: %v after %d calls", err, calls)
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Hour, func() error { return Retryable(errFlaky) })
	if err != context.Canceled {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	if !IsRetryable(Retryable(errFlaky)) || IsRetryable(errFlaky) {
		t.Error("IsRetryable mismatch")
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	codes []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _, _ string, code int, _ time.Duration) {
	h.codes = append(h.codes, code)
}

func TestTransportReportsResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	client := &http.Client{Transport: &Transport{}}
	res, err := client.Get(srv.URL + "/api/v1/query")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	if len(hooks.codes) != 1 || hooks.codes[0] != http.StatusTeapot {
		t.Errorf("reported codes = %v", hooks.codes)
	}
}

func TestStatusRetryable(t *testing.T) {
	for code, want := range map[int]bool{200: false, 404: false, 429: true, 500: true, 503: true} {
		if got := StatusRetryable(code); got != want {
			t.Errorf("StatusRetryable(%d) = %v", code, got)
		}
	}
}
