package telegram

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestRetryTransportRetriesDialErrors(t *testing.T) {
	calls := 0
	rt := &retryTransport{
		maxRetries: 2,
		base: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			calls++
			if calls < 3 {
				return nil, &net.OpError{Op: "dial", Err: errors.New("refused")}
			}
			body, _ := io.ReadAll(r.Body)
			if string(body) != "payload" {
				t.Errorf("body not replayed: %q", body)
			}
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		}),
	}
	req, _ := http.NewRequest(http.MethodPost, "http://api.invalid/sendMessage", strings.NewReader("payload"))
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	resp.Body.Close()
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestRetryTransportStopsOnPermanentError(t *testing.T) {
	calls := 0
	perm := errors.New("malformed")
	rt := &retryTransport{
		maxRetries: 3,
		backoff:    time.Millisecond,
		base: roundTripFunc(func(*http.Request) (*http.Response, error) {
			calls++
			return nil, perm
		}),
	}
	req, _ := http.NewRequest(http.MethodGet, "http://api.invalid/getMe", nil)
	if _, err := rt.RoundTrip(req); !errors.Is(err, perm) {
		t.Fatalf("err = %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestBuildHTTPClientTimeoutCoversPoll(t *testing.T) {
	if c := BuildHTTPClient(60 * time.Second); c.Timeout < 70*time.Second {
		t.Fatalf("timeout %v shorter than poll window", c.Timeout)
	}
	if c := BuildHTTPClient(0); c.Timeout != defaultClientTimeout {
		t.Fatalf("timeout = %v", c.Timeout)
	}
}
