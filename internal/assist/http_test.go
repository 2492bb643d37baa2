package assist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestReviewDecodesVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/review" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"passed":true,"feedback":"ok"}`))
	}))
	defer srv.Close()

	c := HTTPChecker{BaseURL: srv.URL}
	v, err := c.Review(context.Background(), ReviewRequest{ExerciseID: "e1", Solution: "print(1)"})
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if !v.Passed || v.Feedback != "ok" {
		t.Fatalf("unexpected verdict: %+v", v)
	}
}

func TestReviewTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := HTTPChecker{BaseURL: srv.URL, Timeout: 20 * time.Millisecond}
	if _, err := c.Review(context.Background(), ReviewRequest{}); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestReviewServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := HTTPChecker{BaseURL: srv.URL}
	if _, err := c.Review(context.Background(), ReviewRequest{}); err == nil || errors.Is(err, ErrTimeout) {
		t.Fatalf("expected generic http error, got %v", err)
	}
}

func TestMockCheckerDeterministic(t *testing.T) {
	m := MockChecker{}
	req := ReviewRequest{ExerciseID: "e1", Solution: "x"}
	a, _ := m.Review(context.Background(), req)
	b, _ := m.Review(context.Background(), req)
	if a.Passed != b.Passed {
		t.Fatalf("mock verdict must be deterministic")
	}
}
