package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"primeadapt/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type fakeTimer struct {
	f       func()
	stopped atomic.Bool
}

func (t *fakeTimer) Stop() bool {
	return !t.stopped.Swap(true)
}

// fakeScheduler records every requested delay and only runs callbacks when
// the test fires them.
type fakeScheduler struct {
	mu      sync.Mutex
	delays  []time.Duration
	pending []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{f: f}
	s.delays = append(s.delays, d)
	s.pending = append(s.pending, t)
	return t
}

func (s *fakeScheduler) waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *fakeScheduler) fire(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool { return s.waiting() > 0 }, 2*time.Second, 5*time.Millisecond)
	s.mu.Lock()
	next := s.pending[0]
	s.pending = s.pending[1:]
	s.mu.Unlock()
	if !next.stopped.Load() {
		next.f()
	}
}

type recordingReporter struct {
	mu    sync.Mutex
	kinds []interface{}
}

func (r *recordingReporter) OnError(_ string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, data)
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.kinds)
}

func testSubmission() model.Submission {
	rate := 70
	return model.Submission{
		FirstName:   "Jeanne",
		LastName:    "Martin",
		Email:       "jeanne@example.fr",
		Phone:       "0612345678",
		Eligible:    true,
		Eligibility: model.Eligible(rate, model.CategoryVeryModest),
		AidRate:     &rate,
		SessionID:   "session-1",
		Timestamp:   "2024-05-01T10:00:00Z",
		UserAgent:   "browser",
		Consent: model.Consent{
			Given:      true,
			RecordID:   "consent-1",
			LegalBasis: "Consentement (art. 6.1.a RGPD)",
		},
	}
}

func newTestSender(t *testing.T, endpoint string, sched Scheduler, rep Reporter) *Sender {
	t.Helper()
	client := NewClient()
	t.Cleanup(func() { client.GetClient().CloseIdleConnections() })
	return NewSender(Options{
		Endpoint:  endpoint,
		Policy:    DefaultPolicy(),
		Scheduler: sched,
		Reporter:  rep,
		Client:    client,
	})
}

func waitDone(t *testing.T, d *Delivery) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Wait(ctx))
}

func TestDispatchRetriesTransientFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		assert.Empty(t, r.Header.Get("Cookie"))
		assert.Empty(t, r.Header.Get("Referer"))
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sched := &fakeScheduler{}
	rep := &recordingReporter{}
	d := newTestSender(t, srv.URL, sched, rep).Dispatch(context.Background(), testSubmission())

	sched.fire(t)
	sched.fire(t)
	waitDone(t, d)

	require.Equal(t, StatusDelivered, d.Status())
	require.EqualValues(t, 3, hits.Load())
	require.Equal(t, 3, d.Attempts())
	require.Equal(t, 0, d.Retries())
	require.NoError(t, d.Err())

	delays := d.Delays()
	require.Len(t, delays, 2)
	require.Less(t, delays[0], delays[1])
	require.Equal(t, []time.Duration{4 * time.Second, 8 * time.Second}, delays)
	require.Equal(t, 2, rep.count())
}

func TestDispatchGivesUpAfterMaxRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sched := &fakeScheduler{}
	d := newTestSender(t, srv.URL, sched, nil).Dispatch(context.Background(), testSubmission())

	for i := 0; i < 3; i++ {
		sched.fire(t)
	}
	waitDone(t, d)

	require.Equal(t, StatusFailed, d.Status())
	require.EqualValues(t, 4, hits.Load())
	require.Equal(t, []time.Duration{4 * time.Second, 8 * time.Second, 10 * time.Second}, d.Delays())

	var se *StatusError
	require.ErrorAs(t, d.Err(), &se)
	require.Equal(t, http.StatusInternalServerError, se.StatusCode)
	require.Zero(t, sched.waiting())
}

func TestDispatchPostsSubmissionBody(t *testing.T) {
	received := make(chan map[string]interface{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received <- body
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := newTestSender(t, srv.URL, &fakeScheduler{}, nil).Dispatch(context.Background(), testSubmission())
	waitDone(t, d)
	require.Equal(t, StatusDelivered, d.Status())

	body := <-received
	require.Equal(t, "Jeanne", body["first_name"])
	require.Equal(t, "session-1", body["session_id"])
	require.EqualValues(t, 70, body["aid_rate"])
	consent, ok := body["consent"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "consent-1", consent["record_id"])
	require.Contains(t, body, "responses")
	require.Contains(t, body, "eligibility")
}

func TestDispatchTimeoutIsRetried(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	sched := &fakeScheduler{}
	rep := &recordingReporter{}
	s := newTestSender(t, srv.URL, sched, rep)
	s.policy.Timeout = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	d := s.Dispatch(ctx, testSubmission())

	require.Eventually(t, func() bool { return sched.waiting() == 1 }, 2*time.Second, 5*time.Millisecond)
	require.Equal(t, StatusPending, d.Status())
	rep.mu.Lock()
	require.Equal(t, []interface{}{KindTimeout}, rep.kinds)
	rep.mu.Unlock()

	cancel()
	waitDone(t, d)
	require.Equal(t, StatusCanceled, d.Status())

	sched.mu.Lock()
	stopped := sched.pending[0].stopped.Load()
	sched.mu.Unlock()
	require.True(t, stopped, "pending retry must be stopped on cancel")
}

func TestDispatchWithoutEndpointIsSkipped(t *testing.T) {
	d := NewSender(Options{}).Dispatch(context.Background(), testSubmission())
	waitDone(t, d)
	require.Equal(t, StatusSkipped, d.Status())
	require.Zero(t, d.Attempts())
}

func TestDispatchRejectsBadEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		origin   string
		want     error
	}{
		{"relative", "/hook", "", ErrInvalidWebhook},
		{"scheme", "ftp://example.fr/hook", "", ErrInvalidWebhook},
		{"insecure on https page", "http://example.fr/hook", "https://site.fr", ErrInsecureWebhook},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := &recordingReporter{}
			s := NewSender(Options{Endpoint: tt.endpoint, PageOrigin: tt.origin, Reporter: rep})
			d := s.Dispatch(context.Background(), testSubmission())
			waitDone(t, d)
			require.Equal(t, StatusFailed, d.Status())
			require.ErrorIs(t, d.Err(), tt.want)
			require.Equal(t, 1, rep.count())
		})
	}
}

func TestPolicyDelayIsCapped(t *testing.T) {
	p := DefaultPolicy()
	require.Equal(t, 4*time.Second, p.Delay(1))
	require.Equal(t, 8*time.Second, p.Delay(2))
	require.Equal(t, 10*time.Second, p.Delay(3))
	require.Equal(t, 10*time.Second, p.Delay(7))
}

func TestValidateEndpointAllowsHTTPOnPlainPage(t *testing.T) {
	u, err := ValidateEndpoint("http://localhost:8080/hook", "http://localhost")
	require.NoError(t, err)
	require.Equal(t, "localhost:8080", u.Host)
}
