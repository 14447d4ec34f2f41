// Package delivery posts completed submissions to the configured webhook.
// Delivery is best effort: it runs detached from the caller, retries with
// exponential backoff and reports failures instead of returning them.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"primeadapt/internal/model"
)

// UserAgent is the only client marker sent with a submission.
const UserAgent = "primeadapt-widget"

// Failure kinds, logged instead of the full error detail.
const (
	KindTimeout  = "timeout"
	KindNetwork  = "network"
	KindStatus   = "http_status"
	KindCanceled = "canceled"
	KindConfig   = "config"
	KindEncoding = "encoding"
)

// Reporter receives caught failures, typically the host's OnError callback.
type Reporter interface {
	OnError(message string, data interface{})
}

type nopReporter struct{}

func (nopReporter) OnError(string, interface{}) {}

type Options struct {
	Endpoint   string
	PageOrigin string
	Policy     Policy
	Scheduler  Scheduler
	Logger     *zap.Logger
	Reporter   Reporter
	Client     *resty.Client
}

type Sender struct {
	endpoint   string
	pageOrigin string
	policy     Policy
	scheduler  Scheduler
	logger     *zap.Logger
	reporter   Reporter
	client     *resty.Client
}

func NewSender(opts Options) *Sender {
	s := &Sender{
		endpoint:   opts.Endpoint,
		pageOrigin: opts.PageOrigin,
		policy:     opts.Policy,
		scheduler:  opts.Scheduler,
		logger:     opts.Logger,
		reporter:   opts.Reporter,
		client:     opts.Client,
	}
	if s.policy == (Policy{}) {
		s.policy = DefaultPolicy()
	}
	if s.scheduler == nil {
		s.scheduler = RealScheduler()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.reporter == nil {
		s.reporter = nopReporter{}
	}
	if s.client == nil {
		s.client = NewClient()
	}
	return s
}

// NewClient returns a resty client that sends no cookies and no referrer.
func NewClient() *resty.Client {
	c := resty.New()
	c.SetCookieJar(nil)
	c.SetHeader("Content-Type", "application/json")
	c.SetHeader("X-Requested-With", "XMLHttpRequest")
	c.SetHeader("User-Agent", UserAgent)
	c.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return errors.New("stopped after 10 redirects")
		}
		req.Header.Del("Referer")
		return nil
	}))
	InstrumentClient(c, nil)
	return c
}

func (s *Sender) Endpoint() string {
	return s.endpoint
}

// Dispatch starts delivering sub and returns immediately. Cancelling ctx
// aborts the in-flight request and any pending retry.
func (s *Sender) Dispatch(ctx context.Context, sub model.Submission) *Delivery {
	if s.endpoint == "" {
		s.logger.Debug("no webhook configured, submission not sent")
		return finished(StatusSkipped, nil)
	}

	u, err := ValidateEndpoint(s.endpoint, s.pageOrigin)
	if err != nil {
		s.logger.Error("webhook configuration error", zap.String("kind", KindConfig), zap.Error(err))
		s.reporter.OnError("URL de webhook invalide", err.Error())
		return finished(StatusFailed, err)
	}

	body, err := json.Marshal(sub)
	if err != nil {
		s.logger.Error("submission encoding failed", zap.String("kind", KindEncoding))
		s.reporter.OnError("Erreur d'encodage de la soumission", KindEncoding)
		return finished(StatusFailed, err)
	}

	s.logger.Debug("sending submission",
		zap.Bool("eligible", sub.Eligible),
		zap.String("timestamp", sub.Timestamp),
	)

	d := newDelivery()
	stop := context.AfterFunc(ctx, func() {
		d.finish(StatusCanceled, ctx.Err())
	})
	go func() {
		<-d.done
		stop()
	}()
	go s.attempt(ctx, d, u.String(), body)
	return d
}

func (s *Sender) attempt(ctx context.Context, d *Delivery, url string, body []byte) {
	if ctx.Err() != nil {
		d.finish(StatusCanceled, ctx.Err())
		return
	}

	d.mu.Lock()
	if d.status != StatusPending {
		d.mu.Unlock()
		return
	}
	d.attempts++
	attempt := d.attempts
	d.mu.Unlock()

	actx, cancel := context.WithTimeout(ctx, s.policy.Timeout)
	defer cancel()

	res, err := s.client.R().
		SetContext(actx).
		SetBody(body).
		Post(url)

	kind, failure := classify(ctx, actx, res, err)
	if failure == nil {
		d.mu.Lock()
		d.retries = 0
		d.mu.Unlock()
		d.finish(StatusDelivered, nil)
		s.logger.Debug("submission delivered", zap.Int("attempt", attempt))
		return
	}

	s.logger.Warn("webhook delivery failed", zap.String("kind", kind), zap.Int("attempt", attempt))
	s.reporter.OnError("Erreur webhook", kind)

	if kind == KindCanceled {
		d.finish(StatusCanceled, failure)
		return
	}

	d.mu.Lock()
	if d.status != StatusPending {
		d.mu.Unlock()
		return
	}
	d.err = failure
	if d.retries >= s.policy.MaxRetries {
		d.mu.Unlock()
		s.logger.Warn("webhook retries exhausted", zap.Int("attempts", attempt))
		d.finish(StatusFailed, failure)
		return
	}
	d.retries++
	delay := s.policy.Delay(d.retries)
	d.delays = append(d.delays, delay)
	d.timer = s.scheduler.AfterFunc(delay, func() {
		s.attempt(ctx, d, url, body)
	})
	d.mu.Unlock()
}

type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook answered HTTP %d", e.StatusCode)
}

// classify returns the failure kind, or a nil error on a 2xx answer.
func classify(parent, attempt context.Context, res *resty.Response, err error) (string, error) {
	if err != nil {
		switch {
		case parent.Err() != nil:
			return KindCanceled, err
		case errors.Is(attempt.Err(), context.DeadlineExceeded):
			return KindTimeout, err
		default:
			return KindNetwork, err
		}
	}
	if !res.IsSuccess() {
		return KindStatus, &StatusError{StatusCode: res.StatusCode()}
	}
	return "", nil
}

// Timeout is the per-attempt bound.
func (s *Sender) Timeout() time.Duration {
	return s.policy.Timeout
}
