package ecourts

import (
	"bytes"
	"context"
	"net/http/cookiejar"
	"net/url"
	"time"

	"ecourts-backend/lib/restyutil"
	"ecourts-backend/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("scrapers/ecourts")

const (
	pathCnrSearch  = "cnr_status"
	pathCaseSearch = "case_status"
	pathCauseList  = "cause_list"
)

const (
	defaultTimeout            = 30 * time.Second
	defaultRetryCount         = 3
	defaultRetryWaitTime      = 500 * time.Millisecond
	defaultMinRequestInterval = time.Second
)

type ClientOptions struct {
	BaseUrl string
	// Timeout per attempt, defaults to 30s
	Timeout time.Duration
	// RetryCount is the number of retries after the first attempt,
	// defaults to 3
	RetryCount int
	// RetryWaitTime is the base backoff delay, doubled per attempt
	// up to the max, defaults to 500ms
	RetryWaitTime time.Duration
	// MinRequestInterval is the fixed minimum delay between
	// consecutive requests against the portal, defaults to 1s.
	// This is a courtesy policy constant, not adaptive.
	MinRequestInterval time.Duration
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	retryCount int
	limiter    *rate.Limiter

	// injected in tests to pin "today"
	now func() time.Time
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RetryCount == 0 {
		opts.RetryCount = defaultRetryCount
	}
	if opts.RetryWaitTime == 0 {
		opts.RetryWaitTime = defaultRetryWaitTime
	}
	if opts.MinRequestInterval == 0 {
		opts.MinRequestInterval = defaultMinRequestInterval
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(opts.Timeout)

	client.SetRetryCount(opts.RetryCount)
	client.SetRetryWaitTime(opts.RetryWaitTime)
	client.SetRetryMaxWaitTime(opts.RetryWaitTime << uint(opts.RetryCount))
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return res.StatusCode() >= 500 || res.StatusCode() == 429
	})

	limiter := rate.NewLimiter(rate.Every(opts.MinRequestInterval), 1)
	client.OnBeforeRequest(func(cli *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	restyutil.InstrumentClient(client)

	return &Client{
		BaseUrl:    baseUrl,
		Http:       client,
		retryCount: opts.RetryCount,
		limiter:    limiter,
		now:        timezone.Now,
	}, nil
}

// getDocument fetches one page and parses it. Transient failures are
// retried inside resty; only a *FetchError escapes, after all retries
// are spent.
func (c *Client) getDocument(ctx context.Context, path string, query map[string]string) (*goquery.Document, string, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return nil, "", &FetchError{
			Url:      joinUrl(c.BaseUrl, path),
			Attempts: c.retryCount + 1,
			Err:      err,
		}
	}
	requested := res.Request.URL
	if res.StatusCode() != 200 {
		return nil, "", &FetchError{
			Url:      requested,
			Status:   res.StatusCode(),
			Attempts: c.retryCount + 1,
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, "", &ExtractionError{Url: requested, Reason: err.Error()}
	}
	return doc, requested, nil
}

func joinUrl(base *url.URL, path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return base.ResolveReference(ref).String()
}
