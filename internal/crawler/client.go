package crawler

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// StatusError is returned for any non-2xx product page response.
type StatusError struct {
	Code   int
	Status string
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP status code %s for %s", e.Status, e.URL)
}

type ClientOptions struct {
	Timeout time.Duration
}

// Client fetches product pages the way a browser would: desktop headers and
// a cookie store shared across requests of the same run.
type Client struct {
	Http *resty.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeaders(map[string]string{
		"user-agent":                userAgent,
		"accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"accept-language":           "es-MX,en-US;q=0.7,en;q=0.3",
		"cache-control":             "no-cache",
		"upgrade-insecure-requests": "1",
	})

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client.SetTimeout(timeout)

	return &Client{Http: client}, nil
}

// FetchPage returns the body of url. There are no retries.
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	res, err := c.Http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if !res.IsSuccess() {
		return "", &StatusError{Code: res.StatusCode(), Status: res.Status(), URL: url}
	}
	return res.String(), nil
}
