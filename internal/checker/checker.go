package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/August26/proxyscan-go/internal/model"
)

// DefaultGeoURL is the well-known geolocation endpoint fetched through each
// candidate. The response doubles as proof the candidate proxies traffic and
// as the source of its location.
const DefaultGeoURL = "http://ip-api.com/json"

// Verifier runs the proxy test for single candidates. One Verifier is shared
// by all verification goroutines; it holds no mutable state.
type Verifier struct {
	GeoURL  string
	Timeout time.Duration // budget for the whole proxied request/response cycle
}

func New(timeout time.Duration) *Verifier {
	return &Verifier{GeoURL: DefaultGeoURL, Timeout: timeout}
}

// Verify makes exactly one attempt to use the candidate as an HTTP forward
// proxy: a single GET to the geo endpoint, routed through it. There is no
// retry; any failure along the way becomes a failure outcome.
func (v *Verifier) Verify(ctx context.Context, c model.Candidate) model.Outcome {
	out := model.Outcome{Endpoint: c.Addr}

	proxyURL := &url.URL{Scheme: "http", Host: c.Addr.String()}
	client := &http.Client{
		Timeout: v.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyURL(proxyURL),
			DialContext: (&net.Dialer{
				Timeout: v.Timeout,
			}).DialContext,
			ResponseHeaderTimeout: v.Timeout,
			DisableKeepAlives:     true, // one request per candidate, nothing to reuse
		},
	}

	ctx, cancel := context.WithTimeout(ctx, v.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.GeoURL, nil)
	if err != nil {
		out.Err = fmt.Errorf("build geo request: %w", err)
		return out
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		out.Err = err
		return out
	}
	elapsed := time.Since(start)
	defer resp.Body.Close()

	var geo model.GeoResponse
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		out.Err = fmt.Errorf("decode geo response: %w", err)
		return out
	}

	if geo.Status != "success" {
		msg := geo.Message
		if msg == "" {
			msg = "API error"
		}
		out.Err = fmt.Errorf("Geo API error: %s", msg)
		return out
	}

	city := geo.City
	if city == "" {
		city = "Unknown"
	}
	country := geo.Country
	if country == "" {
		country = "Unknown"
	}

	out.Result = &model.Result{
		IP:             c.Addr.Addr(),
		ResponseTimeMs: elapsed.Milliseconds(),
		Location:       city + ", " + country,
	}
	return out
}
