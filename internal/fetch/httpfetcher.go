package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hamed0406/dashfetch/internal/domain"
)

// HTTPFetcher retrieves one resource per call: a single GET, no retries,
// no caching. Failures are normalized into domain.FetchFailure.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, req domain.ResourceRequest) (domain.ResourceResult, error) {
	target := f.BaseURL + "/" + strings.TrimLeft(req.Path, "/")

	start := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.ResourceResult{}, domain.NewTransportFailure(req.Name, err)
	}
	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(httpReq)
	if err != nil {
		return domain.ResourceResult{}, domain.NewTransportFailure(req.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.ResourceResult{}, domain.NewBadResponseFailure(req.Name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ResourceResult{}, domain.NewTransportFailure(req.Name, fmt.Errorf("read body: %w", err))
	}

	payload, err := decodePayload(body, req.Shape)
	if err != nil {
		return domain.ResourceResult{}, domain.NewDecodeFailure(req.Name, err)
	}
	elapsed := time.Since(start).Seconds() * 1000 // ms, measured through decode

	return domain.ResourceResult{
		Name:        req.Name,
		Payload:     payload,
		ElapsedMS:   elapsed,
		RetrievedAt: time.Now().UTC(),
	}, nil
}

// decodePayload checks the body is JSON of the declared shape and returns it
// still opaque. Presenters decode further if they want to.
func decodePayload(body []byte, shape domain.Shape) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, errors.New("empty payload")
	}
	switch shape {
	case domain.ShapeList:
		var v []json.RawMessage
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, fmt.Errorf("expected JSON array: %w", err)
		}
	default:
		var v map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, fmt.Errorf("expected JSON object: %w", err)
		}
	}
	return json.RawMessage(trimmed), nil
}
