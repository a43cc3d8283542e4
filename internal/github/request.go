package github

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/hire-scorer/internal/utils"
)

const (
	accept     = "application/vnd.github+json"
	apiVersion = "2022-11-28"
)

// StatusError is returned for non-2xx responses.
type StatusError = utils.StatusError

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+path, nil)
	if err != nil {
		return err
	}

	c.setHeaders(req)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: req.URL.Path}
	}

	// Statistics endpoints answer 202 with an empty body while GitHub computes them.
	if resp.StatusCode == http.StatusAccepted || len(data) == 0 || target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}

// getItems fetches a list endpoint and decodes its loose items into T.
func getItems[T any](ctx context.Context, c *Client, path string, q url.Values) ([]T, error) {
	var items []any
	if err := c.getJSON(ctx, path, q, &items); err != nil {
		return nil, err
	}

	var out []T
	cfg := &mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.UserAgent)
}
