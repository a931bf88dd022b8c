package vulnlib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/kvesta/pomvuln/config"

	"github.com/tidwall/gjson"
)

const cveIDsKey = "CVE-IDs"

var ErrMalformedResponse = errors.New("malformed response")

// CVEUrl builds <endpoint>/api/cve/list/<gav>. The GAV is path-escaped so
// a sentinel such as N/A stays a single segment.
func (c *Client) CVEUrl(gav string) string {
	return c.Endpoint + config.CVEListPath + url.PathEscape(gav)
}

// Lookup issues one GET for gav, bounded by the client timeout
func (c *Client) Lookup(ctx context.Context, gav string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.CVEUrl(gav), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.Cli.Do(req)
	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return parseCVEList(resBody)
}

func parseCVEList(body []byte) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformedResponse)
	}

	result := gjson.ParseBytes(body)
	if !result.IsObject() {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformedResponse)
	}

	ids := result.Get(cveIDsKey)
	if !ids.Exists() || ids.Type == gjson.Null {
		return nil, nil
	}

	if !ids.IsArray() {
		return nil, fmt.Errorf("%w: %s is not a list", ErrMalformedResponse, cveIDsKey)
	}

	cves := []string{}
	for _, id := range ids.Array() {
		if id.Type != gjson.String {
			return nil, fmt.Errorf("%w: %s holds a non-string value", ErrMalformedResponse, cveIDsKey)
		}
		cves = append(cves, id.String())
	}

	return cves, nil
}
