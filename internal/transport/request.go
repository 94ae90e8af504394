package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/appshelf/appshelf/pkg/errors"
	"github.com/appshelf/appshelf/pkg/logging"
)

// DecodeJSON reads and decodes a JSON response into the target structure.
// Non-200 statuses become an APIError attributed to the given source.
func DecodeJSON(resp *http.Response, source string, target any) error {
	defer closeBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}

// Download fetches a URL and returns the response body bytes. Used for
// binary assets (icons, screenshots).
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, errors.WrapAPI("asset", 0, err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.APIError{
			Source:     "asset",
			StatusCode: resp.StatusCode,
			Message:    "download failed",
			Endpoint:   url,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", url, err)
	}
	return body, nil
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close response body")
	}
}
