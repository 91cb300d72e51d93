package source

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/oops"
	"resty.dev/v3"
)

// Fetch downloads a document over HTTP. This is input acquisition for the
// CLI; the normalizer itself never performs I/O.
func Fetch(ctx context.Context, url string, timeout time.Duration) (Input, error) {
	client := resty.New().SetTimeout(timeout)
	defer func() { _ = client.Close() }()

	response, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return Input{}, oops.
			Code("DOWNLOAD_FAILED").
			With("url", url).
			Wrapf(err, "downloading document")
	}

	if response.StatusCode() < http.StatusOK || response.StatusCode() >= http.StatusMultipleChoices {
		return Input{}, oops.
			Code("DOWNLOAD_FAILED").
			With("url", url).
			With("status", response.StatusCode()).
			Hint("Check that the URL is reachable and public").
			Errorf("unexpected status %d downloading document", response.StatusCode())
	}

	return Input{Name: url, Data: []byte(response.String())}, nil
}
