package webhooks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/syshen/serverless-plugin-slack/internal/payloads"
	"github.com/syshen/serverless-plugin-slack/log"
)

// HTTPClient is the subset of *http.Client used to deliver webhooks
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HttpWebhook posts a payload to an incoming webhook URL. A zero value uses
// http.DefaultClient, which applies no timeout.
type HttpWebhook struct {
	Client HTTPClient
}

func (h *HttpWebhook) client() HTTPClient {
	if h.Client == nil {
		return http.DefaultClient
	}
	return h.Client
}

// Send performs exactly one request. Anything but a 200 response is an error.
func (h *HttpWebhook) Send(ctx context.Context, payload *payloads.RequestPayload) error {
	if payload == nil {
		return errors.New("nil webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, payload.Method, payload.URL, bytes.NewReader(payload.Body))
	if err != nil {
		log.Logger().Debugf("Error creating request: %s", err)
		return err
	}
	for k, v := range payload.Headers {
		req.Header.Set(k, v)
	}

	// Send the request
	resp, err := h.client().Do(req)
	if err != nil {
		log.Logger().Debugf("Error sending request: %s", err)
		return err
	}
	defer func(Body io.ReadCloser) {
		_, _ = io.Copy(io.Discard, Body)
		if cErr := Body.Close(); cErr != nil {
			log.Logger().Errorf("Error closing response body: %s", cErr)
		}
	}(resp.Body)

	// handle the response
	if resp.StatusCode != http.StatusOK {
		return errors.New(resp.Status)
	}
	log.Logger().Debugf("Success sending webhook: %s", resp.Status)
	return nil
}
