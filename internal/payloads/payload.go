package payloads

import (
	"encoding/json"
	"net/http"

	"github.com/syshen/serverless-plugin-slack/log"
)

const ContentTypeJSON = "application/json"

// SlackMessage is the body accepted by a Slack incoming webhook
type SlackMessage struct {
	Text string `json:"text"`
}

// SlackPack serializes the message text into a webhook body
func SlackPack(text string) ([]byte, error) {
	b, err := json.Marshal(SlackMessage{Text: text})
	if err != nil {
		log.Logger().Errorf("Error marshalling SlackMessage in SlackPack: %s", err)
		return nil, err
	}
	return b, nil
}

// RequestPayload describes the single outbound call made for one deploy event
type RequestPayload struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
}

// BuildRequest builds the JSON POST request that delivers message to url.
func BuildRequest(url string, message string) (*RequestPayload, error) {
	body, err := SlackPack(message)
	if err != nil {
		return nil, err
	}
	return &RequestPayload{
		URL:    url,
		Method: http.MethodPost,
		Headers: map[string]string{
			"Content-Type": ContentTypeJSON,
		},
		Body: body,
	}, nil
}
