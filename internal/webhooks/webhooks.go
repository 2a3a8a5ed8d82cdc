package webhooks

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"github.com/syshen/serverless-plugin-slack/internal/constants"
	"github.com/syshen/serverless-plugin-slack/internal/payloads"
	"github.com/syshen/serverless-plugin-slack/log"
)

type WebhookInterface interface {
	Send(ctx context.Context, payload *payloads.RequestPayload) error
}

// WebhookSender runs each delivery as a background task and reports only its
// outcome through the logger. Nothing is returned to, or raised in, the caller.
type WebhookSender struct {
	HttpSender WebhookInterface
	Logger     *logrus.Logger

	tasks conc.WaitGroup
}

func NewWebhookSender(sender WebhookInterface) *WebhookSender {
	return &WebhookSender{
		HttpSender: sender,
		Logger:     log.Logger(),
	}
}

func (whs *WebhookSender) logger() *logrus.Logger {
	if whs.Logger == nil {
		return log.Logger()
	}
	return whs.Logger
}

// Dispatch posts message to url. Cancelling ctx after Dispatch returns does not
// abort the delivery.
func (whs *WebhookSender) Dispatch(ctx context.Context, url string, message string) {
	payload, err := payloads.BuildRequest(url, message)
	if err != nil {
		whs.logger().WithError(err).Error(constants.NotifyFailed)
		return
	}

	ctx = context.WithoutCancel(ctx)
	whs.tasks.Go(func() {
		whs.logger().Debugf("Sending webhook to %s", url)
		if sErr := whs.HttpSender.Send(ctx, payload); sErr != nil {
			whs.logger().WithError(sErr).Error(constants.NotifyFailed)
			return
		}
		whs.logger().Info(constants.NotifySucceeded)
	})
}

// Wait blocks until every dispatched delivery has finished. A panic inside a
// delivery is logged as a failed notification.
func (whs *WebhookSender) Wait() {
	if r := whs.tasks.WaitAndRecover(); r != nil {
		whs.logger().WithField("panic", r.Value).Error(constants.NotifyFailed)
	}
}
