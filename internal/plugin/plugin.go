package plugin

import (
	"context"
	"maps"
	"slices"

	"github.com/syshen/serverless-plugin-slack/internal/config"
	"github.com/syshen/serverless-plugin-slack/internal/constants"
	"github.com/syshen/serverless-plugin-slack/internal/templates"
	"github.com/syshen/serverless-plugin-slack/internal/util"
	"github.com/syshen/serverless-plugin-slack/log"
)

// Dispatcher delivers a rendered message without reporting the outcome to the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, url string, message string)
}

// HookFunc handles one lifecycle event.
type HookFunc func(ctx context.Context)

// Plugin reacts to deploy lifecycle events by posting a message to Slack.
type Plugin struct {
	config     *config.Configuration
	variables  map[string]string
	dispatcher Dispatcher
	hooks      map[string]HookFunc
}

func New(cfg *config.Configuration, dispatcher Dispatcher) *Plugin {
	p := &Plugin{
		config:     cfg,
		variables:  cfg.Variables(),
		dispatcher: dispatcher,
	}
	p.hooks = map[string]HookFunc{
		constants.HookAfterDeployFunction: p.AfterDeployFunction,
		constants.HookAfterDeployService:  p.AfterDeployService,
	}
	return p
}

// HookNames returns the registered hook names in sorted order.
func (p *Plugin) HookNames() []string {
	return slices.Sorted(maps.Keys(p.hooks))
}

// Run fires the named hook. Only an unknown hook name is an error.
func (p *Plugin) Run(ctx context.Context, hook string) error {
	fn, ok := p.hooks[hook]
	if !ok {
		return util.NewError(util.ErrCodeUnknownHook, hook)
	}
	fn(ctx)
	return nil
}

func (p *Plugin) AfterDeployFunction(ctx context.Context) {
	p.notify(ctx, p.config.FunctionDeployTemplate, constants.DefaultFunctionDeployMessage)
}

func (p *Plugin) AfterDeployService(ctx context.Context) {
	p.notify(ctx, p.config.ServiceDeployTemplate, constants.DefaultServiceDeployMessage)
}

func (p *Plugin) notify(ctx context.Context, message string, fallback string) {
	if message == "" {
		message = fallback
	}

	if p.config.OnlyOn != p.config.Stage {
		return
	}

	text := templates.Render(message, p.variables)
	log.Logger().Debugf("Rendered slack message: %s", text)
	p.dispatcher.Dispatch(ctx, p.config.WebhookURL, text)
}
