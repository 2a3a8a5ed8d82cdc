package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/syshen/serverless-plugin-slack/env"
	"github.com/syshen/serverless-plugin-slack/internal/config"
	"github.com/syshen/serverless-plugin-slack/internal/plugin"
	"github.com/syshen/serverless-plugin-slack/internal/webhooks"
	logger "github.com/syshen/serverless-plugin-slack/log"
)

const (
	exitOK          = 0
	exitConfigError = 1
	exitUsageError  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run fires one lifecycle hook and waits for the notification to finish, or
// until ctx is done. Delivery failures are logged and never change the exit code.
func run(ctx context.Context, args []string) int {
	flags, err := config.ParseCommandLineFlags(args)
	if err != nil {
		logger.Logger().Errorf("Invalid arguments: %v", err)
		return exitUsageError
	}

	if err = config.LoadDotEnv(flags.DotEnvPath); err != nil {
		logger.Logger().Errorf("Failed to load %s: %v", flags.DotEnvPath, err)
		return exitConfigError
	}

	cfg, err := config.LoadFile(flags.ConfigPath, flags.Options(env.CurrentUser()))
	if err != nil {
		logger.Logger().Errorf("Failed to load config: %v", err)
		return exitConfigError
	}

	sender := webhooks.NewWebhookSender(&webhooks.HttpWebhook{})
	p := plugin.New(cfg, sender)

	logger.Logger().Debugf("Running hook %s", flags.Hook)
	if err = p.Run(ctx, flags.Hook); err != nil {
		logger.Logger().Errorf("Hook %q failed: %v, expected one of %v", flags.Hook, err, p.HookNames())
		return exitUsageError
	}

	done := make(chan struct{})
	go func() {
		sender.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Logger().Warnln("Interrupted before the slack notification finished")
	}
	return exitOK
}
