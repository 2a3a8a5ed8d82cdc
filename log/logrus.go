package log

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/syshen/serverless-plugin-slack/env"
	"github.com/syshen/serverless-plugin-slack/internal/constants"
)

var (
	logger     *logrus.Logger
	loggerOnce sync.Once
)

func init() {
	Logger()
}

func initLogger() {
	logger = logrus.New()
	logger.SetOutput(os.Stdout)
	configure(logger)
}

// Configure re-reads APP_ENV and LOG_LEVEL. Call it again after a .env file has been loaded.
func Configure() {
	configure(Logger())
}

func configure(l *logrus.Logger) {
	if env.GetString("APP_ENV", constants.PRODUCTION) == constants.PRODUCTION {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		// The TextFormatter is default, you don't actually have to do this.
		l.SetFormatter(&logrus.TextFormatter{})
	}

	lvl, err := logrus.ParseLevel(env.GetString("LOG_LEVEL", "info"))
	if err != nil {
		l.Warnln("Invalid log level:", env.GetString("LOG_LEVEL", "info"))
		l.SetLevel(logrus.InfoLevel)
		return
	}
	l.SetLevel(lvl)
	l.Debugln("Log level:", lvl)
}

// Logger ...
func Logger() *logrus.Logger {
	loggerOnce.Do(initLogger)
	return logger
}
