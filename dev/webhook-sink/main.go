// Command webhook-sink is a local stand-in for a Slack incoming webhook. It logs
// every message posted to it so slack-notify can be exercised end to end.
package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/syshen/serverless-plugin-slack/env"
	"github.com/syshen/serverless-plugin-slack/internal/config"
	"github.com/syshen/serverless-plugin-slack/internal/payloads"
	"github.com/syshen/serverless-plugin-slack/log"
)

func main() {
	if err := config.LoadDotEnv(env.GetString("SINK_ENV_FILE", "./.env")); err != nil {
		log.Logger().Fatalf("Error loading .env file: %v", err)
	}

	status, err := strconv.Atoi(env.GetString("SINK_STATUS", "200"))
	if err != nil || http.StatusText(status) == "" {
		log.Logger().Fatalf("Invalid SINK_STATUS: %s", env.GetString("SINK_STATUS"))
	}

	debug := env.GetBool("SINK_DEBUG", false)
	gin.SetMode(ginMode(debug))
	if debug {
		log.Logger().SetLevel(logrus.DebugLevel)
	}

	addr := env.GetString("SINK_ADDR", "127.0.0.1:6002")
	log.Logger().Infof("Webhook sink listening on http://%s (responding %d)", addr, status)
	if err = newRouter(status).Run(addr); err != nil {
		log.Logger().Fatalf("Webhook sink stopped: %v", err)
	}
}

// ginMode keeps gin's route dump and request logging out of the output unless debugging.
func ginMode(debug bool) string {
	if debug {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

func newRouter(status int) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/*path", func(c *gin.Context) {
		var msg payloads.SlackMessage
		if err := c.ShouldBindJSON(&msg); err != nil {
			c.String(http.StatusBadRequest, "invalid_payload")
			return
		}
		log.Logger().WithField("path", c.Param("path")).Infof("Received: %s", msg.Text)
		c.String(status, http.StatusText(status))
	})
	return r
}
