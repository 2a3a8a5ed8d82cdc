package config

import (
	"maps"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/syshen/serverless-plugin-slack/internal/constants"
	"github.com/syshen/serverless-plugin-slack/internal/templates"
	"github.com/syshen/serverless-plugin-slack/internal/util"
	"github.com/syshen/serverless-plugin-slack/log"
)

// slack settings are looked up under these keys, first match wins
var slackSectionKeys = []string{"custom.slack", "slack"}

// ConfigurationError is returned when required slack settings are missing or unreadable.
type ConfigurationError struct {
	Code    util.ErrorCode
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func (e *ConfigurationError) Unwrap() error {
	return e.Code
}

func newConfigurationError(code util.ErrorCode, appendToMessage ...string) *ConfigurationError {
	e := util.NewError(code, appendToMessage...)
	return &ConfigurationError{Code: e.Code, Message: e.Message}
}

// Options are the invocation values supplied by the host rather than the config file.
type Options struct {
	Stage    string
	Function string
	// AmbientUser is used when the slack section does not name a user.
	AmbientUser string
}

// SlackSettings mirrors the slack section of the service config.
type SlackSettings struct {
	WebhookURL            string `mapstructure:"webhook_url"`
	User                  string `mapstructure:"user"`
	FunctionDeployMessage string `mapstructure:"function_deploy_message"`
	ServiceDeployMessage  string `mapstructure:"service_deploy_message"`
	OnlyOn                string `mapstructure:"only_on"`
}

// Configuration is resolved once at startup and never mutated afterwards.
type Configuration struct {
	WebhookURL   string
	User         string
	FunctionName string
	ServiceName  string
	Stage        string
	// OnlyOn equals Stage when no filter was configured.
	OnlyOn string
	// Empty templates mean the built-in default message is used.
	FunctionDeployTemplate string
	ServiceDeployTemplate  string

	variables map[string]string
}

// Variables returns a copy of the message variables.
func (c *Configuration) Variables() map[string]string {
	return maps.Clone(c.variables)
}

// Resolve validates a host configuration tree and extracts the slack settings.
func Resolve(tree map[string]any, opts Options) (*Configuration, error) {
	v := viper.New()
	if err := v.MergeConfigMap(tree); err != nil {
		return nil, newConfigurationError(util.ErrCodeConfigUnreadable, err.Error())
	}
	return resolve(v, opts)
}

// LoadFile reads a service definition (yaml, json or toml) and resolves it.
func LoadFile(path string, opts Options) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, newConfigurationError(util.ErrCodeConfigUnreadable, err.Error())
	}
	return resolve(v, opts)
}

func resolve(v *viper.Viper, opts Options) (*Configuration, error) {
	section := slackSection(v)
	if section == nil {
		return nil, newConfigurationError(util.ErrCodeNoSlackSection)
	}

	var settings SlackSettings
	if err := section.Unmarshal(&settings); err != nil {
		return nil, newConfigurationError(util.ErrCodeConfigUnreadable, err.Error())
	}
	if strings.TrimSpace(settings.WebhookURL) == "" {
		return nil, newConfigurationError(util.ErrCodeNoWebhookURL)
	}

	cfg := &Configuration{
		WebhookURL:             settings.WebhookURL,
		User:                   settings.User,
		FunctionName:           opts.Function,
		ServiceName:            serviceName(v),
		Stage:                  opts.Stage,
		OnlyOn:                 settings.OnlyOn,
		FunctionDeployTemplate: settings.FunctionDeployMessage,
		ServiceDeployTemplate:  settings.ServiceDeployMessage,
	}
	if cfg.User == "" {
		cfg.User = opts.AmbientUser
	}
	if cfg.OnlyOn == "" {
		cfg.OnlyOn = cfg.Stage
	}
	cfg.variables = map[string]string{
		constants.VariableUser:    cfg.User,
		constants.VariableName:    cfg.FunctionName,
		constants.VariableService: cfg.ServiceName,
		constants.VariableStage:   cfg.Stage,
	}

	warnUnknownPlaceholders("function_deploy_message", cfg.FunctionDeployTemplate)
	warnUnknownPlaceholders("service_deploy_message", cfg.ServiceDeployTemplate)

	log.Logger().Debugf("Resolved slack config for service %q on stage %q (only_on %q)", cfg.ServiceName, cfg.Stage, cfg.OnlyOn)
	return cfg, nil
}

func slackSection(v *viper.Viper) *viper.Viper {
	for _, key := range slackSectionKeys {
		if section := v.Sub(key); section != nil {
			return section
		}
	}
	return nil
}

// service may be a plain name or a {name: ...} block
func serviceName(v *viper.Viper) string {
	if _, isMap := v.Get("service").(map[string]any); isMap {
		return v.GetString("service.name")
	}
	return v.GetString("service")
}

func warnUnknownPlaceholders(setting string, message string) {
	if unknown := templates.Unknown(message, constants.KnownVariables); len(unknown) > 0 {
		log.Logger().WithField("setting", setting).Warnf("Placeholders %v will not be substituted", unknown)
	}
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// LoadDotEnv loads path into the process environment when the file exists.
func LoadDotEnv(path string) error {
	if path == "" || !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		log.Logger().Errorln("Error loading .env file")
		return err
	}
	log.Configure()
	return nil
}
