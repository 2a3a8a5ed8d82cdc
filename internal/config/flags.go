package config

import (
	"github.com/spf13/pflag"
	"github.com/syshen/serverless-plugin-slack/internal/constants"
)

type CommandLineFlags struct {
	DotEnvPath string
	ConfigPath string
	Stage      string
	Function   string
	Hook       string
}

// ParseCommandLineFlags parses args (without the program name). The first
// positional argument is the lifecycle hook to run.
func ParseCommandLineFlags(args []string) (CommandLineFlags, error) {
	fs := pflag.NewFlagSet("slack-notify", pflag.ContinueOnError)
	envPath := fs.String("env-file", "./.env", "path of the .env file")
	configPath := fs.StringP("config", "c", constants.DefaultConfigPath, "path of the service definition")
	stage := fs.StringP("stage", "s", constants.DefaultStage, "stage that was deployed")
	function := fs.StringP("function", "f", "", "function that was deployed")

	if err := fs.Parse(args); err != nil {
		return CommandLineFlags{}, err
	}

	return CommandLineFlags{
		DotEnvPath: *envPath,
		ConfigPath: *configPath,
		Stage:      *stage,
		Function:   *function,
		Hook:       fs.Arg(0),
	}, nil
}

// Options converts the flags into resolver options.
func (f CommandLineFlags) Options(ambientUser string) Options {
	return Options{
		Stage:       f.Stage,
		Function:    f.Function,
		AmbientUser: ambientUser,
	}
}
