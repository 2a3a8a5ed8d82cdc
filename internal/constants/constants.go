package constants

const (
	// DEVELOPMENT env
	DEVELOPMENT = "development"
	// PRODUCTION env
	PRODUCTION = "production"

	// Lifecycle hooks fired by the deploy orchestrator
	HookAfterDeployFunction = "after:deploy:function:deploy"
	HookAfterDeployService  = "after:deploy:deploy"

	DefaultFunctionDeployMessage = "`{{user}}` deployed function `{{name}}` to environment `{{stage}}` in service `{{service}}`"
	DefaultServiceDeployMessage  = "`{{user}}` deployed service `{{service}}` to environment `{{stage}}`"

	NotifySucceeded = "Notified slack of deployment"
	NotifyFailed    = "Something went wrong notifying slack"

	DefaultConfigPath = "serverless.yml"
	DefaultStage      = "dev"
)

// VariableKey names a placeholder that can appear in a deploy message as {{key}}.
type VariableKey = string

const (
	VariableUser    VariableKey = "user"
	VariableName    VariableKey = "name"
	VariableService VariableKey = "service"
	VariableStage   VariableKey = "stage"
)

// KnownVariables lists every placeholder the notifier can fill.
var KnownVariables = []VariableKey{VariableUser, VariableName, VariableService, VariableStage}
