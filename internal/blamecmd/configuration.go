package blamecmd

import "strings"

const (
	repositoryConfigurationKeyConstant  = "repository"
	churnCutoffConfigurationKeyConstant = "churn_cutoff_days"
	remoteNameConfigurationKeyConstant  = "remote"
	configurationKeySeparatorConstant   = "."
	defaultRepositoryPathConstant       = "."
	defaultChurnCutoffDaysConstant      = 365
	defaultRemoteNameConstant           = "origin"
)

// CommandConfiguration captures persistent settings for the blame command.
type CommandConfiguration struct {
	Repository      string `mapstructure:"repository"`
	ChurnCutoffDays uint   `mapstructure:"churn_cutoff_days"`
	Remote          string `mapstructure:"remote"`
}

// DefaultCommandConfiguration returns baseline configuration values for the blame command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Repository:      defaultRepositoryPathConstant,
		ChurnCutoffDays: defaultChurnCutoffDaysConstant,
		Remote:          defaultRemoteNameConstant,
	}
}

// DefaultConfigurationValues produces viper defaults for the blame command section.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + repositoryConfigurationKeyConstant:  defaults.Repository,
		rootKey + configurationKeySeparatorConstant + churnCutoffConfigurationKeyConstant: defaults.ChurnCutoffDays,
		rootKey + configurationKeySeparatorConstant + remoteNameConfigurationKeyConstant:  defaults.Remote,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	defaults := DefaultCommandConfiguration()

	sanitized.Repository = strings.TrimSpace(configuration.Repository)
	if len(sanitized.Repository) == 0 {
		sanitized.Repository = defaults.Repository
	}
	if sanitized.ChurnCutoffDays == 0 {
		sanitized.ChurnCutoffDays = defaults.ChurnCutoffDays
	}
	sanitized.Remote = strings.TrimSpace(configuration.Remote)
	if len(sanitized.Remote) == 0 {
		sanitized.Remote = defaults.Remote
	}

	return sanitized
}
