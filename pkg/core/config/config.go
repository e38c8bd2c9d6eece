//
//  Copyright © Altinn. All rights reserved.
//

// Package config provides configuration management for the access
// management engine using [Viper] for flexible configuration sources.
//
// Configuration can be provided via:
//   - YAML configuration files
//   - Environment variables with the AAM_ prefix
//   - Programmatic defaults
//
// # Configuration File
//
// By default, the engine looks for aam-config.yaml in the current
// directory. Override the location using environment variables:
//
//	AAM_CONFIG_PATH=/etc/accessmgmt
//	AAM_CONFIG_FILENAME=production-config
//
// Example configuration file:
//
//	log:
//	  level: ".:info"
//	mock:
//	  enabled: true
//	  fixtures: testdata/registry.yaml
//	registry:
//	  party:
//	    url: http://register.local/parties
//	  profile:
//	    url: http://profile.local/users
//	  resource:
//	    url: http://resourceregistry.local/resource
//	audit:
//	  env:
//	    pod: HOSTNAME
//
// # Environment Variables
//
// All configuration keys can be set via environment variables with the
// AAM_ prefix. Dots in key names become underscores:
//
//	AAM_LOG_LEVEL=.:debug
//	AAM_MOCK_ENABLED=true
//	AAM_REGISTRY_PARTY_URL=http://register.local/parties
//
// [Viper]: https://github.com/spf13/viper
package config

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/altinn/accessmgmt/internal/logging"
	"github.com/spf13/viper"
)

// Environment variable and default path constants for configuration loading.
const (
	// EnvVarPrefix is the prefix for all engine environment variables.
	// For example, the key "log.level" becomes AAM_LOG_LEVEL.
	EnvVarPrefix string = "AAM"

	// ConfigPathEnv is the environment variable that specifies the
	// directory containing the configuration file.
	ConfigPathEnv string = "AAM_CONFIG_PATH"

	// ConfigFileNameEnv is the environment variable that specifies the
	// configuration file name (without extension).
	ConfigFileNameEnv string = "AAM_CONFIG_FILENAME"

	// ConfigDefaultPath is the default directory to search for config files.
	ConfigDefaultPath string = "."

	// ConfigDefaultFilename is the default configuration file name
	// (without extension).
	ConfigDefaultFilename string = "aam-config"
)

// Configuration key constants for use with [VConfig].
const (
	logLevel string = "log.level"

	// MockEnabled when set to true causes the engine to use the fixture
	// registry regardless of any registry configured via options. This
	// is useful for unit testing applications that embed the engine.
	//
	// Set via environment: AAM_MOCK_ENABLED=true
	MockEnabled string = "mock.enabled"

	// MockFixtures is the path to the YAML file holding fixture data
	// (parties, user profiles, resources) for the mock registry.
	//
	// Set via environment: AAM_MOCK_FIXTURES=testdata/registry.yaml
	MockFixtures string = "mock.fixtures"

	// PartyRegistryURL is the base URL of the party registry service
	// used by the remote registry client.
	PartyRegistryURL string = "registry.party.url"

	// ProfileRegistryURL is the base URL of the user profile service
	// used by the remote registry client.
	ProfileRegistryURL string = "registry.profile.url"

	// ResourceRegistryURL is the base URL of the resource registry
	// service used by the remote registry client.
	ResourceRegistryURL string = "registry.resource.url"

	// AuditEnv defines a mapping from audit record metadata keys to
	// environment variable names. The values of the specified variables
	// are included in every audit record.
	//
	// Example config:
	//
	//	audit:
	//	  env:
	//	    pod: HOSTNAME
	//	    region: AWS_REGION
	AuditEnv string = "audit.env"
)

var (
	once     sync.Once
	loadOnce sync.Once
	loadErr  error

	// VConfig is the global Viper configuration instance for the engine.
	//
	// Use the configuration key constants ([MockEnabled], [AuditEnv],
	// etc.) to access specific settings:
	//
	//	if config.VConfig.GetBool(config.MockEnabled) {
	//	    // Using the fixture registry
	//	}
	//
	// VConfig is initialized automatically when [Load] or [Init] is
	// called; [core.New] calls Load for you.
	VConfig *viper.Viper

	logger = logging.GetLogger("accessmgmt.config")
)

// Init initializes the configuration system without loading config files.
//
// Init sets up Viper with configuration file paths, environment variable
// handling (AAM_ prefix), and defaults. Safe to call multiple times;
// subsequent calls are no-ops. Call it explicitly only if you need to
// set Viper defaults before [Load] reads the configuration file.
func Init() {
	once.Do(doInitialize)
}

func getConfigPath() string {
	if configPath, ok := os.LookupEnv(ConfigPathEnv); ok {
		return configPath
	}
	return ConfigDefaultPath
}

func getConfigFileName() string {
	if configName, ok := os.LookupEnv(ConfigFileNameEnv); ok {
		return configName
	}
	return ConfigDefaultFilename
}

func doInitialize() {
	VConfig = viper.New()

	// config-file loading: default is './aam-config.yaml' but can be
	// overridden with $(AAM_CONFIG_PATH)/$(AAM_CONFIG_FILENAME).yaml
	VConfig.AddConfigPath(getConfigPath())
	VConfig.SetConfigName(getConfigFileName())
	VConfig.SetConfigType("yaml")

	// envvar handling: keys such as 'log.level' become 'AAM_LOG_LEVEL'
	VConfig.SetEnvPrefix(EnvVarPrefix)
	VConfig.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	VConfig.AutomaticEnv()

	VConfig.SetDefault(logLevel, ".:info")
	VConfig.SetDefault(MockEnabled, false)
}

// Load initializes configuration and loads settings from files and
// environment.
//
// Load reads the configuration file (a missing file is not an error),
// applies environment variable overrides, and updates log levels from
// the final configuration. Safe for concurrent use; calls after the
// first successful load are no-ops.
//
// Load is called automatically by [core.New]; most applications don't
// need to call it directly.
func Load() error {
	loadOnce.Do(func() {
		Init()

		// Early log level update from the environment lets us debug the
		// config loading itself.
		if early := os.Getenv("AAM_LOG_LEVEL"); early != "" {
			if err := logging.UpdateLogLevels(early); err != nil {
				logger.SysErrorf("failed updating early log level %s: %+v", early, err)
				loadErr = err
				return
			}
		}

		logger.SysDebugf("loading configuration from %s/%s.yaml", getConfigPath(), getConfigFileName())
		if err := VConfig.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				logger.SysWarnf("error reading config; using defaults: %+v", err)
			}
			logger.SysDebugf("no config file found at %s/%s.yaml", getConfigPath(), getConfigFileName())
		}

		level := VConfig.GetString(logLevel)
		if err := logging.UpdateLogLevels(level); err != nil {
			logger.SysErrorf("failed updating log level %s: %+v", level, err)
			loadErr = err
		}
	})

	return loadErr
}

// ResetConfig clears the loaded state so the next [Load] re-reads the
// configuration. Intended for tests that switch config files.
func ResetConfig() {
	loadOnce = sync.Once{}
	loadErr = nil
	doInitialize()
}
