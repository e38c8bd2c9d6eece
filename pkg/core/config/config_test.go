//
//  Copyright © Altinn. All rights reserved.
//

package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinn/accessmgmt/pkg/core/config"
)

func TestInitConfig(t *testing.T) {
	os.Setenv(config.ConfigPathEnv, "../../../testdata")
	defer os.Unsetenv(config.ConfigPathEnv)
	config.ResetConfig()
	assert.NotNil(t, config.VConfig)
}

func TestConfigDefaults(t *testing.T) {
	os.Setenv(config.ConfigPathEnv, "../../../testdata")
	defer os.Unsetenv(config.ConfigPathEnv)
	config.ResetConfig()

	// Check some default values
	assert.Equal(t, false, config.VConfig.GetBool(config.MockEnabled))
	assert.Equal(t, "", config.VConfig.GetString(config.MockFixtures))
}

func TestConfigFromFile(t *testing.T) {
	os.Setenv(config.ConfigPathEnv, "../../../testdata")
	defer os.Unsetenv(config.ConfigPathEnv)
	config.ResetConfig()

	require.NoError(t, config.Load())
	assert.Equal(t, "http://localhost:5101/register/api/v1/parties", config.VConfig.GetString(config.PartyRegistryURL))
}

func TestConfigEnvOverride(t *testing.T) {
	os.Setenv(config.ConfigPathEnv, "../../../testdata")
	os.Setenv("AAM_MOCK_ENABLED", "true")
	defer func() {
		os.Unsetenv(config.ConfigPathEnv)
		os.Unsetenv("AAM_MOCK_ENABLED")
	}()
	config.ResetConfig()

	assert.Equal(t, true, config.VConfig.GetBool(config.MockEnabled))
}

func TestConfigWithCustomFilename(t *testing.T) {
	os.Setenv(config.ConfigPathEnv, "../../../testdata")
	os.Setenv(config.ConfigFileNameEnv, "aam-config")
	defer func() {
		os.Unsetenv(config.ConfigPathEnv)
		os.Unsetenv(config.ConfigFileNameEnv)
	}()

	config.ResetConfig()
	require.NoError(t, config.Load())
	env := config.VConfig.GetStringMapString(config.AuditEnv)
	assert.Equal(t, "HOSTNAME", env["pod"])
}
