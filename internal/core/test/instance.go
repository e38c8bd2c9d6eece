//
//  Copyright © Altinn. All rights reserved.
//

package test

import (
	"os"
	"path/filepath"
	"runtime"

	internalauditlog "github.com/altinn/accessmgmt/internal/core/auditlog"
	"github.com/altinn/accessmgmt/internal/core/registry/mock"
	"github.com/altinn/accessmgmt/pkg/core"
	"github.com/altinn/accessmgmt/pkg/core/auditlog"
	"github.com/altinn/accessmgmt/pkg/core/config"
	"github.com/altinn/accessmgmt/pkg/core/options"
)

// TestConfigFilename is the name of the test configuration file (without extension).
const TestConfigFilename = "aam-config"

// GetTestdataPath returns the absolute path to the testdata directory.
// This uses runtime.Caller to locate the source file and compute the path
// relative to it, ensuring tests work regardless of the working directory.
func GetTestdataPath() string {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		// Fallback to relative path if runtime.Caller fails
		return "testdata"
	}
	// thisFile is internal/core/test/instance.go
	// We need to go up 3 levels to reach the project root, then into testdata
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(filepath.Dir(thisFile))))
	return filepath.Join(projectRoot, "testdata")
}

// FixturesPath returns the absolute path to the registry fixture file.
func FixturesPath() string {
	return filepath.Join(GetTestdataPath(), "registry.yaml")
}

// SetupTestConfig configures the environment to use the test configuration.
// This sets both AAM_CONFIG_PATH and AAM_CONFIG_FILENAME to ensure tests
// use the correct configuration regardless of user environment variables.
func SetupTestConfig() error {
	if err := os.Setenv(config.ConfigPathEnv, GetTestdataPath()); err != nil {
		return err
	}
	if err := os.Setenv(config.ConfigFileNameEnv, TestConfigFilename); err != nil {
		return err
	}
	return nil
}

// NewTestEngine instantiates an engine suitable for unit-testing: the
// fixture registry, an in-memory change log, and an audit log delivered
// to the returned channel.
func NewTestEngine(depth int) (core.Engine, chan *auditlog.Record, error) {
	if err := SetupTestConfig(); err != nil {
		return nil, nil, err
	}

	ch := make(chan *auditlog.Record, depth)
	engine, err := core.NewEngine(
		options.WithAuditLog(internalauditlog.NewChannelLogger(ch)),
		options.WithRegistry(&mock.Factory{Path: FixturesPath()}),
	)
	if err != nil {
		return nil, nil, err
	}

	return engine, ch, nil
}
