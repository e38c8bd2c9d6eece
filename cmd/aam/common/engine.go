package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/altinn/accessmgmt/pkg/core"
	"github.com/altinn/accessmgmt/pkg/core/attribute"
	"github.com/altinn/accessmgmt/pkg/core/auditlog"
	"github.com/altinn/accessmgmt/pkg/core/config"
	"github.com/altinn/accessmgmt/pkg/core/options"
	"github.com/altinn/accessmgmt/pkg/core/registry/remote"
)

// ParseMatches converts "id=value" CLI arguments into attribute matches.
func ParseMatches(args []string) ([]attribute.AttributeMatch, error) {
	out := make([]attribute.AttributeMatch, 0, len(args))
	for _, arg := range args {
		id, value, found := strings.Cut(arg, "=")
		if !found || id == "" {
			return nil, fmt.Errorf("attribute %q is not in id=value form", arg)
		}
		out = append(out, attribute.AttributeMatch{ID: id, Value: value})
	}
	return out, nil
}

// NewCliEngine creates an engine configured from CLI command flags. It
// wires the audit log to the provided writer, and switches between the
// fixture registry and the remote registry clients based on the global
// --remote flag.
func NewCliEngine(cmd *cli.Command, stdout io.Writer) (core.Engine, error) {
	engineOptions := []options.EngineOptionsFunc{
		options.WithAuditLog(auditlog.NewIoWriterFactory(stdout)),
	}
	if cmd.Root().Bool("no-audit") {
		engineOptions[0] = options.WithAuditLog(auditlog.NewNullFactory())
	}

	if fixtures := cmd.Root().String("fixtures"); fixtures != "" {
		config.Init()
		config.VConfig.Set(config.MockEnabled, true)
		config.VConfig.Set(config.MockFixtures, fixtures)
	}

	if cmd.Root().Bool("remote") {
		engineOptions = append(engineOptions, options.WithRegistry(remote.NewFactory()))
	}

	return core.NewEngine(engineOptions...)
}
