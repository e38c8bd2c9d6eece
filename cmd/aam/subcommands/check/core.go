//
//  Copyright © Altinn. All rights reserved.
//

package check

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	cliCommon "github.com/altinn/accessmgmt/cmd/aam/common"
	"github.com/altinn/accessmgmt/pkg/common"
)

// Execute runs the check command: it validates and resolves the given
// from/to/resource attributes and prints the delegability decision.
func Execute(ctx context.Context, cmd *cli.Command) error {
	from, err := cliCommon.ParseMatches(cmd.StringSlice("from"))
	if err != nil {
		return err
	}
	to, err := cliCommon.ParseMatches(cmd.StringSlice("to"))
	if err != nil {
		return err
	}
	resource, err := cliCommon.ParseMatches(cmd.StringSlice("resource"))
	if err != nil {
		return err
	}

	engine, err := cliCommon.NewCliEngine(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer engine.Close()

	decision, err := engine.CheckDelegation(ctx, from, to, resource)
	if err != nil {
		return err
	}

	common.PrettyPrint(os.Stdout, decision)
	return nil
}
