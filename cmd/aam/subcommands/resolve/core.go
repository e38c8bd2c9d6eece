//
//  Copyright © Altinn. All rights reserved.
//

package resolve

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	cliCommon "github.com/altinn/accessmgmt/cmd/aam/common"
	"github.com/altinn/accessmgmt/pkg/common"
)

// Execute runs the resolve command: it derives the closure of the given
// attributes toward the wanted set and prints the result as JSON.
func Execute(ctx context.Context, cmd *cli.Command) error {
	attributes, err := cliCommon.ParseMatches(cmd.StringSlice("attribute"))
	if err != nil {
		return err
	}

	engine, err := cliCommon.NewCliEngine(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer engine.Close()

	resolved, err := engine.Resolve(ctx, attributes, cmd.StringSlice("wanted"))
	if err != nil {
		return err
	}

	common.PrettyPrint(os.Stdout, resolved)
	return nil
}
