//
//  Copyright © Altinn. All rights reserved.
//

package delegations

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	cliCommon "github.com/altinn/accessmgmt/cmd/aam/common"
	"github.com/altinn/accessmgmt/pkg/common"
	"github.com/altinn/accessmgmt/pkg/core"
	"github.com/altinn/accessmgmt/pkg/core/model"
)

// ExecuteOffered lists the currently active delegations a party has
// granted to others.
func ExecuteOffered(ctx context.Context, cmd *cli.Command) error {
	return list(ctx, cmd, func(engine core.Engine, partyID int) ([]*model.ResourceDelegation, error) {
		return engine.GetOfferedDelegations(ctx, partyID)
	})
}

// ExecuteReceived lists the currently active delegations granted to a
// party.
func ExecuteReceived(ctx context.Context, cmd *cli.Command) error {
	return list(ctx, cmd, func(engine core.Engine, partyID int) ([]*model.ResourceDelegation, error) {
		return engine.GetReceivedDelegations(ctx, partyID)
	})
}

func list(ctx context.Context, cmd *cli.Command, query func(core.Engine, int) ([]*model.ResourceDelegation, error)) error {
	engine, err := cliCommon.NewCliEngine(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer engine.Close()

	delegations, err := query(engine, cmd.Int("party"))
	if err != nil {
		return err
	}

	common.PrettyPrint(os.Stdout, delegations)
	return nil
}
