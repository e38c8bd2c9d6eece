//
//  Copyright © Altinn. All rights reserved.
//

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/altinn/accessmgmt/cmd/aam/subcommands/check"
	"github.com/altinn/accessmgmt/cmd/aam/subcommands/delegations"
	"github.com/altinn/accessmgmt/cmd/aam/subcommands/resolve"
	"github.com/altinn/accessmgmt/cmd/aam/subcommands/serve"
	"github.com/altinn/accessmgmt/cmd/aam/version"
)

func main() {
	cmd := &cli.Command{
		Name:    "aam",
		Usage:   "A CLI application for working with the Altinn access management engine",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "fixtures",
				Aliases: []string{"f"},
				Usage:   "Load registry fixtures from `FILE` and run against the built-in fixture registry",
			},
			&cli.BoolFlag{
				Name:  "remote",
				Usage: "Use the remote registry clients configured in aam-config.yaml",
			},
			&cli.BoolFlag{
				Name:  "no-audit",
				Usage: "Discard audit records instead of writing them",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Creates an access management service",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "The TCP port to serve on.",
						Value: 9000,
					},
				},
				Action: serve.Execute,
			},
			{
				Name:  "resolve",
				Usage: "Resolves a sparse attribute set toward a wanted set and prints the closure",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "attribute",
						Aliases: []string{"a"},
						Usage:   "Known attribute in `ID=VALUE` form. Can be specified multiple times.",
					},
					&cli.StringSliceFlag{
						Name:    "wanted",
						Aliases: []string{"w"},
						Usage:   "Wanted attribute `URN`. Can be specified multiple times.",
					},
				},
				Action: resolve.Execute,
			},
			{
				Name:  "check",
				Usage: "Checks whether a resource is delegable between two parties",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "from",
						Usage: "Offering party attribute in `ID=VALUE` form. Can be specified multiple times.",
					},
					&cli.StringSliceFlag{
						Name:  "to",
						Usage: "Receiving party attribute in `ID=VALUE` form. Can be specified multiple times.",
					},
					&cli.StringSliceFlag{
						Name:    "resource",
						Aliases: []string{"r"},
						Usage:   "Resource attribute in `ID=VALUE` form. Can be specified multiple times.",
					},
				},
				Action: check.Execute,
			},
			{
				Name:  "delegations",
				Usage: "Lists currently active delegations from the change log",
				Commands: []*cli.Command{
					{
						Name:  "offered",
						Usage: "Lists the delegations a party has granted to others",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:     "party",
								Usage:    "The party id to list for.",
								Required: true,
							},
						},
						Action: delegations.ExecuteOffered,
					},
					{
						Name:  "received",
						Usage: "Lists the delegations granted to a party",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:     "party",
								Usage:    "The party id to list for.",
								Required: true,
							},
						},
						Action: delegations.ExecuteReceived,
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
