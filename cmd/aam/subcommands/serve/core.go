//
//  Copyright © Altinn. All rights reserved.
//

package serve

import (
	"context"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/altinn/accessmgmt/cmd/aam/common"
	"github.com/altinn/accessmgmt/internal/logging"
	"github.com/altinn/accessmgmt/pkg/endpoint/rest"
)

var logger = logging.GetLogger("aam")

const agent string = "serve"

// Execute runs the serve command, starting the REST endpoint server and
// gracefully shutting it down on interrupt signals.
func Execute(ctx context.Context, cmd *cli.Command) error {
	port := cmd.Int("port")

	engine, err := common.NewCliEngine(cmd, os.Stdout)
	if err != nil {
		return err
	}
	defer engine.Close()

	server, err := rest.CreateServer(engine, port)
	if err != nil {
		return err
	}

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info(agent, "shutdown", "Shutting down server...")

	err = server.Stop(ctx)
	if err != nil {
		return err
	}

	logger.Info(agent, "shutdown", "Server exited gracefully.")
	return nil
}
