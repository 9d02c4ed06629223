// Command relay serves the relay API.
package main

import (
	"fmt"
	"os"

	"github.com/xy-planning-network/relay/api"
	"github.com/xy-planning-network/relay/logger"
	"github.com/xy-planning-network/relay/ranger"
)

func main() {
	rng, err := ranger.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "relay: %s\n", err)
		os.Exit(1)
	}

	rng.AuthedRoutes(api.NewHandler(rng.Responder, rng.EmitLogger()).Routes())

	if err := rng.Guide(); err != nil {
		rng.EmitLogger().Error("relay stopped", &logger.LogContext{Error: err})
		os.Exit(1)
	}
}
