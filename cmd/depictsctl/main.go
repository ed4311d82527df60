// Command depictsctl is the admin CLI for the depicts store: schema
// migration, bulk language import, admin rights and SPARQL query tooling.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/depicts-backend/internal/sysutil"
)

func main() {
	_ = godotenv.Load()

	log.Logger = sysutil.NewLogger(os.Stderr, true)
	zerolog.DefaultContextLogger = &log.Logger

	ctx, stop := sysutil.SignalContext(context.Background())
	defer stop()

	if err := newRootCmd(newApp()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
