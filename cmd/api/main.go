package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/receptionist/internal/cli"
)

func main() {
	if err := cli.NewRoot().ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("receptionist")
		os.Exit(1)
	}
}
