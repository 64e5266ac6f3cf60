package main

import (
	"github.com/tasktrackr/tasktrackr/internal/app"
	"github.com/tasktrackr/tasktrackr/internal/logger"
)

func main() {
	log := logger.Default()
	log.Info().Msg("initialized default logger")

	if err := app.Run(log); err != nil {
		log.Fatal().Err(err).Msg("tasktrackr stopped")
	}
}
