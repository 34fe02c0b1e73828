package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/nobonobo/jeep-diorama/host/logger"
)

func main() {
	log := logger.New(logger.Options{
		Level:   "info",
		Console: os.Stdout,
	})
	log.Info("Started")
	if err := runApplication(log); err != nil {
		log.Error("Crashed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("Stopped")
	_ = log.Sync()
}
