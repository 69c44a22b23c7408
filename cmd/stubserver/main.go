package main

import (
	"campus/config"
	"campus/di"
	"campus/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	server := di.InitializeStubServer()
	server.Serve()
}
