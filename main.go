package main

import (
	"studio-api/core/logger"
	"studio-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
