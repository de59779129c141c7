package main

import (
	"meeting-optimizer-api/core/logger"
	"meeting-optimizer-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
