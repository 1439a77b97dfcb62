package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/df07/go-pixel-tracer/pkg/scene"
	"github.com/df07/go-pixel-tracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "", "Directory of scene files (default: scenes or ../scenes)")
	flag.Parse()

	config := zap.NewDevelopmentConfig()
	config.DisableStacktrace = true
	logger, err := config.Build()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	dir := *scenesDir
	if dir == "" {
		dir = scene.FindScenesDir()
	}

	webServer := server.NewServer(*port, dir, logger)

	logger.Sugar().Infof("Pixel Tracer Web Server")
	logger.Sugar().Infof("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
