package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rashedalhajeri/quickstore-builder/config"
	"github.com/rashedalhajeri/quickstore-builder/internal/app"
	"github.com/rashedalhajeri/quickstore-builder/internal/webserver"
)

var (
	configFile = flag.String("c", "/etc/quickstore.yml", "config file path")
	initDb     = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	showVer    = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()
	if *showVer {
		fmt.Println(version)
		return
	}

	cfg := config.LoadConfig(*configFile)
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	application.InitWeb()
	application.StartBackgroundJobs()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		application.Release()
		os.Exit(0)
	}()

	if err := webserver.Start(); err != nil {
		zap.S().Errorf("webserver stopped: %s", err.Error())
		os.Exit(1)
	}
}
