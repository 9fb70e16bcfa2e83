package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/beacondyn/beaconstore/config"
	"github.com/beacondyn/beaconstore/internal/adminapi"
	"github.com/beacondyn/beaconstore/internal/app"
	"github.com/beacondyn/beaconstore/internal/catalog"
	"github.com/beacondyn/beaconstore/internal/session"
	"github.com/beacondyn/beaconstore/internal/storeapi"
	"github.com/beacondyn/beaconstore/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "beaconstore.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

var (
	BuildVersion = "dev"
	BuildDate    = ""
)

func printVersion() {
	fmt.Printf("beaconstore %s %s\n", BuildVersion, BuildDate)
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		printVersion()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	sessMgr := session.NewManager(cfg.Web.Secret)

	ws := webserver.Init(application, sessMgr)
	adminapi.InitRouter()

	view := catalog.New(application.Gateway())
	view.Start(context.Background())
	defer view.Stop()
	storeapi.InitRouter(view)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ws.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return ws.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorf("server exited with error: %v", err)
		os.Exit(1)
	}
}
