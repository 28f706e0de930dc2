package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/linkkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/linkkeeper/internal/client/cli"
	"github.com/dmitrijs2005/linkkeeper/internal/client/client"
	"github.com/dmitrijs2005/linkkeeper/internal/client/config"
	"github.com/dmitrijs2005/linkkeeper/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/linkkeeper/internal/client/services"
	"github.com/dmitrijs2005/linkkeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.NewConsoleLogger(os.Stderr, cfg.LogLevel)

	db, err := client.InitDatabase(ctx, cfg.StatePath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	prefs := preferences.NewSQLiteRepository(db)
	if err := prefs.Seed(ctx, map[preferences.Key]string{
		preferences.KeyShortDomain: cfg.ShortDomain,
	}); err != nil {
		logger.Warn(ctx, "preferences not seeded", "err", err)
	}

	api, err := client.NewHTTPClient(client.Options{
		BaseURL:           cfg.APIURL,
		IdentityPath:      cfg.IdentityPath,
		APIKey:            cfg.APIKey,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := cli.NewApp(cli.Deps{
		Session:       services.NewSessionStore(api, prefs, logger),
		Links:         services.NewLinkStore(api, cfg.PageSize, cfg.ErrorDisplay, logger),
		Keys:          services.NewAPIKeyStore(api, cfg.ErrorDisplay, logger),
		Resolver:      services.NewResolver(api, logger),
		Prefs:         prefs,
		Logger:        logger,
		ShortDomains:  config.ShortDomains,
		DefaultDomain: cfg.ShortDomain,
	})

	app.Run(ctx)

}
