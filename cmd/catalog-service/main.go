package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/acryfusion/storefront/internal/asset"
	"github.com/acryfusion/storefront/internal/cache"
	"github.com/acryfusion/storefront/internal/cart"
	"github.com/acryfusion/storefront/internal/config"
	httpAPI "github.com/acryfusion/storefront/internal/http"
	"github.com/acryfusion/storefront/internal/http/controller"
	"github.com/acryfusion/storefront/internal/logger"
	"github.com/acryfusion/storefront/internal/metrics"
	"github.com/acryfusion/storefront/internal/service"
	sqspkg "github.com/acryfusion/storefront/internal/sqs"
	"github.com/acryfusion/storefront/internal/store"
	"github.com/acryfusion/storefront/internal/store/memory"
	"github.com/acryfusion/storefront/internal/store/sheets"
	sqlstore "github.com/acryfusion/storefront/internal/store/sql"
	"github.com/gin-gonic/gin"
)

func main() {
	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	logger.InitJSONLogger(conf.DebugMode)

	ctx := context.Background()

	rows, err := newRowStore(ctx, conf)
	handleErr("starting row store", err)

	assets, err := newAssetStore(ctx, conf)
	handleErr("starting asset store", err)

	// Redis is optional; without it every listing hits the row store.
	var productCache *cache.ProductCache
	if conf.Redis.Addr != "" {
		productCache, err = cache.NewProductCache(ctx, conf.Redis.Addr, cache.DefaultTTL)
		handleErr("connecting to redis", err)
		defer productCache.Close()
	}

	// SQS is optional; without a queue URL no change events are published.
	var publisher *sqspkg.Publisher
	if conf.AWS.SQSQueueURL != "" {
		sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
		handleErr("creating SQS client", err)
		publisher = sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)
	}

	catalogService := service.NewCatalogService(rows, assets, productCache, publisher)

	// Start HTTP server
	ctr := controller.New(conf)
	catalogCtr := controller.NewCatalogController(catalogService)
	imageCtr := controller.NewImageController(catalogService)
	cartCtr := controller.NewCartController(cart.NewRegistry())

	httpServer := gin.New()
	httpServer = httpAPI.InitRouter(conf, httpServer, ctr, catalogCtr, imageCtr, cartCtr)

	go func() {
		slog.Info("Catalog service starting", slog.String("port", conf.HTTPServer.Port))
		if err := httpServer.Run(":" + conf.HTTPServer.Port); err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	slog.Info("Shutting down gracefully...")
}

func newRowStore(ctx context.Context, conf *config.Config) (store.Store, error) {
	switch conf.Store.Backend {
	case config.StoreBackendSheets:
		return sheets.New(ctx, conf.Store.CredentialsFile, conf.Store.SpreadsheetID)
	case config.StoreBackendPostgres:
		db, err := sqlstore.StartDB(ctx, conf.Database)
		if err != nil {
			return nil, err
		}
		return sqlstore.NewCatalogStore(db), nil
	default:
		return memory.New(), nil
	}
}

func newAssetStore(ctx context.Context, conf *config.Config) (asset.Store, error) {
	switch conf.Assets.Backend {
	case config.AssetBackendDrive:
		return asset.NewDriveStore(ctx, conf.Assets.CredentialsFile, conf.Assets.DriveFolderID)
	default:
		return asset.NewFSStore(conf.Assets.UploadsDir)
	}
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
