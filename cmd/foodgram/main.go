package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/totegamma/foodgram/internal/config"
	"github.com/totegamma/foodgram/internal/infra/cache"
	"github.com/totegamma/foodgram/internal/infra/database"
	"github.com/totegamma/foodgram/internal/infra/repository"
	"github.com/totegamma/foodgram/internal/infra/storage"
	"github.com/totegamma/foodgram/internal/logger"
	"github.com/totegamma/foodgram/internal/observability"
	"github.com/totegamma/foodgram/internal/present/rest"
	"github.com/totegamma/foodgram/internal/present/rest/middleware"
	"github.com/totegamma/foodgram/internal/service"
	"github.com/totegamma/foodgram/internal/usecase"
	"github.com/totegamma/foodgram/policy"
)

const (
	serviceName     = "foodgram"
	catalogCacheTTL = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(conf.Server.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf, log); err != nil {
		log.Fatal("server stopped", "error", err)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, conf config.Config, log *logger.Logger) error {
	if conf.Server.EnableTrace {
		shutdown, err := observability.InitOTel(ctx, log, observability.OtelConfig{
			ServiceName: serviceName,
			Environment: conf.Server.LogMode,
			Endpoint:    conf.Server.TraceEndpoint,
			Insecure:    conf.Server.TraceInsecure,
		})
		if err != nil {
			return errors.Wrap(err, "init tracing")
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				log.Warn("failed to flush traces", "error", err)
			}
		}()
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn, log)
	if err != nil {
		return errors.Wrap(err, "connect database")
	}
	if err := database.Migrate(db); err != nil {
		return errors.Wrap(err, "migrate database")
	}

	var revocations service.RevocationStore
	if conf.Server.RedisAddr != "" {
		rdb, err := database.NewRedis(ctx, conf.Server)
		if err != nil {
			return err
		}
		defer rdb.Close()
		revocations = service.NewRedisRevocationStore(rdb)
	} else {
		log.Warn("redis is not configured, token revocations are kept in memory")
		revocations = service.NewLocalRevocationStore()
	}

	var catalogCache cache.Cache
	if conf.Server.MemcachedAddr != "" {
		catalogCache = cache.NewMemcached(database.NewMemcached(conf.Server.MemcachedAddr))
	} else {
		catalogCache = cache.NewLocal(catalogCacheTTL)
	}

	images, err := storage.New(ctx, conf.Media)
	if err != nil {
		return errors.Wrap(err, "init media storage")
	}

	engine, err := policy.NewRecipeEngine()
	if err != nil {
		return errors.Wrap(err, "load recipe policy")
	}

	users := repository.NewUserRepository(db)
	follows := repository.NewFollowRepository(db)
	catalog := repository.NewCachedCatalogRepository(repository.NewCatalogRepository(db), catalogCache, catalogCacheTTL, log)
	recipes := repository.NewRecipeRepository(db)
	activity := repository.NewActivityRepository(db)
	shoppingList := repository.NewShoppingListRepository(db)

	auth := service.NewAuthService(conf.Auth, users, revocations)

	handler := rest.NewHandler(
		conf.API,
		log,
		usecase.NewUserUsecase(users, follows, auth, auth),
		usecase.NewSubscriptionUsecase(users, follows, recipes),
		usecase.NewCatalogUsecase(catalog),
		usecase.NewRecipeUsecase(recipes, catalog, activity, follows, images, engine),
		usecase.NewShoppingListUsecase(users, shoppingList),
	)

	opts := rest.ServerOptions{
		ServiceName: serviceName,
		EnableTrace: conf.Server.EnableTrace,
	}
	if local, ok := images.(*storage.Local); ok {
		opts.MediaRoot = local.Root()
	}
	e := rest.NewServer(handler, middleware.NewAuthMiddleware(auth), log, opts)

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", conf.Server.Listen)
		if err := e.Start(conf.Server.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
