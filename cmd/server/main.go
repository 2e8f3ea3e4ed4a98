package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"petpet/internal/auth"
	"petpet/internal/config"
	apphttp "petpet/internal/http"
	"petpet/internal/repository/sqlite"
	"petpet/internal/service"
	"petpet/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	likeRepo := sqlite.NewLikeRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := postRepo.Init(ctx); err != nil {
		logger.Fatalf("init post repository: %v", err)
	}
	if err := likeRepo.Init(ctx); err != nil {
		logger.Fatalf("init like repository: %v", err)
	}

	store, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, likeRepo, userRepo, store)
	likeService := service.NewLikeService(likeRepo, postRepo, userRepo)

	sessions := auth.NewSessionManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		postService,
		likeService,
		sessions,
		store,
		cfg.Frontend.Origin,
		cfg.Auth.SecureCookies,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case "", "local":
		logger.Infof("using local upload dir %s", cfg.Upload.Dir)
		return storage.NewLocalStore(cfg.Upload.Dir)
	case "s3":
		if cfg.Storage.Bucket == "" {
			return nil, fmt.Errorf("storage bucket is required")
		}

		loadOpts := []func(*awscfg.LoadOptions) error{
			awscfg.WithRegion(cfg.Storage.Region),
		}
		if cfg.AWS.Profile != "" {
			loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
		}

		awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Storage.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
				o.UsePathStyle = true
			}
		})
		logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
		return storage.NewS3Store(client, cfg.Storage.Bucket, cfg.Storage.KeyPrefix)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
