package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"slotbook/config"
	_ "slotbook/docs"
	"slotbook/internal/cache"
	"slotbook/internal/repository"
	"slotbook/internal/service"
	"slotbook/internal/storage"
	"slotbook/internal/transport/rest"
	"slotbook/internal/transport/websocket"
	"slotbook/pkg/database"
	"slotbook/pkg/logger"
)

// @title Slotbook API
// @version 1.0
// @description API для записи к специалистам: слоты, бронирование, поиск специалистов

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// .env необязателен, в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	logLevel := "info"
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logLevel = level
	}

	rootCmd := &cobra.Command{
		Use:   "slotbook",
		Short: "Сервис записи к специалистам",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(logLevel)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "Уровень логирования (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd(&logLevel))
	rootCmd.AddCommand(migrateCmd(&logLevel))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP сервер",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*logLevel)
		},
	}
}

func migrateCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции Postgres или создать индексы MongoDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*logLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			switch cfg.StoreDriver {
			case config.StoreDriverMongo:
				client, db, err := database.NewMongoDB(ctx, cfg.Mongo)
				if err != nil {
					return fmt.Errorf("подключение к MongoDB: %w", err)
				}
				defer client.Disconnect(context.Background())

				if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
					return fmt.Errorf("создание индексов: %w", err)
				}
				log.Info("Индексы MongoDB созданы")
			default:
				pool, err := database.NewPostgresDB(ctx, cfg.Postgres)
				if err != nil {
					return fmt.Errorf("подключение к БД: %w", err)
				}
				defer pool.Close()

				if err := database.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, log); err != nil {
					return fmt.Errorf("миграции: %w", err)
				}
				log.Info("Миграции успешно выполнены")
			}

			return nil
		},
	}
}

func bootstrap(logLevel string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	log, err := logger.NewLogger(cfg.Environment, logLevel,
		zap.String("service", cfg.Name),
		zap.String("version", cfg.Version),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("не удалось создать логгер: %w", err)
	}

	return cfg, log, nil
}

func runServer(logLevel string) error {
	cfg, log, err := bootstrap(logLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var photos storage.PhotoStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			return fmt.Errorf("не удалось инициализировать S3 хранилище: %w", err)
		}
		photos = s3Storage
		log.Info("S3 хранилище успешно инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, фото профиля хранятся в записи пользователя")
	}

	var searchCache *cache.Client
	if cfg.Redis.Addr != "" {
		searchCache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer searchCache.Close()

		if err := searchCache.Ping(ctx); err != nil {
			log.Warn("Redis недоступен, поиск работает без кэша", zap.Error(err))
		}
	}

	hub := websocket.NewAppointmentHub(log, cfg.HTTP.AllowedOrigin)
	go hub.Run(ctx)

	services := service.NewServices(service.Deps{
		Repos:  repos,
		Logger: log,
		Config: cfg,
		Photos: photos,
		Cache:  searchCache,
		Events: hub,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handler := rest.NewHandler(services, log, cfg, hub)
	handler.InitRoutes(router)

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("Сервер запущен",
		zap.String("addr", srv.Addr),
		zap.String("store", cfg.StoreDriver),
		zap.String("version", cfg.Version),
	)

	select {
	case err := <-errCh:
		return fmt.Errorf("ошибка запуска сервера: %w", err)
	case <-ctx.Done():
	}

	log.Info("Выключение сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	}

	log.Info("Сервер успешно остановлен")
	return nil
}

// openStore подключает выбранное хранилище и готовит схему.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*repository.Repositories, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		client, db, err := database.NewMongoDB(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("не удалось подключиться к MongoDB: %w", err)
		}

		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("не удалось создать индексы MongoDB: %w", err)
		}

		return repository.NewMongoRepositories(db), func() {
			_ = client.Disconnect(context.Background())
		}, nil
	default:
		pool, err := database.NewPostgresDB(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
		}

		log.Info("Запуск миграций базы данных")
		if err := database.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, log); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ошибка при выполнении миграций: %w", err)
		}

		return repository.NewPostgresRepositories(pool), pool.Close, nil
	}
}
