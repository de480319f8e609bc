package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/his-appointment-scheduler/internal/adapters/in/http"
	"github.com/suchimauz/his-appointment-scheduler/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/his-appointment-scheduler/internal/adapters/out/cache"
	"github.com/suchimauz/his-appointment-scheduler/internal/adapters/out/logger"
	"github.com/suchimauz/his-appointment-scheduler/internal/adapters/out/storage"
	"github.com/suchimauz/his-appointment-scheduler/internal/config"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/out"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/services"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	storageAdapter, err := storage.NewSqliteAdapter(cfg, log.WithModule("SqliteAdapter"))
	if err != nil {
		log.Error("app.storage.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer storageAdapter.Close()

	var cachePort out.CachePort
	if cfg.Cache.Enabled {
		cacheAdapter, err := cache.NewCacheAdapter(cfg, log.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cachePort = cacheAdapter
	}

	// Инициализация сервисов
	appointmentService := services.NewAppointmentService(
		storageAdapter,
		cachePort,
		log.WithModule("AppointmentService"),
	)
	userService := services.NewUserService(
		storageAdapter,
		cachePort,
		log.WithModule("UserService"),
	)

	// Настройка HTTP сервера
	router := gin.Default()
	appointmentController := http.NewAppointmentController(appointmentService, cfg)
	appointmentController.RegisterRoutes(router)
	userController := http.NewUserController(userService, cfg)
	userController.RegisterRoutes(router)

	// Слушатель событий пользователей только если RabbitMQ включен
	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewUserEventsListener(
			userService,
			cfg,
			log.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
