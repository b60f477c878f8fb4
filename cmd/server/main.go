package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/yummyyard/internal/app"
	"github.com/linemk/yummyyard/internal/app/handlers"
	"github.com/linemk/yummyyard/internal/config"
	"github.com/linemk/yummyyard/internal/lib/logger"
	"github.com/linemk/yummyyard/internal/lib/logger/handlers/urllog"
	"github.com/linemk/yummyyard/internal/notify"
	"github.com/linemk/yummyyard/internal/service"
	"github.com/linemk/yummyyard/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	// публикация событий заказов: брокер опционален, без него — заглушка
	var notifier notify.OrderNotifier = notify.Noop{}
	if cfg.AMQP.Enabled {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			log.Error("failed to connect to broker", slog.Any("error", err))
			panic(errors.Wrap(err, "failed to connect to broker"))
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
	}

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// реализация слоев по работе с БД по каждому направлению
	userRepo := storage.NewUserRepository(application.DB)
	menuRepo := storage.NewMenuRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)

	registerService := service.NewRegisterService(application.Logger, userRepo)
	authService := service.NewAuthService(application.Logger, userRepo)
	menuService := service.NewMenuService(application.Logger, menuRepo)
	orderService := service.NewOrderService(application.Logger, application.DB, orderRepo, notifier)

	// проверка доступности БД
	router.Get("/api/health", handlers.HealthHandler(application.Logger, application.DB))
	// регистрация и вход
	router.Post("/api/register", handlers.RegisterHandler(application.Logger, registerService))
	router.Post("/api/login", handlers.LoginHandler(application.Logger, authService))
	// каталог
	router.Get("/api/menu", handlers.MenuHandler(application.Logger, menuService))
	router.Get("/api/menu/category/{categoryId}", handlers.MenuByCategoryHandler(application.Logger, menuService))
	router.Get("/api/menu/item/{id}", handlers.MenuItemHandler(application.Logger, menuService))
	router.Get("/api/categories", handlers.CategoriesHandler(application.Logger, menuService))
	// заказы
	router.Post("/api/orders", handlers.CreateOrderHandler(application.Logger, orderService))
	router.Get("/api/orders/user/{userId}", handlers.UserOrdersHandler(application.Logger, orderService))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
