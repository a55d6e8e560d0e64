package main // Entry point package

import (
    "context"
    "log"
    "net/http"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/moliceiromeals/backend/internal/booking"
    "github.com/moliceiromeals/backend/internal/config"
    "github.com/moliceiromeals/backend/internal/database"
    "github.com/moliceiromeals/backend/internal/handler"
    appmw "github.com/moliceiromeals/backend/internal/middleware"
    "github.com/moliceiromeals/backend/internal/queue"
    "github.com/moliceiromeals/backend/internal/repository"
    "github.com/moliceiromeals/backend/internal/router"
    queue_publisher "github.com/moliceiromeals/backend/internal/service"
    "github.com/moliceiromeals/backend/internal/weather"
)

func main() {
    // Load a .env file when present so local development does not need
    // exported variables.  Missing file is fine; production injects env
    // directly.
    if err := godotenv.Load(); err == nil {
        log.Println("loaded configuration from .env")
    }

    cfg := config.Load() // Load environment config

    // ctx is cancelled on SIGINT/SIGTERM and drives the background
    // loops and the HTTP shutdown.
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    db, err := database.Open(database.Config{
        User:            cfg.DBUser,
        Pass:            cfg.DBPass,
        Host:            cfg.DBHost,
        Port:            cfg.DBPort,
        Name:            cfg.DBName,
        MaxOpenConns:    cfg.DBMaxOpenConns,
        MaxIdleConns:    cfg.DBMaxIdleConns,
        ConnMaxLifetime: cfg.DBConnMaxLifetime,
        PingTimeout:     cfg.DBPingTimeout,
    })
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()
    if err := database.Migrate(db); err != nil {
        log.Fatalf("migrations: %v", err)
    }

    restaurants := repository.NewRestaurantRepo(db)
    meals := repository.NewMealRepo(db)
    reservations := repository.NewReservationRepo(db)
    forecasts := repository.NewWeatherCacheRepo(db)

    provider := weather.NewAPIClient(cfg.WeatherAPIURL, cfg.WeatherAPIKey, cfg.WeatherAPITimeout)
    forecastCache := weather.NewCache(forecasts, provider, nil, cfg.WeatherTTL, nil)

    admission := booking.NewAdmission(
        reservations,
        cfg.ReservationCapacity,
        booking.WithPublisher(queue_publisher.New()),
    )

    e := echo.New()
    e.HideBanner = true

    // Redis is optional.  Without it the API still serves; it just runs
    // without the response cache and the rate limiter.
    var cached echo.MiddlewareFunc
    if rdb := config.NewRedisClient(); rdb != nil {
        rlCfg := config.LoadRateLimitConfig()
        if rlCfg.Enabled {
            e.Use(appmw.NewTokenBucket(rlCfg, rdb))
        }
        cacheCfg := config.LoadCacheConfig()
        if cacheCfg.Enabled {
            cached = appmw.NewRedisCache(cacheCfg, rdb)
        }
    }

    router.RegisterRoutes(e)
    router.RegisterCatalog(e, handler.NewRestaurantHandler(restaurants), handler.NewMealHandler(meals, restaurants), cached)
    router.RegisterReservations(e, handler.NewReservationHandler(admission, restaurants))
    router.RegisterWeather(e, handler.NewWeatherHandler(forecastCache))

    // Background eviction of stale forecast rows.
    go forecastCache.RunSweeper(ctx, cfg.WeatherSweepEvery)

    // Consume confirmed-reservation events.  The consumer reconnects on
    // its own; a hard failure only disables notifications.
    go func() {
        if err := queue.StartReservationConsumer(); err != nil {
            log.Printf("queue consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    go func() {
        if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
            log.Fatal(err)
        }
    }()

    <-ctx.Done()
    log.Println("shutting down")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := e.Shutdown(shutdownCtx); err != nil {
        log.Printf("shutdown: %v", err)
    }
}
