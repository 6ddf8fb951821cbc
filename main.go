package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/tilt-maze/api"
	api_i "github.com/beka-birhanu/tilt-maze/api/i"
	"github.com/beka-birhanu/tilt-maze/api/identity"
	sessionapi "github.com/beka-birhanu/tilt-maze/api/session"
	"github.com/beka-birhanu/tilt-maze/config"
	"github.com/beka-birhanu/tilt-maze/infrastruture/encoder"
	logger "github.com/beka-birhanu/tilt-maze/infrastruture/log"
	"github.com/beka-birhanu/tilt-maze/infrastruture/notifier"
	"github.com/beka-birhanu/tilt-maze/infrastruture/render"
	"github.com/beka-birhanu/tilt-maze/infrastruture/token"
	"github.com/beka-birhanu/tilt-maze/service"
	"github.com/beka-birhanu/tilt-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const evictionInterval = time.Minute

// Global variables for dependencies
var (
	redisClient        *redis.Client
	winNotifier        i.WinNotifier
	winHistory         i.WinHistory
	jwtTokenizer       i.Tokenizer
	gameSessionManager *service.GameSessionManager
	sessionController  api_i.Controller
	router             *api.Router
	appLogger          i.Logger
)

func newLogger(component, color string) i.Logger {
	l, err := logger.New(component, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", component, err))
		os.Exit(1)
	}
	return l
}

func initRedis(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, wins are only logged")
		return
	}

	redisClient = redis.NewClient(&redis.Options{Addr: config.Envs.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initWinNotifier() {
	if redisClient == nil {
		n := notifier.NewLogWinNotifier(newLogger("WINS", config.ColorMagenta), 0)
		winNotifier, winHistory = n, n
		appLogger.Info("Log win notifier initialized")
		return
	}

	n, err := notifier.NewRedisWinNotifier(redisClient, notifier.Options{Channel: config.Envs.RedisChannel})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating redis win notifier: %v", err))
		os.Exit(1)
	}
	winNotifier, winHistory = n, n
	appLogger.Info("Redis win notifier initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initSessionManager() {
	var err error
	gameSessionManager, err = service.NewGameSessionManager(&service.Config{
		Tokenizer: jwtTokenizer,
		Notifier:  winNotifier,
		Logger:    newLogger("SESSION-MANAGER", config.ColorCyan),
		Rows:      config.Envs.MazeRows,
		Cols:      config.Envs.MazeCols,
		Width:     config.Envs.WorldWidth,
		Height:    config.Envs.WorldHeight,
		TTL:       time.Duration(config.Envs.SessionTTLMinutes) * time.Minute,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initSessionController() {
	var err error
	sessionController, err = sessionapi.NewSessionController(sessionapi.Config{
		Manager:  gameSessionManager,
		Encoder:  &encoder.Protowire{},
		Renderer: &render.PNG{Scale: 1},
		History:  winHistory,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{sessionController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

// evictIdleSessions drops abandoned sessions until ctx is done.
func evictIdleSessions(ctx context.Context) {
	ticker := time.NewTicker(evictionInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			gameSessionManager.EvictIdle()
		}
	}
}

func main() {
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	config.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	initRedis(pingCtx)
	cancel()
	if redisClient != nil {
		defer redisClient.Close()
	}

	initWinNotifier()
	initJWTTokenizer()
	initSessionManager()
	defer gameSessionManager.StopAll()
	initSessionController()
	initRouter(jwtTokenizer)

	go evictIdleSessions(ctx)

	// Run HTTP server
	if err := router.Run(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Running server: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Server stopped")
}
