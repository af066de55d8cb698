package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"skill-exchange/config"
	"skill-exchange/db"
	"skill-exchange/handlers"
	"skill-exchange/logging"
	"skill-exchange/routes"
	"skill-exchange/secretmanager"
	"skill-exchange/services"
	"skill-exchange/store"
	"skill-exchange/telemetry"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var (
	loadEnv          = godotenv.Load
	loadConfig       = config.Load
	configureLogging = logging.Configure
	initTelemetry    = telemetry.Init
	connectDB        = db.Connect
	migrateDB        = func(ctx context.Context) error { return db.Migrate(ctx, db.DB) }
	newValkeyStore   = func(cfg config.ValkeyConfig) (store.RevocationStore, error) {
		valkey, err := store.NewValkeyStore(cfg)
		if err != nil {
			return nil, err
		}
		return valkey, nil
	}
	setupRoutes    = routes.SetupRoutes
	listenAndServe = http.ListenAndServe
	getSecret      = secretmanager.GetSecret
	getSecretMap   = secretmanager.GetSecretMap
	logFatal       = func(err error) { logging.Logger().Fatal("server stopped", zap.Error(err)) }
)

type postgresSecret struct {
	Username             string `json:"username"`
	Password             string `json:"password"`
	Engine               string `json:"engine"`
	Host                 string `json:"host"`
	Port                 int    `json:"port"`
	DBInstanceIdentifier string `json:"dbInstanceIdentifier"`
}

func validatePostgresSecret(secret postgresSecret) error {
	fields := []struct{ name, value string }{
		{"username", secret.Username},
		{"password", secret.Password},
		{"engine", secret.Engine},
		{"host", secret.Host},
		{"dbInstanceIdentifier", secret.DBInstanceIdentifier},
	}
	var missing []string
	for _, field := range fields {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("postgres secret missing fields: %s", strings.Join(missing, ", "))
	}
	if secret.Port <= 0 || secret.Port > 65535 {
		return fmt.Errorf("postgres secret has invalid port: %d", secret.Port)
	}
	return nil
}

var setEnv = func(key, value string) error {
	if key == "" {
		return errors.New("environment key is empty")
	}
	return os.Setenv(key, value)
}

func setEnvFromMap(values map[string]string) error {
	for key, value := range values {
		if err := setEnv(key, value); err != nil {
			return err
		}
	}
	return nil
}

func loadPostgresSecret() (postgresSecret, error) {
	raw, err := getSecret("prod/postgres")
	if err != nil {
		return postgresSecret{}, fmt.Errorf("error retrieving Postgres secret: %w", err)
	}
	var pg postgresSecret
	if err := json.Unmarshal([]byte(raw), &pg); err != nil {
		return postgresSecret{}, fmt.Errorf("error parsing Postgres secret JSON: %w", err)
	}
	if err := validatePostgresSecret(pg); err != nil {
		return postgresSecret{}, err
	}
	return pg, nil
}

func loadProdSecrets() error {
	jwtSecrets, err := getSecretMap("prod/jwt")
	if err != nil {
		return fmt.Errorf("error retrieving JWT secret: %w", err)
	}
	if err := setEnvFromMap(jwtSecrets); err != nil {
		return err
	}

	pg, err := loadPostgresSecret()
	if err != nil {
		return err
	}
	if err := setEnvFromMap(map[string]string{
		"DB_USERNAME":            pg.Username,
		"DB_PASSWORD":            pg.Password,
		"DB_ENGINE":              pg.Engine,
		"DB_HOST":                pg.Host,
		"DB_PORT":                strconv.Itoa(pg.Port),
		"DB_INSTANCE_IDENTIFIER": pg.DBInstanceIdentifier,
	}); err != nil {
		return err
	}

	valkeySecrets, err := getSecretMap("prod/valkey")
	if err != nil {
		logging.Logger().Warn("Valkey secret unavailable; using environment", zap.Error(err))
		return nil
	}
	return setEnvFromMap(valkeySecrets)
}

func main() {
	if err := run(); err != nil {
		logFatal(err)
	}
}

func run() error {
	if err := loadEnv(); err != nil {
		logging.Logger().Info("No .env file found; using system environment variables")
	}
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	if appEnv == "prod" {
		if err := loadProdSecrets(); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if err := configureLogging(cfg.Log.JSON, cfg.Log.Debug); err != nil {
		return fmt.Errorf("logging setup error: %w", err)
	}
	defer func() { _ = logging.Sync() }()
	logger := logging.Logger()
	logger.Info("Environment", zap.String("app_env", cfg.AppEnv))

	ctx := context.Background()
	shutdownTelemetry, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("telemetry setup error: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	if err := connectDB(cfg.DB); err != nil {
		return err
	}
	if err := migrateDB(ctx); err != nil {
		return fmt.Errorf("database migration error: %w", err)
	}

	revocations, err := newValkeyStore(cfg.Valkey)
	if err != nil {
		return fmt.Errorf("valkey connection error: %w", err)
	}
	defer revocations.Close()

	userStore := store.NewPostgresUserStore(db.DB)
	identity := services.NewIdentityService(userStore, revocations, cfg.Auth)
	profiles := services.NewProfileService(store.NewPostgresProfileStore(db.DB))

	if cfg.Seed.Enabled {
		seeder := services.NewSeeder(identity, userStore, profiles, cfg.Seed.UserPassword)
		if _, err := seeder.Seed(ctx, services.SampleProfiles); err != nil {
			logger.Error("Error seeding sample profiles", zap.Error(err))
		}
	}

	router := setupRoutes(cfg, routes.Handlers{
		Auth:     handlers.NewAuthHandler(cfg, identity),
		Profiles: handlers.NewProfileHandler(profiles),
		Matches:  handlers.NewMatchHandler(profiles),
		Health:   handlers.NewHealthHandler(db.DB),
		Resolver: identity,
	})

	corsOpts := []gorillaHandlers.CORSOption{
		gorillaHandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With"}),
		gorillaHandlers.AllowCredentials(),
	}
	corsHandler := gorillaHandlers.CORS(corsOpts...)(router)
	handler := otelhttp.NewHandler(corsHandler, cfg.Telemetry.ServiceName)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("Starting server",
		zap.String("port", port),
		zap.String("env", cfg.AppEnv),
		zap.String("cors", strings.Join(cfg.CORS.AllowedOrigins, ",")),
	)
	return listenAndServe(":"+port, handler)
}
