package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"takeout/cmd"
	"takeout/internal/adapters/out/postgres/courierrepo"
	"takeout/internal/adapters/out/postgres/ledgerrepo"
	"takeout/internal/adapters/out/postgres/orderrepo"
	"takeout/internal/adapters/out/postgres/promorepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		AssignmentMode:          goDotEnvVariable("ASSIGNMENT_MODE"),
		DefaultCommissionRateBP: int64(goDotEnvInt("DEFAULT_COMMISSION_RATE_BP")),

		UnpaidTimeoutMinutes:            goDotEnvInt("UNPAID_TIMEOUT_MINUTES"),
		PaidUnassignedAutoAssignMinutes: goDotEnvInt("PAID_UNASSIGNED_AUTO_ASSIGN_MINUTES"),
		PaidUnassignedTimeoutMinutes:    goDotEnvInt("PAID_UNASSIGNED_TIMEOUT_MINUTES"),
		ReconcileIntervalSeconds:        goDotEnvInt("RECONCILE_INTERVAL_SECONDS"),

		RoutingBaseURL:   goDotEnvVariable("ROUTING_BASE_URL"),
		RoutingAPIKey:    goDotEnvVariable("ROUTING_API_KEY"),
		RoutingTimeoutMS: goDotEnvInt("ROUTING_TIMEOUT_MS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvInt(key string) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&ledgerrepo.LedgerEntryDTO{},
		&promorepo.PromotionDTO{},
		&promorepo.RestaurantRateDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
