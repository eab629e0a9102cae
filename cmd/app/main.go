package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/auditrepo"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateFlagOverdueAssignmentsCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort,
		configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&driverrepo.DriverDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.AssignmentDTO{},
		&auditrepo.EntryDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateRegisterDriverCommandHandler(),
		app.CreateSetDriverStatusCommandHandler(),
		app.CreateCreateDeliveryCommandHandler(),
		app.CreateAssignDriverCommandHandler(),
		app.CreateCompleteDeliveryCommandHandler(),
		app.CreateSetDeliveryStatusCommandHandler(),
		app.CreateRecordAuditAccessCommandHandler(),
		app.CreateGetAllDriversQueryHandler(),
		app.CreateGetAllDeliveriesQueryHandler(),
		app.CreateGetDriverDeliveriesQueryHandler(),
		app.CreateGetAuditLogQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
