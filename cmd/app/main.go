package main

import (
	"fmt"
	"net/http"
	"os"

	"drycleaning/cmd"
	wizardhttp "drycleaning/internal/adapters/in/http"
	"drycleaning/internal/adapters/out/postgres/sessionrepo"
	"drycleaning/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to assemble application: %v", err)
	}

	jobManager := jobs.NewJobManager(
		app.CreateExpireStaleSessionsCommandHandler(),
		app.SessionTTL(),
		app.Logger(),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT"),
		DBHost:          goDotEnvVariable("DB_HOST"),
		DBPort:          goDotEnvVariable("DB_PORT"),
		DBUser:          goDotEnvVariable("DB_USER"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD"),
		DBName:          goDotEnvVariable("DB_NAME"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE"),
		BackendBaseURL:  goDotEnvVariable("BACKEND_BASE_URL"),
		SessionTTLHours: goDotEnvVariable("SESSION_TTL_HOURS"),
		SyncMaxAttempts: goDotEnvVariable("SYNC_MAX_ATTEMPTS"),
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
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&sessionrepo.SessionDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := wizardhttp.NewServer(
		app.CreateStartWizardCommandHandler(),
		app.CreateSetClientInfoCommandHandler(),
		app.CreateAdvanceStageCommandHandler(),
		app.CreateGoBackCommandHandler(),
		app.CreateStartItemDraftCommandHandler(),
		app.CreateUpdateItemDraftCommandHandler(),
		app.CreateSaveItemCommandHandler(),
		app.CreateCancelItemDraftCommandHandler(),
		app.CreateSetOrderAdjustmentsCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateCancelWizardCommandHandler(),
		app.CreateGetSessionQueryHandler(),
		app.CreatePreviewItemPriceQueryHandler(),
		app.CreateGetOrderSummaryQueryHandler(),
		app.Synchronizer(),
		app.Logger(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
