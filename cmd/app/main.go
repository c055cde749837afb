package main

import (
	"fmt"
	"os"
	"strconv"

	"orderlink/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()

	app := cmd.NewCompositionRoot(
		configs,
	)
	defer app.Close()

	if err := app.JobManager().StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		BackendBaseURL:        goDotEnvVariable("BACKEND_BASE_URL"),
		AuthToken:             goDotEnvVariable("AUTH_TOKEN"),
		CourierUsername:       goDotEnvVariable("COURIER_USERNAME"),
		CourierRole:           goDotEnvVariable("COURIER_ROLE"),
		StorePath:             goDotEnvVariable("STORE_PATH"),
		ReloadIntervalSeconds: goDotEnvInt("RELOAD_INTERVAL_SECONDS"),
		DefaultLat:            goDotEnvFloat("DEFAULT_LAT"),
		DefaultLng:            goDotEnvFloat("DEFAULT_LNG"),
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
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %q", key, raw)
	}
	return value
}

func goDotEnvFloat(key string) float64 {
	raw := goDotEnvVariable(key)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid number for %s: %q", key, raw)
	}
	return value
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	app.Server().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
