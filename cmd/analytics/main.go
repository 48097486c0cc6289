package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/invensight/backend-go/internal/config"
	"github.com/invensight/backend-go/internal/domain"
	"github.com/invensight/backend-go/internal/engine"
	"github.com/invensight/backend-go/internal/repository/postgres"
	"github.com/invensight/backend-go/internal/service"
	"github.com/invensight/backend-go/internal/storage"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newFilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "location",
			Usage: "Limit the analysis to specific location ids (repeatable)",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of results to return",
		},
	}
}

func initDB(c *cli.Context) error {
	db, err := postgres.NewDBFromURL("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) (*postgres.DB, error) {
	db, ok := c.Context.Value(dbKey).(*postgres.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "analytics",
		Usage: "Run inventory analysis from the command line",
		Commands: []*cli.Command{
			{
				Name:  "insights",
				Usage: "Generate ranked strategic insights",
				Flags: append([]cli.Flag{
					newDBURLFlag(),
					&cli.BoolFlag{
						Name:  "export",
						Usage: "Upload the insight report as CSV to object storage",
					},
				}, newFilterFlags()...),
				Before: initDB,
				After:  closeDB,
				Action: runInsights,
			},
			{
				Name:  "forecast",
				Usage: "Generate 30-day product forecasts",
				Flags: append([]cli.Flag{
					newDBURLFlag(),
				}, newFilterFlags()...),
				Before: initDB,
				After:  closeDB,
				Action: runForecast,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func filterFromFlags(c *cli.Context) domain.AnalysisFilter {
	return domain.AnalysisFilter{
		LocationIDs: c.StringSlice("location"),
		Limit:       c.Int("limit"),
	}
}

func buildInsightService(db *postgres.DB) *service.InsightService {
	return service.NewInsightService(
		postgres.NewProductRepository(db),
		postgres.NewSaleRepository(db),
		postgres.NewLocationRepository(db),
		nil, nil, engine.DefaultParams(),
	)
}

func runInsights(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	insightService := buildInsightService(db)
	insights, err := insightService.GetInsights(c.Context, filterFromFlags(c))
	if err != nil {
		return fmt.Errorf("failed to generate insights: %w", err)
	}

	if err := printJSON(insights); err != nil {
		return err
	}

	if !c.Bool("export") {
		return nil
	}

	cfg := config.Load()
	minioClient, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	exporter := storage.NewReportExporter(minioClient)
	key, err := exporter.ExportInsights(c.Context, engine.SystemClock{}.Now(), insights)
	if err != nil {
		return fmt.Errorf("failed to export insight report: %w", err)
	}

	log.Printf("Uploaded insight report to %s\n", key)
	return nil
}

func runForecast(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	forecastService := service.NewForecastService(
		postgres.NewProductRepository(db),
		postgres.NewSaleRepository(db),
		postgres.NewLocationRepository(db),
		nil, nil, engine.DefaultParams(),
	)

	forecasts, err := forecastService.GetForecasts(c.Context, filterFromFlags(c))
	if err != nil {
		return fmt.Errorf("failed to generate forecasts: %w", err)
	}

	return printJSON(forecasts)
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
