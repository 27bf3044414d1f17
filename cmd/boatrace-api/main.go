package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/boatrace-predictor/internal/config"
	applogger "github.com/yourusername/boatrace-predictor/internal/logger"
	"github.com/yourusername/boatrace-predictor/internal/models"
	"github.com/yourusername/boatrace-predictor/internal/venue"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	logger     *logrus.Logger

	raceDate   string
	raceVenue  string
	raceNumber string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	predictCmd.Flags().StringVarP(&raceDate, "date", "d", "", "Race date (YYYYMMDD)")
	predictCmd.Flags().StringVarP(&raceVenue, "venue", "v", "", "Venue code (01-24)")
	predictCmd.Flags().StringVarP(&raceNumber, "race", "r", "", "Race number (1-12)")
	_ = predictCmd.MarkFlagRequired("date")
	_ = predictCmd.MarkFlagRequired("venue")
	_ = predictCmd.MarkFlagRequired("race")
}

var rootCmd = &cobra.Command{
	Use:   "boatrace-api",
	Short: "Boatrace race prediction service",
	Long:  `Scrapes race lists from the official boatrace site and scores each lane's win probability.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict a single race and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPredict(cmd.Context())
	},
}

var venuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "Print the venue table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(venue.NewStaticDirectory().All())
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, predictCmd, venuesCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger = applogger.New(os.Stdout, cfg.App.LogLevel, cfg.App.Environment)
	return nil
}

func runServe(ctx context.Context) error {
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	logger.WithFields(logrus.Fields{
		"version":        Version,
		"commit":         GitCommit,
		"build_date":     BuildDate,
		"scoring_policy": cfg.Scoring.Policy,
		"database":       cfg.Database.Driver,
	}).Info("Starting boatrace-api")

	return a.Serve(ctx)
}

func runPredict(ctx context.Context) error {
	query, err := models.NewRaceQuery(raceDate, raceVenue, raceNumber)
	if err != nil {
		return err
	}

	// Keep stdout clean for the JSON result
	logger.SetOutput(os.Stderr)

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	prediction, err := a.predictions.Predict(ctx, query)
	if err != nil {
		return err
	}
	return printJSON(prediction)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
