// Package main provides the flowstate server and cycle CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HarshitaThota/Flow-State/internal/api"
	"github.com/HarshitaThota/Flow-State/internal/cli"
	"github.com/HarshitaThota/Flow-State/internal/config"
	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/db"
	"github.com/HarshitaThota/Flow-State/internal/logger"
	"github.com/HarshitaThota/Flow-State/internal/services"
)

const (
	shutdownTimeout    = 10 * time.Second
	defaultCLIForecast = 30
	defaultResetDBPath = "data/flowstate.db"
	cliDateLayout      = "2006-01-02"
)

var (
	profileLastStart    string
	profileCycleLength  int
	profilePeriodLength int
	profileDate         string
	todayJSON           bool
	forecastDays        int

	resetDBPath string
	resetEmail  string
	resetPrompt bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "flowstate",
		Short:         "Cycle-aware energy tracking server and calculator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newForecastCmd())
	rootCmd.AddCommand(newResetPasswordCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and reminder scheduler",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	for _, warning := range cfg.Warnings {
		log.Warn(warning)
	}
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	handler, err := api.NewHandler(database, api.HandlerOptions{
		SecretKey:    cfg.SecretKey,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		ForecastDays: cfg.ForecastDays,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newServerApp(handler, log)

	lifecycleCtx, cancelLifecycle := context.WithCancel(cmd.Context())
	defer cancelLifecycle()

	reminders := services.NewReminderService(
		db.NewRepositories(database).Users,
		newNotifier(cfg, log),
		log,
		cfg.Location,
		cfg.ReminderDaysBefore,
	)
	if _, err := reminders.Start(lifecycleCtx, cfg.ReminderSchedule); err != nil {
		return err
	}

	sigCtx, stopSignals := signal.NotifyContext(lifecycleCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("flowstate listening",
		zap.String("port", cfg.Port),
		zap.String("db", cfg.DBPath),
		zap.String("tz", cfg.Location.String()),
		zap.Bool("telegram", cfg.TelegramEnabled()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newServerApp(handler *api.Handler, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Flow State",
		DisableStartupMessage: true,
		ErrorHandler:          api.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(api.RequestID)
	app.Use(api.AccessLog(log))
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func newNotifier(cfg *config.Config, log *zap.Logger) services.Notifier {
	if cfg.TelegramEnabled() {
		return services.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
	}
	return services.NewLogNotifier(log)
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&profileLastStart, "last-period-start", "", "first day of the last period (YYYY-MM-DD)")
	cmd.Flags().IntVar(&profileCycleLength, "cycle-length", 28, "average cycle length in days")
	cmd.Flags().IntVar(&profilePeriodLength, "period-length", 5, "average period length in days")
	cmd.Flags().StringVar(&profileDate, "date", "", "day to evaluate (YYYY-MM-DD, default: today)")
	_ = cmd.MarkFlagRequired("last-period-start")
}

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the cycle day, phase and recommendations for a day",
		Args:  cobra.NoArgs,
		RunE:  runTodayCmd,
	}
	addProfileFlags(cmd)
	cmd.Flags().BoolVar(&todayJSON, "json", false, "print JSON instead of text")
	return cmd
}

func newForecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "List upcoming cycle days",
		Args:  cobra.NoArgs,
		RunE:  runForecastCmd,
	}
	addProfileFlags(cmd)
	cmd.Flags().IntVar(&forecastDays, "days", defaultCLIForecast, "number of days to list")
	return cmd
}

func resolveProfile() (cycle.Profile, time.Time, error) {
	if err := services.ValidateCycleLengths(profileCycleLength, profilePeriodLength); err != nil {
		return cycle.Profile{}, time.Time{}, err
	}
	lastStart, err := services.ParseDay(profileLastStart, time.Local)
	if err != nil {
		return cycle.Profile{}, time.Time{}, fmt.Errorf("--last-period-start: %w", err)
	}

	day := services.DateAtLocation(time.Now(), time.Local)
	if strings.TrimSpace(profileDate) != "" {
		day, err = services.ParseDay(profileDate, time.Local)
		if err != nil {
			return cycle.Profile{}, time.Time{}, fmt.Errorf("--date: %w", err)
		}
	}

	return cycle.Profile{
		CycleLength:     profileCycleLength,
		PeriodLength:    profilePeriodLength,
		LastPeriodStart: lastStart,
	}, day, nil
}

type todayReport struct {
	Today               cycle.CycleDay       `json:"today"`
	NextPeriod          string               `json:"next_period"`
	DaysUntilNextPeriod int                  `json:"days_until_next_period"`
	EnergyMultiplier    float64              `json:"energy_multiplier"`
	Recommendations     cycle.Recommendation `json:"recommendations"`
}

func runTodayCmd(cmd *cobra.Command, _ []string) error {
	profile, day, err := resolveProfile()
	if err != nil {
		return err
	}

	info := cycle.TodayInfo(profile, day)
	next := cycle.NextPeriodDate(profile, day)
	report := todayReport{
		Today:               info,
		NextPeriod:          next.Format(cliDateLayout),
		DaysUntilNextPeriod: cycle.DaysBetween(day, next),
		EnergyMultiplier:    cycle.EnergyMultiplier(info.Phase),
		Recommendations:     cycle.RecommendationsFor(info.Phase),
	}

	out := cmd.OutOrStdout()
	if todayJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}
	return printTodayReport(out, report, profile.CycleLength)
}

func printTodayReport(out io.Writer, report todayReport, cycleLength int) error {
	lines := []string{
		fmt.Sprintf("%s: day %d of %d, %s phase", report.Today.Date.Format(cliDateLayout), report.Today.DayOfCycle, cycleLength, report.Today.Phase),
		fmt.Sprintf("Next period: %s (in %d days)", report.NextPeriod, report.DaysUntilNextPeriod),
		fmt.Sprintf("Energy multiplier: %.1f", report.EnergyMultiplier),
		"Best for: " + strings.Join(report.Recommendations.BestFor, ", "),
		"Avoid: " + strings.Join(report.Recommendations.Avoid, ", "),
		"Tip: " + report.Recommendations.Tips,
	}
	_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}

func runForecastCmd(cmd *cobra.Command, _ []string) error {
	if forecastDays < 1 || forecastDays > 366 {
		return fmt.Errorf("--days must be between 1 and 366, got %d", forecastDays)
	}
	profile, day, err := resolveProfile()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, entry := range cycle.Forecast(profile, day, forecastDays) {
		marker := ""
		if entry.PeriodStart {
			marker = "  period starts"
		}
		if _, err := fmt.Fprintf(out, "%s  day %2d  %-10s%s\n", entry.Date.Format(cliDateLayout), entry.DayOfCycle, entry.Phase, marker); err != nil {
			return err
		}
	}
	return nil
}

func newResetPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset a user's password from the server host",
		Args:  cobra.NoArgs,
		RunE:  runResetPasswordCmd,
	}
	cmd.Flags().StringVar(&resetDBPath, "db", "", "database path (default: $DB_PATH or "+defaultResetDBPath+")")
	cmd.Flags().StringVar(&resetEmail, "email", "", "account email")
	cmd.Flags().BoolVar(&resetPrompt, "prompt", false, "type the new password instead of generating a temporary one")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runResetPasswordCmd(cmd *cobra.Command, _ []string) error {
	dbPath := strings.TrimSpace(resetDBPath)
	if dbPath == "" {
		dbPath = strings.TrimSpace(os.Getenv("DB_PATH"))
	}
	if dbPath == "" {
		dbPath = filepath.FromSlash(defaultResetDBPath)
	}

	log, err := logger.New(config.EnvDevelopment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	return cli.RunResetPasswordCommand(cli.ResetPasswordOptions{
		DBPath: dbPath,
		Email:  resetEmail,
		Prompt: resetPrompt,
		Stdin:  os.Stdin,
		Out:    cmd.OutOrStdout(),
		Log:    log,
	})
}
