// Command querycrafter is the CLI entrypoint: flag/env/file resolution,
// crash-reporting setup, signal handling, and finally handing control to
// the bubbletea program loop — grounded on ted/main.go's cobra root
// command, first-run prompt, and panic-recovery/cleanup pattern.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/ehfeng/querycrafter/internal/config"
	"github.com/ehfeng/querycrafter/internal/driver"
	"github.com/ehfeng/querycrafter/internal/history"
	"github.com/ehfeng/querycrafter/internal/report"
	"github.com/ehfeng/querycrafter/internal/tunnel"
	"github.com/ehfeng/querycrafter/internal/ui"
)

// sentryDSN mirrors ted's hard-coded DSN constant, repointed at this
// project (placeholder: the real DSN is an operational secret, not part
// of the source).
const sentryDSN = ""

var (
	flagHost           string
	flagPort           string
	flagUsername       string
	flagPassword       string
	flagPasswordPrompt bool
	flagSSLMode        string
	flagConnString     string
	flagSQLiteFile     string
	flagProfile        int
	flagCrashReporting string

	flagTunnel         bool
	flagTunnelEnv      string
	flagTunnelProfile  string
	flagTunnelUser     string
	flagTunnelKey      string
	flagTunnelSessionM bool

	flagTickRateMS  int
	flagFrameRateMS int
)

var rootCmd = &cobra.Command{
	Use:   "querycrafter [DBNAME]",
	Short: "querycrafter is a terminal SQL query workbench",
	Long: `querycrafter is a terminal-based interactive SQL query workbench: browse
schema objects, compose and execute queries in a modal (vim-style) editor,
and explore tabular results.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagHost, "host", "H", "", "database host")
	f.StringVarP(&flagPort, "port", "p", "", "database port")
	f.StringVarP(&flagUsername, "username", "U", "", "database username")
	f.StringVarP(&flagPassword, "password", "W", "", "database password")
	f.BoolVar(&flagPasswordPrompt, "prompt-password", false, "prompt for the database password interactively")
	f.StringVar(&flagSSLMode, "sslmode", "", "postgres sslmode")
	f.StringVar(&flagConnString, "conn", "", "full libpq connection string; without --tunnel it is used as-is instead of the other connection flags")
	f.StringVar(&flagSQLiteFile, "sqlite", "", "path to a SQLite database file")
	f.IntVar(&flagProfile, "profile", 0, "config profile index (accepted but not read; settings.yaml holds no profiles)")
	f.StringVar(&flagCrashReporting, "crash-reporting", "", "manage crash reporting (enable, disable, status)")

	f.BoolVar(&flagTunnel, "tunnel", false, "connect through an SSH/AWS-bastion tunnel")
	f.StringVar(&flagTunnelEnv, "tunnel-env", "", "bastion/RDS environment name to match (e.g. staging)")
	f.StringVar(&flagTunnelProfile, "tunnel-aws-profile", "", "AWS CLI profile to use for the tunnel")
	f.StringVar(&flagTunnelUser, "tunnel-user", "ec2-user", "SSH user on the bastion host")
	f.StringVar(&flagTunnelKey, "tunnel-key", "", "path to the SSH private key for the bastion")
	f.BoolVar(&flagTunnelSessionM, "tunnel-session-manager", false, "tunnel via AWS Session Manager instead of a direct SSH connection")

	f.IntVar(&flagTickRateMS, "tick-rate-ms", 1000, "event loop tick rate in milliseconds (accepted but not read; the loop ticks every 1000ms)")
	f.IntVar(&flagFrameRateMS, "frame-rate-ms", 60, "render frame rate in milliseconds (accepted but not read; frames fire every 60ms)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if flagCrashReporting != "" {
		return handleCrashReportingFlag(flagCrashReporting)
	}

	cfg, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	applyFlags(cfg, args)
	cfg.FromEnv()

	if err := resolvePassword(cfg); err != nil {
		return err
	}

	drv, cleanupConn, err := connect(cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	addCleanup(cleanupConn)

	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}
	hist, err := history.Load(dataDir)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	app := ui.NewApp(cfg, drv, hist)
	program := tea.NewProgram(app, tea.WithAltScreen())

	_, err = program.Run()
	return err
}

func applyFlags(cfg *config.Config, args []string) {
	if len(args) > 0 {
		cfg.Database = args[0]
	}
	if flagSQLiteFile != "" {
		cfg.Database = flagSQLiteFile
		cfg.DriverOverride = "sqlite"
	}
	if flagHost != "" {
		cfg.Host = flagHost
	}
	if flagPort != "" {
		cfg.Port = flagPort
	}
	if flagUsername != "" {
		cfg.Username = flagUsername
	}
	if flagPassword != "" {
		cfg.Password = flagPassword
	}
	if flagSSLMode != "" {
		cfg.SSLMode = flagSSLMode
	}
	if flagTunnel {
		cfg.TunnelEnabled = true
		cfg.TunnelProfile = flagTunnelProfile
	}
}

// resolvePassword keeps a password already set by --password or PGPASSWORD
// (applied via cfg.FromEnv by the caller); otherwise it prompts on stdin,
// but only when --prompt-password is given. settings.yaml holds no
// password, and without the flag no prompt is shown.
func resolvePassword(cfg *config.Config) error {
	if cfg.Password != "" {
		return nil
	}
	if !flagPasswordPrompt {
		return nil
	}
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	cfg.Password = strings.TrimSpace(line)
	return nil
}

// connect opens the driver, establishing a tunnel first and rewriting the
// connection parameters through it when requested (§6 tunnel contract).
func connect(cfg *config.Config) (driver.Driver, func(), error) {
	if flagConnString != "" && !cfg.TunnelEnabled {
		drv, err := driver.OpenPostgres(flagConnString)
		if err != nil {
			return nil, func() {}, err
		}
		return drv, func() { _ = drv.Close() }, nil
	}
	if flagConnString != "" {
		cfg.Database = flagConnString
	}

	if cfg.TunnelEnabled {
		mgr := tunnel.New(tunnel.Config{
			Environment:       flagTunnelEnv,
			AWSProfile:        flagTunnelProfile,
			BastionUser:       flagTunnelUser,
			SSHKeyPath:        flagTunnelKey,
			DatabaseName:      cfg.Database,
			UseSessionManager: flagTunnelSessionM,
		})
		localPort, err := mgr.Establish(context.Background())
		if err != nil {
			return nil, func() {}, fmt.Errorf("establish tunnel: %w", err)
		}
		cfg.Host = "127.0.0.1"
		cfg.Port = fmt.Sprintf("%d", localPort)
		cfg.SSLMode = "require"
		drv, err := cfg.Open()
		if err != nil {
			_ = mgr.Cleanup()
			return nil, func() {}, err
		}
		return drv, func() { _ = mgr.Cleanup() }, nil
	}

	drv, err := cfg.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return drv, func() { _ = drv.Close() }, nil
}

func handleCrashReportingFlag(action string) error {
	cfg, err := config.LoadSettings()
	if err != nil {
		return err
	}
	switch action {
	case "enable":
		cfg.CrashReportingEnabled = true
		fmt.Println("Crash reporting enabled.")
	case "disable":
		cfg.CrashReportingEnabled = false
		fmt.Println("Crash reporting disabled.")
	case "status":
		status := "disabled"
		if cfg.CrashReportingEnabled {
			status = "enabled"
		}
		fmt.Printf("Crash reporting status: %s\n", status)
		return nil
	default:
		return fmt.Errorf("invalid crash-reporting action %q: use enable, disable, or status", action)
	}
	return config.SaveSettings(cfg)
}

func runFirstRunPrompt() error {
	cfg, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if cfg.FirstRunComplete {
		return nil
	}

	fmt.Println("Welcome to querycrafter! Let's set up crash reporting.")
	fmt.Print("Enable crash reporting? (y/n) [y]: ")
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(response)
	cfg.CrashReportingEnabled = response == "" || strings.ToLower(response) == "y"
	cfg.FirstRunComplete = true

	return config.SaveSettings(cfg)
}

var cleanupFuncs []func()

func addCleanup(f func()) { cleanupFuncs = append(cleanupFuncs, f) }

func runCleanup() {
	for _, f := range cleanupFuncs {
		f()
	}
}

func main() {
	log.SetOutput(os.Stderr)

	skipFirstRun := false
	for _, arg := range os.Args[1:] {
		if arg == "--help" || arg == "-h" || strings.HasPrefix(arg, "--crash-reporting") {
			skipFirstRun = true
			break
		}
	}
	if !skipFirstRun {
		if err := runFirstRunPrompt(); err != nil {
			log.Printf("warning: could not run first-run setup: %v", err)
		}
	}

	if cfg, err := config.LoadSettings(); err != nil {
		log.Printf("warning: could not load settings: %v", err)
	} else if cfg.CrashReportingEnabled && sentryDSN != "" {
		if err := report.Init(sentryDSN); err != nil {
			log.Printf("warning: could not initialize sentry: %v", err)
		}
		defer report.FlushAndShutdown()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		report.Breadcrumbs.Flush()
		report.FlushAndShutdown()
		runCleanup()
		os.Exit(0)
	}()

	defer runCleanup()
	defer func() {
		if r := recover(); r != nil {
			report.Breadcrumbs.Flush()
			sentry.CurrentHub().Recover(r)
			sentry.Flush(2 * time.Second)
			fmt.Printf("recovered from panic: %v\n", r)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		report.Breadcrumbs.Flush()
		report.FlushAndShutdown()
		os.Exit(1)
	}
}
