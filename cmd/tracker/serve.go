package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/application-tracker/internal/config"
	"github.com/jonathan/application-tracker/internal/schemas"
	"github.com/jonathan/application-tracker/internal/server"
	"github.com/jonathan/application-tracker/internal/server/ratelimit"
	"github.com/jonathan/application-tracker/internal/store/backend"
	"github.com/spf13/cobra"
)

// serveOptions are the serve command's flag values.
type serveOptions struct {
	configPath  string
	port        int
	databaseURL string
	migrate     bool
}

var serveOpts serveOptions

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the application tracker REST API.

Configuration can be loaded from a JSON file using --config. Command-line flags override
config file values, which override the environment.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveOpts.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&serveOpts.port, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().StringVar(&serveOpts.databaseURL, "db-url", "", "Database URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().BoolVar(&serveOpts.migrate, "migrate", false, "Apply pending migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

// resolveConfig layers the config file, explicitly set flags and the environment.
func resolveConfig(opts serveOptions, changed func(name string) bool) (config.Config, error) {
	var cfg config.Config
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	if changed("port") {
		cfg.Port = opts.port
	}
	if changed("db-url") {
		cfg.DatabaseURL = opts.databaseURL
	}
	if changed("migrate") {
		cfg.AutoMigrate = &opts.migrate
	}

	env, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	merged := cfg.MergeWithDefaults(env)

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveOpts, cmd.Flags().Changed)
	if err != nil {
		return err
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}
	validator, err := schemas.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to load request schemas: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := backend.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	if cfg.MigrateOnStart() {
		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		log.Println("Migrations applied")
	}

	srv, err := server.New(server.Config{
		Port:              cfg.Port,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
	}, server.Deps{
		Applications: st,
		Identities:   st,
		Validator:    validator,
		JWT:          server.NewJWTService(jwtConfig),
		Passwords:    passwordConfig,
		RateLimiter:  ratelimit.NewLimiter(ratelimit.LoadConfig()),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
