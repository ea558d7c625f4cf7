package main

import (
	"fmt"
	"net"
	"os"
	"os/user"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/louisslnn/ODOO-Project/pkg/server"
	"github.com/louisslnn/ODOO-Project/pkg/services/audit"
	"github.com/louisslnn/ODOO-Project/pkg/services/config"
	"github.com/louisslnn/ODOO-Project/pkg/services/report"
	"github.com/louisslnn/ODOO-Project/pkg/store/odoo"
)

var (
	cfgPath string
	profile string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the ledger audit web server",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.odoorc", usr.HomeDir)

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the .odoorc profile file (default is $HOME/.odoorc)")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "DEFAULT",
		"Profile section to use from the .odoorc file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	profiles, _ := registry.GetProfiles(ctx)
	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	for _, p := range profiles {
		logger.Info().Msgf("Profile: `%s`", p)
	}

	odooCfg, err := registry.GetConfig(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to load profile %q: %w", profile, err)
	}

	client, err := odoo.Connect(ctx, odooCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to odoo: %w", err)
	}

	engine := audit.NewEngine(client, client, audit.DefaultSettings())
	analyst := report.NewAnalyst(client)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Auditor: engine,
			Analyst: analyst,
		},
	})

	return api.Start()
}
