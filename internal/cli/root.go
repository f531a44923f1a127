package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BruksfildServices01/receptionist/internal/config"
	"github.com/BruksfildServices01/receptionist/internal/logging"
)

// NewRoot builds the receptionist command tree. Persistent flags override
// the matching environment settings.
func NewRoot() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "receptionist",
		Short:         "Appointment scheduling backend for the voice receptionist",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("business-config", "", "path to the business calendar file (BUSINESS_CONFIG)")
	flags.String("log-level", "", "log level (LOG_LEVEL)")
	flags.String("log-format", "", "json or console (LOG_FORMAT)")
	flags.String("db-driver", "", "postgres or sqlite (DB_DRIVER)")
	flags.String("database-url", "", "database DSN (DATABASE_URL)")
	_ = v.BindPFlags(flags)

	cmd.AddCommand(NewServeCmd(v))
	cmd.AddCommand(NewMigrateCmd(v))
	cmd.AddCommand(NewSlotsCmd(v))
	cmd.AddCommand(NewTokenCmd(v))
	return cmd
}

// loadConfig reads the environment and applies any flags that were set.
func loadConfig(v *viper.Viper) *config.Config {
	cfg := config.Load()

	if s := v.GetString("business-config"); s != "" {
		cfg.BusinessConfig = s
	}
	if s := v.GetString("log-level"); s != "" {
		cfg.LogLevel = s
	}
	if s := v.GetString("log-format"); s != "" {
		cfg.LogFormat = s
	}
	if s := v.GetString("db-driver"); s != "" {
		cfg.DBDriver = strings.ToLower(s)
	}
	if s := v.GetString("database-url"); s != "" {
		cfg.DBUrl = s
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	return cfg
}
