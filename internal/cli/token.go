package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BruksfildServices01/receptionist/internal/middleware"
)

// NewTokenCmd issues a bearer token, typically for the voice agent.
func NewTokenCmd(v *viper.Viper) *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != middleware.RoleAdmin && role != middleware.RoleAgent {
				return fmt.Errorf("role must be %q or %q", middleware.RoleAdmin, middleware.RoleAgent)
			}
			cfg := loadConfig(v)

			token, err := middleware.GenerateToken(cfg.JWTSecret, subject, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "voice-agent", "token subject")
	cmd.Flags().StringVar(&role, "role", middleware.RoleAgent, "admin or agent")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime")
	return cmd
}
