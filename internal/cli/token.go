package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/venuebook/pkg/auth"
)

// newTokenCmd выпускает access-токен для локальной разработки и интеграционных проверок
func newTokenCmd(load configLoader) *cobra.Command {
	var (
		userID int64
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			switch role {
			case auth.RoleUser, auth.RoleOwner, auth.RoleAdmin:
			default:
				return fmt.Errorf("unknown role %q", role)
			}
			if userID <= 0 {
				return fmt.Errorf("--user must be positive")
			}
			if ttl <= 0 {
				ttl = time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute
			}

			tokens, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
			if err != nil {
				return err
			}
			raw, err := tokens.Issue(userID, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), raw)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id (token subject)")
	cmd.Flags().StringVar(&role, "role", auth.RoleUser, "role: user, owner or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, defaults to auth.token_ttl_minutes")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
