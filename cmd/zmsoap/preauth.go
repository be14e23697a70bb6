package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-zimbra/pkg/auth"
)

func newPreauthCmd() *cobra.Command {
	var (
		account   string
		by        string
		key       string
		expires   time.Duration
		timestamp int64
	)

	cmd := &cobra.Command{
		Use:   "preauth",
		Short: "Compute a preauth value",
		Example: `  zmsoap preauth --account user@example.com --key $ZIMBRA_PREAUTH_KEY
  zmsoap preauth --account user@example.com --key $ZIMBRA_PREAUTH_KEY --expires 1h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selector, err := auth.ParseBy(by)
			if err != nil {
				return err
			}
			p := auth.PreAuth{Account: account, By: selector, Expires: expires}
			if timestamp != 0 {
				p.Timestamp = time.UnixMilli(timestamp)
			}

			value, p, err := auth.Compute(key, p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "account:   %s\n", p.Account)
			fmt.Fprintf(out, "by:        %s\n", p.By)
			fmt.Fprintf(out, "timestamp: %d\n", p.TimestampMillis())
			fmt.Fprintf(out, "expires:   %d\n", p.ExpiresMillis())
			fmt.Fprintf(out, "preauth:   %s\n", value)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account name or id")
	cmd.Flags().StringVar(&by, "by", string(auth.ByName), "account selector (name, id, foreignPrincipal)")
	cmd.Flags().StringVar(&key, "key", "", "domain preauth key")
	cmd.Flags().DurationVar(&expires, "expires", 0, "token lifetime, 0 for the server default")
	cmd.Flags().Int64Var(&timestamp, "timestamp", 0, "timestamp in milliseconds, defaults to now")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("key")
	return cmd
}
