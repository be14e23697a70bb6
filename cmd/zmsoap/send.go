package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-zimbra/internal/reqfile"
	"github.com/sirosfoundation/go-zimbra/pkg/auth"
	"github.com/sirosfoundation/go-zimbra/pkg/response"
	"github.com/sirosfoundation/go-zimbra/pkg/zimbra"
)

func newSendCmd(opts *globalOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a request file and print the response",
		Example: `  zmsoap --config zmsoap.yaml send -f getinfo.yaml
  zmsoap --config zmsoap.yaml --log-level debug send -f batch.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg == nil {
				return errors.New("--config is required for send")
			}
			logger, err := opts.logger(cmd, cfg)
			if err != nil {
				return err
			}

			f, err := reqfile.Load(file)
			if err != nil {
				return err
			}

			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if cfg.Auth.AuthToken == "" && cfg.Auth.Enabled() {
				_, err := client.Authenticate(ctx, zimbra.Credentials{
					Account:    cfg.Auth.Account,
					By:         auth.By(cfg.Auth.By),
					PreAuthKey: cfg.Auth.PreAuthKey,
					Password:   cfg.Auth.Password,
					Admin:      cfg.Auth.Admin,
					Expires:    cfg.Auth.Expires,
				})
				if err != nil {
					return err
				}
			}

			doc, err := client.NewRequest()
			if err != nil {
				return err
			}
			if _, err := f.Apply(doc); err != nil {
				return err
			}

			resp, sendErr := client.Send(ctx, doc)
			var fault *response.FaultError
			if sendErr != nil && !errors.As(sendErr, &fault) {
				return sendErr
			}

			out, err := resp.Indented()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return sendErr
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request file")
	cmd.MarkFlagRequired("file")
	return cmd
}
