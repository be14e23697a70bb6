package main

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-zimbra/internal/reqfile"
	"github.com/sirosfoundation/go-zimbra/pkg/request"
)

func newBuildCmd(opts *globalOptions) *cobra.Command {
	var (
		file   string
		indent bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Print the SOAP document for a request file",
		Example: `  zmsoap build -f getinfo.yaml
  zmsoap build -f batch.yaml --indent`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := opts.logger(cmd, cfg)
			if err != nil {
				return err
			}

			f, err := reqfile.Load(file)
			if err != nil {
				return err
			}

			doc := request.New()
			if cfg != nil {
				if err := doc.SetUserAgent(cfg.Client.UserAgentName, cfg.Client.UserAgentVersion); err != nil {
					return err
				}
			}
			if _, err := f.Apply(doc); err != nil {
				return err
			}
			logger.Debug("built request", "requests", doc.Len(), "batch", doc.InBatch())

			out := doc.GetRequest()
			if indent {
				if out, err = indentXML(out); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request file")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent the output")
	cmd.MarkFlagRequired("file")
	return cmd
}

func indentXML(s string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		return "", err
	}
	if doc.Root() == nil {
		return "", errors.New("empty document")
	}
	doc.Indent(2)
	return doc.WriteToString()
}
