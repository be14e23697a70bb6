package main

import (
	"compress/gzip"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-zimbra/internal/config"
	"github.com/sirosfoundation/go-zimbra/internal/logging"
	"github.com/sirosfoundation/go-zimbra/pkg/compression"
	"github.com/sirosfoundation/go-zimbra/pkg/request"
	"github.com/sirosfoundation/go-zimbra/pkg/transport"
	"github.com/sirosfoundation/go-zimbra/pkg/zimbra"
)

type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:          "zmsoap",
		Short:        "Build and send Zimbra SOAP requests",
		Version:      version(),
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to the YAML configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (text, json, logfmt)")

	root.AddCommand(
		newBuildCmd(opts),
		newSendCmd(opts),
		newPreauthCmd(),
	)
	return root
}

// loadConfig reads the configuration file. Without --config it returns nil.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	if o.configPath == "" {
		return nil, nil
	}
	return config.Load(o.configPath)
}

// logger builds the logger from flags, falling back to cfg.
func (o *globalOptions) logger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	level, format := "info", "text"
	if cfg != nil {
		level, format = cfg.Logging.Level, cfg.Logging.Format
	}
	if o.logLevel != "" {
		level = o.logLevel
	}
	if o.logFormat != "" {
		format = o.logFormat
	}
	return logging.New(cmd.ErrOrStderr(), level, format)
}

// newClient creates a client for the configured endpoint.
func newClient(cfg *config.Config, logger *slog.Logger) (*zimbra.Client, error) {
	httpsConfig := transport.DefaultHTTPSConfig()
	httpsConfig.Timeout = cfg.Server.Timeout
	httpsConfig.InsecureSkipVerify = cfg.Server.InsecureSkipVerify
	httpsConfig.UserAgent = fmt.Sprintf("%s/%s", cfg.Client.UserAgentName, version())
	if cfg.Server.CompressRequests {
		gz, err := compression.NewGzip(gzip.DefaultCompression, cfg.Server.CompressionThreshold)
		if err != nil {
			return nil, err
		}
		httpsConfig.Compression = gz
	}

	onError, err := request.ParseOnError(cfg.Client.BatchOnError)
	if err != nil {
		return nil, err
	}

	return zimbra.NewClient(&zimbra.ClientConfig{
		URL:              cfg.Server.URL,
		HTTPSConfig:      httpsConfig,
		UserAgentName:    cfg.Client.UserAgentName,
		UserAgentVersion: cfg.Client.UserAgentVersion,
		BatchOnError:     onError,
		FirstRequestID:   cfg.Client.FirstRequestID,
		AuthToken:        cfg.Auth.AuthToken,
		Logger:           logger,
	})
}
