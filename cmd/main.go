package main

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio-api/handler"
	"portfolio-api/internal/backend"
	"portfolio-api/internal/config"
	"portfolio-api/internal/integrations/paramstore"
	"portfolio-api/internal/logger"
	"portfolio-api/internal/secrets"
	"portfolio-api/internal/usecase"
)

const app = "portfolio-api"

var (
	cfgFile string
	v       = config.NewViper()

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "Portfolio assistant API: resume analysis and chat backed by pluggable LLM providers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	mustBind("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	mustBind("log.json", rootCmd.PersistentFlags().Lookup("json"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtime is everything a transport needs, built once per process.
type runtime struct {
	cfg     config.Config
	log     *zap.Logger
	handler *handler.Handler
}

func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	params, err := parameterStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	provider, err := backend.New(ctx, cfg, params)
	if err != nil {
		return nil, err
	}

	svc, err := usecase.NewService(provider, log, usecase.Settings{
		ChatTemperature:   cfg.Chat.Temperature,
		ResumeTemperature: cfg.Resume.Temperature,
	})
	if err != nil {
		return nil, err
	}

	h, err := handler.NewHandler(svc, log)
	if err != nil {
		return nil, err
	}

	log.Info("backend selected", logger.BackendFields(provider.Name(), cfg.Model())...)
	return &runtime{cfg: cfg, log: log, handler: h}, nil
}

// parameterStore connects to SSM only when a credential is stored there.
func parameterStore(ctx context.Context, cfg config.Config) (secrets.ParameterGetter, error) {
	if cfg.APIKeyParam() == "" {
		return nil, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	client, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
	if err != nil {
		return nil, err
	}
	return client, nil
}
