package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"i18ntpl/internal/adapters/cli"
	"i18ntpl/internal/application"
	"i18ntpl/internal/config"
	"i18ntpl/internal/infrastructure/i18n"
	"i18ntpl/internal/infrastructure/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18ntpl: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18ntpl: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	catalog := i18n.NewEmbeddedCatalog(cfg.DefaultLanguage, logger)
	translator, err := application.NewTranslationService(
		catalog,
		"",
		cfg.SupportedLanguages,
		cfg.MaxDepth,
		logger,
	)
	if err != nil {
		logger.Error("translation service initialisation failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	if err := cli.NewRootCommand(translator, logger).Execute(); err != nil {
		logger.Debug("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, cli.ErrorMessage(translator, err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
