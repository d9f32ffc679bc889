package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"rfp-console/internal/api"
	"rfp-console/internal/common/config"
	"rfp-console/internal/common/logger"
	"rfp-console/internal/common/validation"
)

type globalOptions struct {
	configPath string
	apiURL     string
	logLevel   string
}

// app is what every command needs: configuration, logging and the API
// client.
type app struct {
	cfg    *config.Config
	zap    *zap.Logger
	log    logger.Logger
	client *api.Client
}

func (o *globalOptions) app() (*app, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFromFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if o.apiURL != "" {
		if !validation.ValidateURL(o.apiURL) {
			return nil, fmt.Errorf("--api must be an http(s) URL, got %q", o.apiURL)
		}
		cfg.API.BaseURL = strings.TrimRight(o.apiURL, "/")
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.NewZapAdapter(zapLog)

	return &app{
		cfg:    cfg,
		zap:    zapLog,
		log:    log,
		client: api.NewClient(cfg.API.BaseURL, cfg.API.TimeoutDuration(), log),
	}, nil
}

func (a *app) close() {
	_ = a.zap.Sync()
}
