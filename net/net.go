package net

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"kselect/config"
)

var (
	client  = resty.New()
	webhook string
)

func Init(cfg *config.NetConfig) {
	webhook = cfg.Webhook

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client = resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
}

// PostReport sends report as JSON to the configured webhook. It does nothing
// when no webhook is configured.
func PostReport(report any) error {
	if webhook == "" {
		return nil
	}

	resp, err := client.R().SetBody(report).Post(webhook)
	if err != nil {
		zap.S().Named("[net]").Errorf("Post report to webhook [%s] error: [%s]", webhook, err.Error())
		return err
	}
	if resp.IsError() {
		err = fmt.Errorf("webhook [%s] responded [%s]", webhook, resp.Status())
		zap.S().Named("[net]").Error(err)
		return err
	}
	return nil
}
