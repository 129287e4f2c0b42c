// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"

	configurable "github.com/onosproject/onos-ric-sdk-go/pkg/config/registry"

	"github.com/onosproject/onos-lib-go/pkg/logging"
	app "github.com/onosproject/onos-ric-sdk-go/pkg/config/app/default"
	"github.com/onosproject/onos-ric-sdk-go/pkg/config/event"
	configutils "github.com/onosproject/onos-ric-sdk-go/pkg/config/utils"
)

var log = logging.GetLogger("config")

const (
	// ReportPeriodConfigPath report period in milliseconds
	ReportPeriodConfigPath = "reportPeriod"
	// SampleTargetConfigPath number of fused rows to collect
	SampleTargetConfigPath = "sampleTarget"
	// FlushIntervalConfigPath rows between dataset flushes
	FlushIntervalConfigPath = "flushInterval"
)

// Config xApp configuration interface
type Config interface {
	GetReportPeriod() (uint64, error)
	GetSampleTarget() (uint64, error)
	GetFlushInterval() (uint64, error)
	Watch(context.Context, chan event.Event) error
}

// NewConfig initialize the xApp config
func NewConfig(configPath string) (*AppConfig, error) {
	appConfig, err := configurable.RegisterConfigurable(configPath, &configurable.RegisterRequest{})
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		appConfig: appConfig.Config.(*app.Config),
	}
	return cfg, nil
}

// AppConfig application configuration
type AppConfig struct {
	appConfig *app.Config
}

// Watch watch config changes
func (c *AppConfig) Watch(ctx context.Context, ch chan event.Event) error {
	err := c.appConfig.Watch(ctx, ch)
	if err != nil {
		return err
	}
	return nil
}

func (c *AppConfig) getUint64(path string) (uint64, error) {
	entry, err := c.appConfig.Get(path)
	if err != nil {
		log.Error(err)
		return 0, err
	}
	val, err := configutils.ToUint64(entry.Value)
	if err != nil {
		log.Error(err)
		return 0, err
	}
	return val, nil
}

// GetReportPeriod gets the configured report period in milliseconds
func (c *AppConfig) GetReportPeriod() (uint64, error) {
	return c.getUint64(ReportPeriodConfigPath)
}

// GetSampleTarget gets the configured sample target
func (c *AppConfig) GetSampleTarget() (uint64, error) {
	return c.getUint64(SampleTargetConfigPath)
}

// GetFlushInterval gets the configured flush interval in rows
func (c *AppConfig) GetFlushInterval() (uint64, error) {
	return c.getUint64(FlushIntervalConfigPath)
}

var _ Config = &AppConfig{}
