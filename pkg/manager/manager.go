// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package manager assembles the collection session: dataset sink, collector,
// subscription manager and UE-NIB publisher.
package manager

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/onosproject/onos-lib-go/pkg/logging"

	appConfig "github.com/AMINE-ADJ/xapp-monitoring/pkg/config"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/broker"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/collector"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/exporter"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/messages"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/southbound/e2"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/store"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/uenib"
)

var log = logging.GetLogger("manager")

const stopTimeout = 15 * time.Second

// Config is a manager configuration
type Config struct {
	CAPath        string
	KeyPath       string
	CertPath      string
	ConfigPath    string
	E2tEndpoint   string
	SMName        string
	SMVersion     string
	OutputPath    string
	OutputFormat  string
	SampleTarget  uint64
	FlushInterval uint64
}

// NewManager creates a new manager
func NewManager(config Config) *Manager {
	appCfg, err := appConfig.NewConfig(config.ConfigPath)
	if err != nil {
		log.Warn(err)
	}

	return &Manager{
		appConfig: appCfg,
		config:    config,
		broker:    broker.NewBroker(),
		subStore:  store.NewStore(),
	}
}

// Manager is the manager for the monitoring xApp
type Manager struct {
	appConfig   *appConfig.AppConfig
	config      Config
	broker      broker.Broker
	subStore    store.Store
	collector   *collector.Collector
	e2Manager   e2.Manager
	uenibClient uenib.Client
	uenibCancel context.CancelFunc
}

// Run starts the manager and the associated services
func (m *Manager) Run() {
	log.Info("Running Manager")
	if err := m.start(); err != nil {
		log.Fatal("Unable to run Manager", err)
	}
}

// sampleTarget prefers the config registry, falling back to the flag value.
func (m *Manager) sampleTarget() uint64 {
	if m.appConfig != nil {
		if target, err := m.appConfig.GetSampleTarget(); err == nil {
			return target
		}
	}
	return m.config.SampleTarget
}

func (m *Manager) flushInterval() uint64 {
	if m.appConfig != nil {
		if interval, err := m.appConfig.GetFlushInterval(); err == nil {
			return interval
		}
	}
	return m.config.FlushInterval
}

func (m *Manager) start() error {
	sink, err := exporter.NewWriter(m.config.OutputPath, exporter.Format(m.config.OutputFormat))
	if err != nil {
		return err
	}

	m.collector = collector.NewCollector(
		collector.WithSink(sink),
		collector.WithSampleTarget(m.sampleTarget()),
		collector.WithFlushInterval(m.flushInterval()))

	e2tHost, e2tPort, err := splitEndpoint(m.config.E2tEndpoint)
	if err != nil {
		return err
	}
	e2Manager, err := e2.NewManager(
		e2.WithE2TAddress(e2tHost, e2tPort),
		e2.WithServiceModel(e2.ServiceModelName(m.config.SMName),
			e2.ServiceModelVersion(m.config.SMVersion)),
		e2.WithAppConfig(m.appConfig),
		e2.WithAppID("xapp-monitoring"),
		e2.WithBroker(m.broker),
		e2.WithCollector(m.collector),
		e2.WithSubStore(m.subStore),
		e2.WithStreams(messages.Streams))
	if err != nil {
		return err
	}
	m.e2Manager = e2Manager

	if err := m.e2Manager.Start(); err != nil {
		return err
	}

	uenibCtx, cancel := context.WithCancel(context.Background())
	m.uenibCancel = cancel
	uenibClient, err := uenib.NewClient(uenibCtx, m.config.CertPath, m.config.KeyPath, m.collector)
	if err != nil {
		// the publisher is optional; collection proceeds without it
		log.Warnf("Cannot connect to UE-NIB, samples will not be published: %v", err)
	} else {
		m.uenibClient = uenibClient
		go m.uenibClient.Run(uenibCtx)
	}

	return nil
}

// Done is closed when the sample target is reached or the dataset sink failed
func (m *Manager) Done() <-chan struct{} {
	return m.collector.Done()
}

// Samples returns the number of rows collected so far
func (m *Manager) Samples() uint64 {
	return m.collector.Samples()
}

// Close releases all subscriptions and then flushes and closes the dataset
// sink exactly once, regardless of individual release outcomes.
func (m *Manager) Close() {
	log.Info("Closing Manager")
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err := m.e2Manager.Stop(ctx); err != nil {
		log.Warn(err)
	}
	if m.uenibCancel != nil {
		m.uenibCancel()
	}
	if m.uenibClient != nil {
		m.uenibClient.Close()
	}
	if err := m.collector.Close(); err != nil {
		log.Warn(err)
	}
	log.Infof("Collection complete: %d samples, output %s", m.collector.Samples(), m.config.OutputPath)
}

func splitEndpoint(endpoint string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}
