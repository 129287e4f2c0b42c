// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package e2

import (
	appConfig "github.com/AMINE-ADJ/xapp-monitoring/pkg/config"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/broker"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/collector"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/messages"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/store"
)

// Options E2 client options
type Options struct {
	E2TService E2TServiceOptions

	ServiceModel ServiceModelOptions

	App AppOptions
}

// AppOptions application options
type AppOptions struct {
	AppID string

	Config appConfig.Config

	Broker broker.Broker

	Collector *collector.Collector

	SubStore store.Store

	Streams []messages.StreamKind
}

// E2TServiceOptions are the options for a E2T service
type E2TServiceOptions struct {
	// Host is the service host
	Host string
	// Port is the service port
	Port int
}

// ServiceModelName is a service model identifier
type ServiceModelName string

// ServiceModelVersion string
type ServiceModelVersion string

// ServiceModelOptions is options for defining a service model
type ServiceModelOptions struct {
	// Name is the service model identifier
	Name ServiceModelName

	// Version is the service model version
	Version ServiceModelVersion
}

// Option option interface
type Option interface {
	apply(*Options)
}

type funcOption struct {
	f func(*Options)
}

func (f funcOption) apply(options *Options) {
	f.f(options)
}

func newOption(f func(*Options)) Option {
	return funcOption{
		f: f,
	}
}

// WithE2TAddress sets the address for the E2T service
func WithE2TAddress(host string, port int) Option {
	return newOption(func(options *Options) {
		options.E2TService.Host = host
		options.E2TService.Port = port
	})
}

// WithServiceModel sets the client service model
func WithServiceModel(name ServiceModelName, version ServiceModelVersion) Option {
	return newOption(func(options *Options) {
		options.ServiceModel = ServiceModelOptions{
			Name:    name,
			Version: version,
		}
	})
}

// WithAppID sets the application identifier
func WithAppID(appID string) Option {
	return newOption(func(options *Options) {
		options.App.AppID = appID
	})
}

// WithAppConfig sets the application configuration
func WithAppConfig(config appConfig.Config) Option {
	return newOption(func(options *Options) {
		options.App.Config = config
	})
}

// WithBroker sets the subscription stream broker
func WithBroker(b broker.Broker) Option {
	return newOption(func(options *Options) {
		options.App.Broker = b
	})
}

// WithCollector sets the metric collector
func WithCollector(c *collector.Collector) Option {
	return newOption(func(options *Options) {
		options.App.Collector = c
	})
}

// WithSubStore sets the subscription registry
func WithSubStore(subStore store.Store) Option {
	return newOption(func(options *Options) {
		options.App.SubStore = subStore
	})
}

// WithStreams sets the stream kinds to subscribe to
func WithStreams(streams []messages.StreamKind) Option {
	return newOption(func(options *Options) {
		options.App.Streams = streams
	})
}
