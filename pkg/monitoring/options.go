// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package monitoring

import (
	topoapi "github.com/onosproject/onos-api/go/onos/topo"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/broker"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/collector"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/messages"
)

// Options monitor options
type Options struct {
	App AppOptions

	Monitor MonitorOptions
}

// AppOptions application options
type AppOptions struct {
	Collector *collector.Collector
}

// MonitorOptions monitoring options
type MonitorOptions struct {
	NodeID       topoapi.ID
	StreamKind   messages.StreamKind
	StreamReader broker.StreamReader
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

// WithCollector sets the metric collector
func WithCollector(c *collector.Collector) Option {
	return newOption(func(options *Options) {
		options.App.Collector = c
	})
}

// WithNodeID sets the E2 node ID
func WithNodeID(nodeID topoapi.ID) Option {
	return newOption(func(options *Options) {
		options.Monitor.NodeID = nodeID
	})
}

// WithStreamKind sets the stream kind this monitor consumes
func WithStreamKind(kind messages.StreamKind) Option {
	return newOption(func(options *Options) {
		options.Monitor.StreamKind = kind
	})
}

// WithStreamReader sets the subscription stream reader
func WithStreamReader(streamReader broker.StreamReader) Option {
	return newOption(func(options *Options) {
		options.Monitor.StreamReader = streamReader
	})
}
