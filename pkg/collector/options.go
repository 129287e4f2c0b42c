// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package collector

import (
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/exporter"
)

// Options collector options
type Options struct {
	Sink SinkOptions

	Session SessionOptions
}

// SinkOptions dataset sink options
type SinkOptions struct {
	// Writer is the dataset sink
	Writer exporter.Writer

	// FlushInterval is the number of rows between durable flushes and
	// progress reports
	FlushInterval uint64
}

// SessionOptions collection session options
type SessionOptions struct {
	// SampleTarget is the number of fused rows after which the session
	// terminates
	SampleTarget uint64
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

// WithSink sets the dataset sink
func WithSink(writer exporter.Writer) Option {
	return newOption(func(options *Options) {
		options.Sink.Writer = writer
	})
}

// WithFlushInterval sets the row interval for flushes and progress reports
func WithFlushInterval(interval uint64) Option {
	return newOption(func(options *Options) {
		options.Sink.FlushInterval = interval
	})
}

// WithSampleTarget sets the sample target terminating the session
func WithSampleTarget(target uint64) Option {
	return newOption(func(options *Options) {
		options.Session.SampleTarget = target
	})
}
