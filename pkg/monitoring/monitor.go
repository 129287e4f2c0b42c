// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package monitoring consumes the indication stream of one subscription,
// decodes each indication and hands it to the collector.
package monitoring

import (
	"context"

	e2api "github.com/onosproject/onos-api/go/onos/e2t/e2/v1beta1"
	topoapi "github.com/onosproject/onos-api/go/onos/topo"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/onosproject/onos-lib-go/pkg/logging"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/broker"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/collector"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/messages"
)

var log = logging.GetLogger("monitoring")

// NewMonitor creates a new indication monitor
func NewMonitor(opts ...Option) *Monitor {
	options := Options{}

	for _, opt := range opts {
		opt.apply(&options)
	}
	return &Monitor{
		streamReader: options.Monitor.StreamReader,
		collector:    options.App.Collector,
		nodeID:       options.Monitor.NodeID,
		streamKind:   options.Monitor.StreamKind,
	}
}

// Monitor indication monitor
type Monitor struct {
	streamReader broker.StreamReader
	collector    *collector.Collector
	nodeID       topoapi.ID
	streamKind   messages.StreamKind
}

func (m *Monitor) processIndication(ctx context.Context, indication e2api.Indication, nodeID topoapi.ID) error {
	ind, err := messages.DecodeIndication(indication.Payload)
	if err != nil {
		// malformed payloads are dropped, the stream keeps running
		log.Warnf("Cannot decode indication from %v on %s stream: %v", nodeID, m.streamKind, err)
		return nil
	}
	err = m.collector.Ingest(m.streamKind, ind)
	if errors.IsInvalid(err) {
		// declared kind does not match the subscribed stream; this is a
		// caller bug, not a recoverable transport condition
		log.Fatalf("Stream kind contract violated for %v: %v", nodeID, err)
	}
	return err
}

// Start starts monitoring the indication stream until the context is done
// or the stream fails.
func (m *Monitor) Start(ctx context.Context) error {
	errCh := make(chan error)
	go func() {
		for {
			indMsg, err := m.streamReader.Recv(ctx)
			if err != nil {
				log.Errorf("Error reading indication stream, chanID:%v, streamID:%v, err:%v", m.streamReader.ChannelID(), m.streamReader.ID(), err)
				errCh <- err
				return
			}
			err = m.processIndication(ctx, indMsg, m.nodeID)
			if err != nil {
				log.Errorf("Error processing indication, err:%v", err)
				errCh <- err
				return
			}
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
