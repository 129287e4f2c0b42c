// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package monitoring

import (
	"context"
	"sync"
	"testing"
	"time"

	e2api "github.com/onosproject/onos-api/go/onos/e2t/e2/v1beta1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/broker"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/collector"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/exporter"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/messages"
)

type nullSink struct {
	mu   sync.Mutex
	rows int
}

func (s *nullSink) Write(*exporter.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows++
	return nil
}

func (s *nullSink) Flush() error { return nil }
func (s *nullSink) Close() error { return nil }

func TestMonitorDeliversIndications(t *testing.T) {
	sink := &nullSink{}
	c := collector.NewCollector(collector.WithSink(sink), collector.WithSampleTarget(10))

	b := broker.NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader, err := b.OpenReader(ctx, nil, "sub-mac", "chan-mac", e2api.SubscriptionSpec{})
	require.NoError(t, err)
	writer, err := b.GetWriter(reader.ID())
	require.NoError(t, err)

	m := NewMonitor(
		WithCollector(c),
		WithNodeID("e2:4/e00"),
		WithStreamKind(messages.StreamMAC),
		WithStreamReader(reader))

	done := make(chan error, 1)
	go func() {
		done <- m.Start(ctx)
	}()

	payload, err := messages.EncodeIndication(&messages.Indication{
		Kind: messages.StreamMAC,
		MAC: &messages.MACIndication{
			UEStats: []messages.MACUEStats{{RNTI: 0x4601, WbCQI: 12}},
		},
	})
	require.NoError(t, err)
	require.NoError(t, writer.Send(e2api.Indication{Payload: payload}))

	// a malformed payload is dropped without ending the stream
	require.NoError(t, writer.Send(e2api.Indication{Payload: []byte("{")}))

	assert.Eventually(t, func() bool {
		return c.Samples() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop on context cancellation")
	}
}
