// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package broker bridges E2 subscription channels to indication monitors
// through buffered per-subscription streams.
package broker

import (
	"context"
	"sync"

	e2api "github.com/onosproject/onos-api/go/onos/e2t/e2/v1beta1"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/onosproject/onos-lib-go/pkg/logging"
	e2client "github.com/onosproject/onos-ric-sdk-go/pkg/e2/v1beta1"
)

var log = logging.GetLogger("broker")

// Broker is a subscription stream broker
type Broker interface {
	// OpenReader opens a stream reader for the given subscription channel,
	// creating the stream if it does not exist
	OpenReader(ctx context.Context, node e2client.Node, subName string, channelID e2api.ChannelID, subSpec e2api.SubscriptionSpec) (StreamReader, error)

	// GetWriter gets the stream writer for an open stream
	GetWriter(id StreamID) (StreamWriter, error)

	// CloseStream closes an open stream
	CloseStream(ctx context.Context, id StreamID) (StreamReader, error)
}

// NewBroker creates a new subscription stream broker
func NewBroker() Broker {
	return &streamBroker{
		subs:    make(map[e2api.ChannelID]Stream),
		streams: make(map[StreamID]Stream),
	}
}

type streamBroker struct {
	subs     map[e2api.ChannelID]Stream
	streams  map[StreamID]Stream
	streamID StreamID
	mu       sync.RWMutex
}

func (b *streamBroker) OpenReader(ctx context.Context, node e2client.Node, subName string, channelID e2api.ChannelID, subSpec e2api.SubscriptionSpec) (StreamReader, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if stream, ok := b.subs[channelID]; ok {
		return stream, nil
	}
	b.streamID++
	streamID := b.streamID
	stream := newBufferedStream(subName, streamID, channelID, subSpec)
	b.subs[channelID] = stream
	b.streams[streamID] = stream
	log.Infof("Opened stream %d for channel %s", streamID, channelID)
	return stream, nil
}

func (b *streamBroker) GetWriter(id StreamID) (StreamWriter, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	stream, ok := b.streams[id]
	if !ok {
		return nil, errors.NewNotFound("stream %d not found", id)
	}
	return stream, nil
}

func (b *streamBroker) CloseStream(ctx context.Context, id StreamID) (StreamReader, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stream, ok := b.streams[id]
	if !ok {
		return nil, errors.NewNotFound("stream %d not found", id)
	}
	delete(b.streams, stream.ID())
	delete(b.subs, stream.ChannelID())
	stream.Close()
	log.Infof("Closed stream %d for channel %s", stream.ID(), stream.ChannelID())
	return stream, nil
}

var _ Broker = &streamBroker{}
