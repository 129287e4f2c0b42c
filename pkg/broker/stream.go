// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"container/list"
	"context"
	"sync"

	e2api "github.com/onosproject/onos-api/go/onos/e2t/e2/v1beta1"
	"github.com/onosproject/onos-lib-go/pkg/errors"
)

const bufferMaxSize = 10000

// StreamID is a stream identifier
type StreamID int

// StreamIO defines the interface for stream IO
type StreamIO interface {
	// ID returns the stream identifier
	ID() StreamID

	// ChannelID returns the stream channel identifier
	ChannelID() e2api.ChannelID

	// SubscriptionName returns the stream subscription name
	SubscriptionName() string

	// Subscription returns the stream subscription spec
	Subscription() e2api.SubscriptionSpec

	// Close closes the stream
	Close()
}

// StreamReader is a stream reader
type StreamReader interface {
	StreamIO

	// Recv receives an indication on the stream, blocking until one is
	// available or the context is done
	Recv(ctx context.Context) (e2api.Indication, error)
}

// StreamWriter is a stream writer
type StreamWriter interface {
	StreamIO

	// Send sends an indication on the stream without blocking; an error is
	// returned if the stream is closed or the buffer is full
	Send(indication e2api.Indication) error
}

// Stream is a read/write stream
type Stream interface {
	StreamReader
	StreamWriter
}

func newBufferedStream(subName string, id StreamID, channelID e2api.ChannelID, subSpec e2api.SubscriptionSpec) Stream {
	return &bufferedStream{
		subName:   subName,
		id:        id,
		channelID: channelID,
		subSpec:   subSpec,
		buffer:    list.New(),
		cond:      sync.NewCond(&sync.Mutex{}),
	}
}

type bufferedStream struct {
	subName   string
	id        StreamID
	channelID e2api.ChannelID
	subSpec   e2api.SubscriptionSpec
	buffer    *list.List
	cond      *sync.Cond
	closed    bool
}

func (s *bufferedStream) ID() StreamID {
	return s.id
}

func (s *bufferedStream) ChannelID() e2api.ChannelID {
	return s.channelID
}

func (s *bufferedStream) SubscriptionName() string {
	return s.subName
}

func (s *bufferedStream) Subscription() e2api.SubscriptionSpec {
	return s.subSpec
}

func (s *bufferedStream) Send(indication e2api.Indication) error {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	if s.closed {
		return errors.NewUnavailable("stream %d closed", s.id)
	}
	if s.buffer.Len() == bufferMaxSize {
		return errors.NewUnavailable("stream %d buffer full", s.id)
	}
	s.buffer.PushBack(indication)
	s.cond.Signal()
	return nil
}

func (s *bufferedStream) Recv(ctx context.Context) (e2api.Indication, error) {
	// wake the waiter when the context expires
	stop := context.AfterFunc(ctx, func() {
		s.cond.L.Lock()
		s.cond.Broadcast()
		s.cond.L.Unlock()
	})
	defer stop()

	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	for s.buffer.Len() == 0 {
		if s.closed {
			return e2api.Indication{}, errors.NewUnavailable("stream %d closed", s.id)
		}
		if ctx.Err() != nil {
			return e2api.Indication{}, ctx.Err()
		}
		s.cond.Wait()
	}
	result := s.buffer.Front().Value.(e2api.Indication)
	s.buffer.Remove(s.buffer.Front())
	return result, nil
}

func (s *bufferedStream) Close() {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	s.closed = true
	s.cond.Broadcast()
}

var _ Stream = &bufferedStream{}
