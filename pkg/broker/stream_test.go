// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package broker

import (
	"context"
	"testing"
	"time"

	e2api "github.com/onosproject/onos-api/go/onos/e2t/e2/v1beta1"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamOrder(t *testing.T) {
	stream := newBufferedStream("sub", 1, "chan-1", e2api.SubscriptionSpec{})

	require.NoError(t, stream.Send(e2api.Indication{Payload: []byte("a")}))
	require.NoError(t, stream.Send(e2api.Indication{Payload: []byte("b")}))

	ctx := context.Background()
	first, err := stream.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", string(first.Payload))
	second, err := stream.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", string(second.Payload))
}

func TestRecvBlocksUntilSend(t *testing.T) {
	stream := newBufferedStream("sub", 1, "chan-1", e2api.SubscriptionSpec{})

	got := make(chan e2api.Indication, 1)
	go func() {
		ind, err := stream.Recv(context.Background())
		if err == nil {
			got <- ind
		}
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, stream.Send(e2api.Indication{Payload: []byte("x")}))

	select {
	case ind := <-got:
		assert.Equal(t, "x", string(ind.Payload))
	case <-time.After(time.Second):
		t.Fatal("Recv did not observe the sent indication")
	}
}

func TestRecvContextCancel(t *testing.T) {
	stream := newBufferedStream("sub", 1, "chan-1", e2api.SubscriptionSpec{})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := stream.Recv(ctx)
		errCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Recv did not return after context cancellation")
	}
}

func TestSendOnClosedStream(t *testing.T) {
	stream := newBufferedStream("sub", 1, "chan-1", e2api.SubscriptionSpec{})
	stream.Close()

	err := stream.Send(e2api.Indication{})
	assert.True(t, errors.IsUnavailable(err))
	_, err = stream.Recv(context.Background())
	assert.True(t, errors.IsUnavailable(err))
}

func TestBrokerStreamLifecycle(t *testing.T) {
	b := NewBroker()
	ctx := context.Background()

	reader, err := b.OpenReader(ctx, nil, "sub-a", "chan-a", e2api.SubscriptionSpec{})
	require.NoError(t, err)

	// reopening the same channel returns the existing stream
	again, err := b.OpenReader(ctx, nil, "sub-a", "chan-a", e2api.SubscriptionSpec{})
	require.NoError(t, err)
	assert.Equal(t, reader.ID(), again.ID())

	writer, err := b.GetWriter(reader.ID())
	require.NoError(t, err)
	require.NoError(t, writer.Send(e2api.Indication{Payload: []byte("y")}))

	ind, err := reader.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, "y", string(ind.Payload))

	_, err = b.CloseStream(ctx, reader.ID())
	require.NoError(t, err)
	_, err = b.GetWriter(reader.ID())
	assert.True(t, errors.IsNotFound(err))
}
