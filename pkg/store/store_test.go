// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"testing"
	"time"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/messages"
)

func TestPutGetDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	key := Key{NodeID: "e2:4/e00", Stream: messages.StreamMAC}

	_, err := s.Get(ctx, key)
	assert.True(t, errors.IsNotFound(err))

	entry, err := s.Put(ctx, key, &SubscriptionValue{
		SubName: "xapp-monitoring-mac",
		State:   StateSubscribed,
	})
	require.NoError(t, err)
	assert.Equal(t, key, entry.Key)

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	value, ok := got.Value.(*SubscriptionValue)
	require.True(t, ok)
	assert.Equal(t, StateSubscribed, value.State)
	assert.Equal(t, "xapp-monitoring-mac", value.SubName)

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.True(t, errors.IsNotFound(err))
}

func TestIndependentPairs(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Put(ctx, Key{NodeID: "e2:4/e00", Stream: messages.StreamMAC},
		&SubscriptionValue{State: StateSubscribed})
	require.NoError(t, err)
	_, err = s.Put(ctx, Key{NodeID: "e2:4/e00", Stream: messages.StreamKPM},
		&SubscriptionValue{State: StateFailed})
	require.NoError(t, err)

	got, err := s.Get(ctx, Key{NodeID: "e2:4/e00", Stream: messages.StreamMAC})
	require.NoError(t, err)
	assert.Equal(t, StateSubscribed, got.Value.(*SubscriptionValue).State)

	ch := make(chan *Entry, 8)
	require.NoError(t, s.Entries(ctx, ch))
	entries := make([]*Entry, 0)
	for entry := range ch {
		entries = append(entries, entry)
	}
	assert.Len(t, entries, 2)
}

func TestWatchEvents(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan Event, 8)
	require.NoError(t, s.Watch(ctx, ch))

	key := Key{NodeID: "e2:4/e00", Stream: messages.StreamRLC}
	_, err := s.Put(ctx, key, &SubscriptionValue{State: StatePending})
	require.NoError(t, err)
	_, err = s.Put(ctx, key, &SubscriptionValue{State: StateSubscribed})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, key))

	expected := []EventType{Created, Updated, Deleted}
	for _, eventType := range expected {
		select {
		case event := <-ch:
			assert.Equal(t, eventType, event.Type)
			assert.Equal(t, key, event.Key)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s event", eventType)
		}
	}
}
