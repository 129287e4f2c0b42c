// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package store keeps the per-(node, stream) subscription registry. A failure
// recorded for one pair never blocks entries for other pairs.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/onosproject/onos-lib-go/pkg/logging"
)

var log = logging.GetLogger("store", "subscriptions")

// Store subscription registry interface
type Store interface {
	// Put adds or replaces a registry entry
	Put(ctx context.Context, key Key, value interface{}) (*Entry, error)

	// Get gets a registry entry based on a given key
	Get(ctx context.Context, key Key) (*Entry, error)

	// Delete deletes an entry based on a given key
	Delete(ctx context.Context, key Key) error

	// Entries lists all of the registry entries
	Entries(ctx context.Context, ch chan<- *Entry) error

	// Watch watches registry changes
	Watch(ctx context.Context, ch chan<- Event) error
}

type store struct {
	subscriptions map[Key]*Entry
	mu            sync.RWMutex
	watchers      *Watchers
}

// NewStore creates new store
func NewStore() Store {
	watchers := NewWatchers()
	return &store{
		subscriptions: make(map[Key]*Entry),
		watchers:      watchers,
	}
}

func (s *store) Entries(ctx context.Context, ch chan<- *Entry) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.subscriptions {
		ch <- entry
	}

	close(ch)
	return nil
}

func (s *store) Delete(ctx context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscriptions, key)
	s.watchers.Send(Event{
		Key:  key,
		Type: Deleted,
	})
	return nil
}

func (s *store) Put(ctx context.Context, key Key, value interface{}) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	eventType := Created
	if _, ok := s.subscriptions[key]; ok {
		eventType = Updated
	}
	entry := &Entry{
		Key:   key,
		Value: value,
	}
	s.subscriptions[key] = entry
	s.watchers.Send(Event{
		Key:   key,
		Value: entry,
		Type:  eventType,
	})
	return entry, nil
}

func (s *store) Get(ctx context.Context, key Key) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.subscriptions[key]; ok {
		return v, nil
	}
	return nil, errors.New(errors.NotFound, "the subscription entry does not exist")
}

func (s *store) Watch(ctx context.Context, ch chan<- Event) error {
	id := uuid.New()
	err := s.watchers.AddWatcher(id, ch)
	if err != nil {
		log.Error(err)
		close(ch)
		return err
	}
	go func() {
		<-ctx.Done()
		err = s.watchers.RemoveWatcher(id)
		if err != nil {
			log.Error(err)
		}
		close(ch)
	}()
	return nil
}

var _ Store = &store{}
