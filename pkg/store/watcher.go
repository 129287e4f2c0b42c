// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/onosproject/onos-lib-go/pkg/errors"
)

// Watchers fan out registry events to watcher channels.
type Watchers struct {
	watchers map[uuid.UUID]chan<- Event
	rm       sync.RWMutex
}

// NewWatchers creates watchers
func NewWatchers() *Watchers {
	return &Watchers{
		watchers: make(map[uuid.UUID]chan<- Event),
	}
}

// AddWatcher adds a watcher channel
func (ws *Watchers) AddWatcher(id uuid.UUID, ch chan<- Event) error {
	ws.rm.Lock()
	defer ws.rm.Unlock()
	if _, ok := ws.watchers[id]; ok {
		return errors.NewAlreadyExists("watcher %v already exists", id)
	}
	ws.watchers[id] = ch
	return nil
}

// RemoveWatcher removes a watcher channel
func (ws *Watchers) RemoveWatcher(id uuid.UUID) error {
	ws.rm.Lock()
	defer ws.rm.Unlock()
	if _, ok := ws.watchers[id]; !ok {
		return errors.NewNotFound("watcher %v does not exist", id)
	}
	delete(ws.watchers, id)
	return nil
}

// Send sends an event to all watchers
func (ws *Watchers) Send(event Event) {
	ws.rm.RLock()
	defer ws.rm.RUnlock()
	for _, ch := range ws.watchers {
		ch <- event
	}
}
