// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	e2api "github.com/onosproject/onos-api/go/onos/e2t/e2/v1beta1"
	topoapi "github.com/onosproject/onos-api/go/onos/topo"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/messages"
)

// Key identifies one (E2 node, stream) subscription.
type Key struct {
	NodeID topoapi.ID
	Stream messages.StreamKind
}

// State is the lifecycle state of a subscription.
type State int

const (
	// StatePending subscription requested, outcome unknown
	StatePending State = iota
	// StateSubscribed subscription established
	StateSubscribed
	// StateFailed subscription could not be established
	StateFailed
	// StateClosed subscription released
	StateClosed
)

func (s State) String() string {
	return [...]string{"Pending", "Subscribed", "Failed", "Closed"}[s]
}

// SubscriptionValue records the outcome of one subscription attempt.
type SubscriptionValue struct {
	SubName   string
	ChannelID e2api.ChannelID
	StreamID  int
	State     State
}

// Entry is a registry entry
type Entry struct {
	Key   Key
	Value interface{}
}

// EventType is a registry event type
type EventType int

const (
	// None none event
	None EventType = iota
	// Created created event
	Created
	// Updated updated event
	Updated
	// Deleted deleted event
	Deleted
)

func (e EventType) String() string {
	return [...]string{"None", "Created", "Updated", "Deleted"}[e]
}

// Event is a registry change event
type Event struct {
	Key   Key
	Value *Entry
	Type  EventType
}
