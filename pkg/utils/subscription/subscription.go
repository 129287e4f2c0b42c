// SPDX-FileCopyrightText: 2022-present Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

// Package subscription builds the declarative request specification handed to
// the E2 subscription call: which measurements to report, how often, and for
// which slice. The builders are pure; ownership of the returned tree passes
// to the subscribe operation.
package subscription

import (
	"encoding/json"

	e2api "github.com/onosproject/onos-api/go/onos/e2t/e2/v1beta1"
	"github.com/onosproject/onos-lib-go/pkg/errors"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/messages"
)

// TestCondType is the filter condition type.
type TestCondType string

const (
	// CondSnssai matches on the S-NSSAI slice identifier
	CondSnssai TestCondType = "S-NSSAI"
)

// CompareOp is the filter comparison operator.
type CompareOp string

const (
	// OpEqual equality comparison
	OpEqual CompareOp = "equal"
)

// FilterPredicate restricts a report to entities matching a condition.
type FilterPredicate struct {
	CondType TestCondType `json:"condType"`
	Operator CompareOp    `json:"operator"`
	IntValue int64        `json:"intValue"`
}

// LabelInfo is the label metadata attached to a measurement entry. The base
// case carries only the no-grouping marker.
type LabelInfo struct {
	NoLabel bool `json:"noLabel"`
}

// MeasurementInfoEntry names one requested measurement.
type MeasurementInfoEntry struct {
	Name   string      `json:"name"`
	Labels []LabelInfo `json:"labels"`
}

// ActionDefinition describes one report action: a granularity period, the
// requested measurements in request order, and an optional filter.
type ActionDefinition struct {
	GranularityPeriodMs uint32                 `json:"granPeriodMs"`
	Measurements        []MeasurementInfoEntry `json:"measurements"`
	Filter              *FilterPredicate       `json:"filter,omitempty"`
}

// EventTrigger is the report trigger definition.
type EventTrigger struct {
	ReportPeriodMs uint32 `json:"reportPeriodMs"`
}

// RequestSpec is the full request specification for one stream.
type RequestSpec struct {
	Stream  messages.StreamKind `json:"stream"`
	Trigger EventTrigger        `json:"trigger"`
	Action  ActionDefinition    `json:"action"`
}

// NewFilter returns an equality filter predicate on an integer-valued
// condition field.
func NewFilter(condType TestCondType, value int64) *FilterPredicate {
	return &FilterPredicate{
		CondType: condType,
		Operator: OpEqual,
		IntValue: value,
	}
}

// NewMeasurementInfo returns a measurement entry carrying the no-label marker.
func NewMeasurementInfo(name string) MeasurementInfoEntry {
	return MeasurementInfoEntry{
		Name:   name,
		Labels: []LabelInfo{{NoLabel: true}},
	}
}

// NewActionDefinition returns an action definition requesting the named
// measurements. Entry order follows name order: downstream correlation is
// name-keyed, and the request preserves what the caller asked for.
func NewActionDefinition(periodMs uint32, names []string) ActionDefinition {
	measurements := make([]MeasurementInfoEntry, 0, len(names))
	for _, name := range names {
		measurements = append(measurements, NewMeasurementInfo(name))
	}
	return ActionDefinition{
		GranularityPeriodMs: periodMs,
		Measurements:        measurements,
	}
}

// NewRequestSpec assembles the request specification for one stream.
func NewRequestSpec(stream messages.StreamKind, reportPeriodMs uint32, names []string, filter *FilterPredicate) *RequestSpec {
	action := NewActionDefinition(reportPeriodMs, names)
	action.Filter = filter
	return &RequestSpec{
		Stream:  stream,
		Trigger: EventTrigger{ReportPeriodMs: reportPeriodMs},
		Action:  action,
	}
}

// NewSubscriptionSpec serializes a request specification into the E2
// subscription shape consumed by the SDK.
func NewSubscriptionSpec(spec *RequestSpec) (e2api.SubscriptionSpec, error) {
	triggerPayload, err := json.Marshal(spec.Trigger)
	if err != nil {
		return e2api.SubscriptionSpec{}, errors.NewInvalid("cannot encode event trigger: %v", err)
	}
	actionPayload, err := json.Marshal(spec.Action)
	if err != nil {
		return e2api.SubscriptionSpec{}, errors.NewInvalid("cannot encode action definition: %v", err)
	}

	action := e2api.Action{
		ID:      0,
		Type:    e2api.ActionType_ACTION_TYPE_REPORT,
		Payload: actionPayload,
		SubsequentAction: &e2api.SubsequentAction{
			Type:       e2api.SubsequentActionType_SUBSEQUENT_ACTION_TYPE_CONTINUE,
			TimeToWait: e2api.TimeToWait_TIME_TO_WAIT_ZERO,
		},
	}

	return e2api.SubscriptionSpec{
		Actions: []e2api.Action{action},
		EventTrigger: e2api.EventTrigger{
			Payload: triggerPayload,
		},
	}, nil
}
