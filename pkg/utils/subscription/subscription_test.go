// SPDX-FileCopyrightText: 2022-present Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package subscription

import (
	"encoding/json"
	"testing"

	e2api "github.com/onosproject/onos-api/go/onos/e2t/e2/v1beta1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/messages"
)

func TestActionDefinitionPreservesOrder(t *testing.T) {
	names := []string{"A", "B", "C"}
	action := NewActionDefinition(100, names)

	assert.Equal(t, uint32(100), action.GranularityPeriodMs)
	require.Len(t, action.Measurements, 3)
	for i, entry := range action.Measurements {
		assert.Equal(t, names[i], entry.Name)
		require.Len(t, entry.Labels, 1)
		assert.True(t, entry.Labels[0].NoLabel)
	}
}

func TestFilterPredicate(t *testing.T) {
	filter := NewFilter(CondSnssai, 1)
	assert.Equal(t, CondSnssai, filter.CondType)
	assert.Equal(t, OpEqual, filter.Operator)
	assert.Equal(t, int64(1), filter.IntValue)
}

func TestSubscriptionSpec(t *testing.T) {
	spec := NewRequestSpec(messages.StreamKPM, 100,
		[]string{"DRB.UEThpDl", "RRU.PrbTotDl"}, NewFilter(CondSnssai, 1))
	subSpec, err := NewSubscriptionSpec(spec)
	require.NoError(t, err)

	require.Len(t, subSpec.Actions, 1)
	action := subSpec.Actions[0]
	assert.Equal(t, e2api.ActionType_ACTION_TYPE_REPORT, action.Type)
	require.NotNil(t, action.SubsequentAction)
	assert.Equal(t, e2api.SubsequentActionType_SUBSEQUENT_ACTION_TYPE_CONTINUE, action.SubsequentAction.Type)
	assert.Equal(t, e2api.TimeToWait_TIME_TO_WAIT_ZERO, action.SubsequentAction.TimeToWait)

	var decodedAction ActionDefinition
	require.NoError(t, json.Unmarshal(action.Payload, &decodedAction))
	assert.Equal(t, spec.Action, decodedAction)

	var decodedTrigger EventTrigger
	require.NoError(t, json.Unmarshal(subSpec.EventTrigger.Payload, &decodedTrigger))
	assert.Equal(t, uint32(100), decodedTrigger.ReportPeriodMs)
}

func TestFixedShapeStreamSpec(t *testing.T) {
	spec := NewRequestSpec(messages.StreamMAC, 100, nil, nil)
	subSpec, err := NewSubscriptionSpec(spec)
	require.NoError(t, err)

	var decodedAction ActionDefinition
	require.NoError(t, json.Unmarshal(subSpec.Actions[0].Payload, &decodedAction))
	assert.Empty(t, decodedAction.Measurements)
	assert.Nil(t, decodedAction.Filter)
}
