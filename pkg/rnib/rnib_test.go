// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package rnib

import (
	"testing"

	prototypes "github.com/gogo/protobuf/types"
	topoapi "github.com/onosproject/onos-api/go/onos/topo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kpmNode(t *testing.T) *topoapi.E2Node {
	kpmRanFunction := &topoapi.KPMRanFunction{
		ReportStyles: []*topoapi.KPMReportStyle{
			{
				Name: "Periodic UE report",
				Measurements: []*topoapi.KPMMeasurement{
					{ID: "1", Name: "DRB.UEThpDl"},
					{ID: "2", Name: "DRB.UEThpUl"},
				},
			},
			{
				Name: "Periodic cell report",
				Measurements: []*topoapi.KPMMeasurement{
					{ID: "3", Name: "RRU.PrbTotDl"},
				},
			},
		},
	}
	kpmAny, err := prototypes.MarshalAny(kpmRanFunction)
	require.NoError(t, err)

	return &topoapi.E2Node{
		ServiceModels: map[string]*topoapi.ServiceModelInfo{
			"1": {
				Name: "oran-e2sm-kpm",
				RanFunctions: []*prototypes.Any{
					// aspects of other service models are skipped
					{TypeUrl: "type.googleapis.com/onos.topo.RCRanFunction", Value: []byte{0xff}},
					kpmAny,
				},
			},
		},
	}
}

func TestKPMMeasurementNames(t *testing.T) {
	names := kpmMeasurementNames(kpmNode(t))
	assert.Equal(t, []string{"DRB.UEThpDl", "DRB.UEThpUl", "RRU.PrbTotDl"}, names)
}

func TestKPMMeasurementNamesEmptyNode(t *testing.T) {
	assert.Empty(t, kpmMeasurementNames(&topoapi.E2Node{}))
}
