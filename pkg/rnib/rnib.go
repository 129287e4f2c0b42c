// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package rnib is the R-NIB topology client: it reports connected E2 nodes
// and the measurement capabilities advertised in their aspects.
package rnib

import (
	"context"

	prototypes "github.com/gogo/protobuf/types"
	topoapi "github.com/onosproject/onos-api/go/onos/topo"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	toposdk "github.com/onosproject/onos-ric-sdk-go/pkg/topo"
)

// Client is an R-NIB client interface
type Client interface {
	// WatchE2Connections watches E2 connection changes
	WatchE2Connections(ctx context.Context, ch chan topoapi.Event) error

	// E2NodeIDs lists the connected E2 node IDs
	E2NodeIDs(ctx context.Context) ([]topoapi.ID, error)

	// GetE2NodeAspects gets the E2 node aspects
	GetE2NodeAspects(ctx context.Context, nodeID topoapi.ID) (*topoapi.E2Node, error)

	// GetSupportedMeasurements lists the KPM measurement names the node
	// advertises; empty when the node carries no KPM RAN function
	GetSupportedMeasurements(ctx context.Context, nodeID topoapi.ID) ([]string, error)
}

// NewClient creates a new topo SDK client
func NewClient() (Client, error) {
	sdkClient, err := toposdk.NewClient()
	if err != nil {
		return &client{}, err
	}
	return &client{
		client: sdkClient,
	}, nil
}

type client struct {
	client toposdk.Client
}

func getControlRelationFilter() *topoapi.Filters {
	return &topoapi.Filters{
		KindFilter: &topoapi.Filter{
			Filter: &topoapi.Filter_Equal_{
				Equal_: &topoapi.EqualFilter{
					Value: topoapi.CONTROLS,
				},
			},
		},
	}
}

func (c *client) WatchE2Connections(ctx context.Context, ch chan topoapi.Event) error {
	err := c.client.Watch(ctx, ch, toposdk.WithWatchFilters(getControlRelationFilter()))
	if err != nil {
		return err
	}
	return nil
}

func (c *client) E2NodeIDs(ctx context.Context) ([]topoapi.ID, error) {
	objects, err := c.client.List(ctx, toposdk.WithListFilters(getControlRelationFilter()))
	if err != nil {
		return nil, err
	}

	e2NodeIDs := make([]topoapi.ID, 0, len(objects))
	for _, object := range objects {
		relation := object.Obj.(*topoapi.Object_Relation)
		e2NodeID := relation.Relation.TgtEntityID
		e2NodeIDs = append(e2NodeIDs, e2NodeID)
	}

	return e2NodeIDs, nil
}

func (c *client) GetE2NodeAspects(ctx context.Context, nodeID topoapi.ID) (*topoapi.E2Node, error) {
	object, err := c.client.Get(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	e2Node := &topoapi.E2Node{}
	err = object.GetAspect(e2Node)
	if err != nil {
		return nil, err
	}

	return e2Node, nil
}

func (c *client) GetSupportedMeasurements(ctx context.Context, nodeID topoapi.ID) ([]string, error) {
	e2Node, err := c.GetE2NodeAspects(ctx, nodeID)
	if err != nil {
		return nil, err
	}

	names := kpmMeasurementNames(e2Node)
	if len(names) == 0 {
		return nil, errors.NewNotFound("node %s advertises no KPM measurements", nodeID)
	}
	return names, nil
}

// kpmMeasurementNames collects the measurement names advertised across every
// report style of every KPM RAN function aspect; non-KPM RAN functions are
// skipped.
func kpmMeasurementNames(e2Node *topoapi.E2Node) []string {
	names := make([]string, 0)
	for _, sm := range e2Node.GetServiceModels() {
		for _, ranFunction := range sm.GetRanFunctions() {
			kpmRanFunction := &topoapi.KPMRanFunction{}
			err := prototypes.UnmarshalAny(ranFunction, kpmRanFunction)
			if err != nil {
				continue
			}
			for _, reportStyle := range kpmRanFunction.GetReportStyles() {
				for _, measurement := range reportStyle.GetMeasurements() {
					names = append(names, measurement.GetName())
				}
			}
		}
	}
	return names
}

var _ Client = &client{}
