// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package uenib publishes the latest fused sample of each UE to onos-uenib
// so that other xApps can read it without touching the dataset file.
package uenib

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gogo/protobuf/types"
	"github.com/onosproject/onos-api/go/onos/uenib"
	"github.com/onosproject/onos-lib-go/pkg/logging"
	"github.com/onosproject/onos-lib-go/pkg/southbound"
	"google.golang.org/grpc"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/collector"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/exporter"
)

const (
	// UENIBAddress has UENIB endpoint
	UENIBAddress = "onos-uenib:5150"

	// sampleAspectType is the aspect type the latest sample is stored under
	sampleAspectType = "xapp-monitoring.Sample"
)

var log = logging.GetLogger("uenib")

// NewClient returns a new UE-NIB publisher fed by collector samples. The
// publisher is optional; a connection failure is reported to the caller
// rather than carried as a dead client.
func NewClient(ctx context.Context, certPath string, keyPath string, c *collector.Collector) (Client, error) {
	conn, err := southbound.Connect(ctx, UENIBAddress, certPath, keyPath)
	if err != nil {
		return nil, err
	}
	return &client{
		client:    uenib.NewUEServiceClient(conn),
		conn:      conn,
		collector: c,
	}, nil
}

// Client is an interface for the UE-NIB publisher
type Client interface {
	// Run consumes collector samples until the context is done
	Run(ctx context.Context)

	// Close closes the UE-NIB connection
	Close()
}

type client struct {
	client    uenib.UEServiceClient
	conn      *grpc.ClientConn
	collector *collector.Collector
}

func (c *client) Run(ctx context.Context) {
	ch := make(chan exporter.Row)
	c.collector.Watch(ch)

	for {
		select {
		case row := <-ch:
			c.updateSample(ctx, row)
		case <-ctx.Done():
			return
		}
	}
}

func (c *client) Close() {
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			log.Warn(err)
		}
	}
}

// updateSample pushes one fused sample; publish failures are logged and
// never end the collection session.
func (c *client) updateSample(ctx context.Context, row exporter.Row) {
	req, err := c.createUpdateReq(row)
	if err != nil {
		log.Warn(err)
		return
	}
	resp, err := c.client.UpdateUE(ctx, req)
	if err != nil {
		log.Warn(err)
		return
	}
	log.Debugf("resp: %v", resp)
}

func (c *client) createUpdateReq(row exporter.Row) (*uenib.UpdateUERequest, error) {
	value, err := json.Marshal(&row)
	if err != nil {
		return nil, err
	}

	uenibObj := uenib.UE{
		ID:      uenib.ID(fmt.Sprintf("%d", row.RNTI)),
		Aspects: make(map[string]*types.Any),
	}
	uenibObj.Aspects[sampleAspectType] = &types.Any{
		TypeUrl: sampleAspectType,
		Value:   value,
	}

	return &uenib.UpdateUERequest{
		UE: uenibObj,
	}, nil
}
