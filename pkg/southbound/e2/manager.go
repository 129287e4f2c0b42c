// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package e2 manages the subscription session: one subscription per
// (E2 node, stream), established when nodes connect and released on stop.
package e2

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	e2api "github.com/onosproject/onos-api/go/onos/e2t/e2/v1beta1"
	topoapi "github.com/onosproject/onos-api/go/onos/topo"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/onosproject/onos-lib-go/pkg/logging"
	e2client "github.com/onosproject/onos-ric-sdk-go/pkg/e2/v1beta1"

	appConfig "github.com/AMINE-ADJ/xapp-monitoring/pkg/config"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/broker"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/collector"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/messages"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/monitoring"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/rnib"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/store"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/utils/subscription"
)

var log = logging.GetLogger("e2", "subscription", "manager")

const (
	backoffInterval = 10 * time.Millisecond
	maxBackoffTime  = 5 * time.Second
	maxElapsedTime  = 30 * time.Second

	// defaultSliceSST is the S-NSSAI SST the KPM report is filtered on
	defaultSliceSST = 1
)

func newExpBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = backoffInterval
	// MaxInterval caps the RetryInterval
	b.MaxInterval = maxBackoffTime
	// Bounded so that a persistent failure is recorded per (node, stream)
	// instead of retrying forever
	b.MaxElapsedTime = maxElapsedTime
	return b
}

// Node e2 manager interface
type Node interface {
	Start() error
	Stop(ctx context.Context) error
}

// Manager subscription manager
type Manager struct {
	e2client     e2client.Client
	rnibClient   rnib.Client
	serviceModel ServiceModelOptions
	appConfig    appConfig.Config
	streams      broker.Broker
	collector    *collector.Collector
	subStore     store.Store
	streamKinds  []messages.StreamKind
}

// NewManager creates a new subscription manager
func NewManager(opts ...Option) (Manager, error) {
	options := Options{}

	for _, opt := range opts {
		opt.apply(&options)
	}

	serviceModelName := e2client.ServiceModelName(options.ServiceModel.Name)
	serviceModelVersion := e2client.ServiceModelVersion(options.ServiceModel.Version)
	appID := e2client.AppID(options.App.AppID)
	e2Client := e2client.NewClient(
		e2client.WithServiceModel(serviceModelName, serviceModelVersion),
		e2client.WithAppID(appID),
		e2client.WithE2TAddress(options.E2TService.Host, options.E2TService.Port))

	rnibClient, err := rnib.NewClient()
	if err != nil {
		return Manager{}, err
	}

	return Manager{
		e2client:   e2Client,
		rnibClient: rnibClient,
		serviceModel: ServiceModelOptions{
			Name:    options.ServiceModel.Name,
			Version: options.ServiceModel.Version,
		},
		appConfig:   options.App.Config,
		streams:     options.App.Broker,
		collector:   options.App.Collector,
		subStore:    options.App.SubStore,
		streamKinds: options.App.Streams,
	}, nil
}

// Start starts the subscription manager. It is a fatal startup error if no
// E2 node is reachable: the session would never produce a single row.
func (m *Manager) Start() error {
	ctx := context.Background()
	nodeIDs, err := m.rnibClient.E2NodeIDs(ctx)
	if err != nil {
		return err
	}
	if len(nodeIDs) == 0 {
		return errors.NewNotFound("no E2 nodes connected")
	}
	log.Infof("Connected E2 nodes: %d", len(nodeIDs))

	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		err := m.watchE2Connections(ctx)
		if err != nil {
			return
		}
	}()

	return nil
}

func (m *Manager) sendIndicationOnStream(streamID broker.StreamID, ch chan e2api.Indication) {
	streamWriter, err := m.streams.GetWriter(streamID)
	if err != nil {
		log.Error(err)
		return
	}

	for msg := range ch {
		err := streamWriter.Send(msg)
		if err != nil {
			log.Warn(err)
			return
		}
	}
}

func (m *Manager) watchE2Connections(ctx context.Context) error {
	ch := make(chan topoapi.Event)
	err := m.rnibClient.WatchE2Connections(ctx, ch)
	if err != nil {
		log.Warn(err)
		return err
	}

	// subscribe every configured stream whenever a new E2 node connects
	for topoEvent := range ch {
		if topoEvent.Type == topoapi.EventType_ADDED || topoEvent.Type == topoapi.EventType_NONE {
			relation := topoEvent.Object.Obj.(*topoapi.Object_Relation)
			e2NodeID := relation.Relation.TgtEntityID
			for _, kind := range m.streamKinds {
				go func(kind messages.StreamKind) {
					err := m.newSubscription(ctx, e2NodeID, kind)
					if err != nil {
						log.Warn(err)
					}
				}(kind)
			}
		}
	}
	return nil
}

// newSubscription establishes one (node, stream) subscription with retries.
// A persistent failure is recorded in the registry and does not affect any
// other pair.
func (m *Manager) newSubscription(ctx context.Context, e2NodeID topoapi.ID, kind messages.StreamKind) error {
	notifier := func(err error, t time.Duration) {
		log.Infof("Retrying, failed to subscribe %s stream on E2 node %s due to %s", kind, e2NodeID, err)
	}

	err := backoff.RetryNotify(func() error {
		return m.createSubscription(ctx, e2NodeID, kind)
	}, newExpBackoff(), notifier)
	if err != nil {
		_, putErr := m.subStore.Put(ctx, store.Key{NodeID: e2NodeID, Stream: kind}, &store.SubscriptionValue{
			State: store.StateFailed,
		})
		if putErr != nil {
			log.Warn(putErr)
		}
		return err
	}
	return nil
}

// measurementNames returns the measurement names requested for a stream.
// Only the KPM stream is name-driven; the fixed-shape streams report their
// whole statistics block.
func (m *Manager) measurementNames(ctx context.Context, e2NodeID topoapi.ID, kind messages.StreamKind) []string {
	if kind != messages.StreamKPM {
		return nil
	}
	recognized := collector.KPMMeasurementNames()
	supported, err := m.rnibClient.GetSupportedMeasurements(ctx, e2NodeID)
	if err != nil {
		log.Warnf("Cannot read KPM capabilities of %s, requesting the full recognized set: %v", e2NodeID, err)
		return recognized
	}
	supportedSet := make(map[string]bool, len(supported))
	for _, name := range supported {
		supportedSet[name] = true
	}
	names := make([]string, 0, len(recognized))
	for _, name := range recognized {
		if supportedSet[name] {
			names = append(names, name)
		}
	}
	return names
}

func (m *Manager) createSubscription(ctx context.Context, e2NodeID topoapi.ID, kind messages.StreamKind) error {
	log.Infof("Creating subscription for E2 node %s, stream %s", e2NodeID, kind)

	reportPeriod, err := m.appConfig.GetReportPeriod()
	if err != nil {
		log.Warn(err)
		return err
	}

	var filter *subscription.FilterPredicate
	if kind == messages.StreamKPM {
		filter = subscription.NewFilter(subscription.CondSnssai, defaultSliceSST)
	}
	spec := subscription.NewRequestSpec(kind, uint32(reportPeriod), m.measurementNames(ctx, e2NodeID, kind), filter)
	subSpec, err := subscription.NewSubscriptionSpec(spec)
	if err != nil {
		log.Warn(err)
		return err
	}

	ch := make(chan e2api.Indication)
	node := m.e2client.Node(e2client.NodeID(e2NodeID))
	subName := "xapp-monitoring-" + string(kind)
	channelID, err := node.Subscribe(ctx, subName, subSpec, ch)
	if err != nil {
		log.Warn(err)
		return err
	}
	log.Debugf("Channel ID:%s", channelID)

	streamReader, err := m.streams.OpenReader(ctx, node, subName, channelID, subSpec)
	if err != nil {
		return err
	}

	key := store.Key{NodeID: e2NodeID, Stream: kind}
	_, err = m.subStore.Put(ctx, key, &store.SubscriptionValue{
		SubName:   subName,
		ChannelID: channelID,
		StreamID:  int(streamReader.ID()),
		State:     store.StateSubscribed,
	})
	if err != nil {
		log.Warn(err)
	}

	go m.sendIndicationOnStream(streamReader.ID(), ch)
	monitor := monitoring.NewMonitor(
		monitoring.WithCollector(m.collector),
		monitoring.WithNodeID(e2NodeID),
		monitoring.WithStreamKind(kind),
		monitoring.WithStreamReader(streamReader))

	err = monitor.Start(ctx)
	if err != nil {
		log.Warn(err)
	}

	return nil
}

// Stop releases every established subscription individually; one failed
// release never blocks the others.
func (m *Manager) Stop(ctx context.Context) error {
	ch := make(chan *store.Entry)
	go func() {
		err := m.subStore.Entries(ctx, ch)
		if err != nil {
			log.Warn(err)
		}
	}()

	entries := make([]*store.Entry, 0)
	for entry := range ch {
		entries = append(entries, entry)
	}

	for _, entry := range entries {
		value, ok := entry.Value.(*store.SubscriptionValue)
		if !ok || value.State != store.StateSubscribed {
			continue
		}
		node := m.e2client.Node(e2client.NodeID(entry.Key.NodeID))
		if err := node.Unsubscribe(ctx, value.SubName); err != nil {
			log.Warnf("Cannot unsubscribe %s stream on E2 node %s: %v", entry.Key.Stream, entry.Key.NodeID, err)
		}
		if _, err := m.streams.CloseStream(ctx, broker.StreamID(value.StreamID)); err != nil {
			log.Warn(err)
		}
		value.State = store.StateClosed
		if _, err := m.subStore.Put(ctx, entry.Key, value); err != nil {
			log.Warn(err)
		}
	}
	return nil
}

var _ Node = &Manager{}
