// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package collector implements the multi-stream metric correlator: per-stream
// ingest handlers merging indications into one shared fused record, and the
// MAC-triggered emission policy feeding the bounded dataset sink.
package collector

import (
	"sync"
	"time"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/exporter"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/messages"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/onosproject/onos-lib-go/pkg/logging"
)

var log = logging.GetLogger("collector")

// NewCollector creates a new metric collector
func NewCollector(opts ...Option) *Collector {
	options := Options{}

	for _, opt := range opts {
		opt.apply(&options)
	}
	return &Collector{
		sink:          options.Sink.Writer,
		flushInterval: options.Sink.FlushInterval,
		sampleTarget:  options.Session.SampleTarget,
		doneCh:        make(chan struct{}),
	}
}

// Collector owns the shared metric record and the dataset emission policy.
// Ingest may be called concurrently from any number of subscription streams.
type Collector struct {
	mu     sync.Mutex
	record metricRecord

	sink          exporter.Writer
	flushInterval uint64
	sampleTarget  uint64

	samples  uint64
	sinkErr  error
	doneCh   chan struct{}
	doneOnce sync.Once

	watchersMu sync.RWMutex
	watchers   []chan<- exporter.Row
}

// Ingest merges one decoded indication into the shared record. The declared
// kind of the indication must match the stream it arrived on; a mismatch is
// a contract violation reported as an invalid-argument error.
func (c *Collector) Ingest(kind messages.StreamKind, ind *messages.Indication) error {
	if ind.Kind != kind {
		return errors.NewInvalid("indication kind %q does not match stream kind %q", ind.Kind, kind)
	}
	switch kind {
	case messages.StreamMAC:
		return c.ingestMAC(ind.MAC)
	case messages.StreamRLC:
		c.ingestRLC(ind.RLC)
	case messages.StreamPDCP:
		c.ingestPDCP(ind.PDCP)
	case messages.StreamGTP:
		// monitored but not persisted
		log.Debugf("GTP indication with %d tunnels", len(ind.GTP.Tunnels))
	case messages.StreamKPM:
		c.ingestKPM(ind.KPM)
	default:
		return errors.NewInvalid("unknown stream kind %q", kind)
	}
	return nil
}

func (c *Collector) ingestMAC(msg *messages.MACIndication) error {
	if len(msg.UEStats) == 0 {
		return nil
	}
	ue := msg.UEStats[0]

	c.mu.Lock()
	c.record.timestamp = time.Now().UnixMicro()
	c.record.mac = macGroup{
		rnti:      ue.RNTI,
		cqi:       ue.WbCQI,
		puschSNR:  ue.PuschSNR,
		pucchSNR:  ue.PucchSNR,
		dlBLER:    ue.DlBLER,
		ulBLER:    ue.UlBLER,
		dlMCS1:    ue.DlMCS1,
		dlMCS2:    ue.DlMCS2,
		ulMCS1:    ue.UlMCS1,
		ulMCS2:    ue.UlMCS2,
		dlTBS:     ue.DlCurrTBS,
		ulTBS:     ue.UlCurrTBS,
		dlAggrTBS: ue.DlAggrTBS,
		ulAggrTBS: ue.UlAggrTBS,
		dlPRB:     ue.DlAggrPRB,
		ulPRB:     ue.UlAggrPRB,
		dlSchedRB: ue.DlSchedRB,
		ulSchedRB: ue.UlSchedRB,
		bsr:       ue.BSR,
		phr:       ue.PHR,
		frame:     ue.Frame,
		slot:      ue.Slot,
		fresh:     true,
	}
	c.mu.Unlock()

	// Emission re-acquires the lock; another stream may slip in between the
	// two critical sections, which only makes the emitted row fresher.
	return c.maybeEmit()
}

func (c *Collector) ingestRLC(msg *messages.RLCIndication) {
	if len(msg.Bearers) == 0 {
		return
	}
	rb := msg.Bearers[0]

	c.mu.Lock()
	c.record.rlc = rlcGroup{
		txPkts:  rb.TxPDUPkts,
		txBytes: rb.TxPDUBytes,
		rxPkts:  rb.RxPDUPkts,
		rxBytes: rb.RxPDUBytes,
		txBuf:   rb.TxBufOccBytes,
		rxBuf:   rb.RxBufOccBytes,
		retx:    rb.TxPDURetxPkts,
		fresh:   true,
	}
	c.mu.Unlock()
}

func (c *Collector) ingestPDCP(msg *messages.PDCPIndication) {
	if len(msg.Bearers) == 0 {
		return
	}
	rb := msg.Bearers[0]

	c.mu.Lock()
	c.record.pdcp = pdcpGroup{
		txPkts:  rb.TxPDUPkts,
		txBytes: rb.TxPDUBytes,
		rxPkts:  rb.RxPDUPkts,
		rxBytes: rb.RxPDUBytes,
		fresh:   true,
	}
	c.mu.Unlock()
}

func (c *Collector) ingestKPM(msg *messages.KPMIndication) {
	if len(msg.UEReports) == 0 {
		return
	}

	c.mu.Lock()
	for _, report := range msg.UEReports {
		for _, rec := range report.Records {
			if setter, ok := KPMSetters[rec.Name]; ok && rec.Type == setter.valueType {
				setter.set(&c.record.kpm, rec)
			}
		}
	}
	c.record.kpm.fresh = true
	c.mu.Unlock()
}

// maybeEmit writes one fused row if the primary group is fresh. Non-primary
// groups are read as-is; a group that never reported contributes zeros.
func (c *Collector) maybeEmit() error {
	c.mu.Lock()
	if !c.record.mac.fresh {
		c.mu.Unlock()
		return nil
	}
	if c.sampleTarget > 0 && c.samples >= c.sampleTarget {
		c.mu.Unlock()
		return nil
	}

	row := c.record.row()
	if err := c.sink.Write(&row); err != nil {
		// the dataset cannot be trusted once a write failed; close it
		// best-effort and end the session
		c.sinkErr = err
		_ = c.sink.Close()
		c.mu.Unlock()
		c.done()
		return err
	}
	c.record.mac.fresh = false
	c.samples++
	samples := c.samples

	if c.flushInterval > 0 && samples%c.flushInterval == 0 {
		if err := c.sink.Flush(); err != nil {
			c.sinkErr = err
			_ = c.sink.Close()
			c.mu.Unlock()
			c.done()
			return err
		}
		log.Infof("[%d] CQI=%d SNR=%.1fdB BLER=%.3f DL_Thp=%.1fkbps UL_Thp=%.1fkbps PRB=%d/%d",
			samples, row.CQI, row.PuschSNR, row.DlBLER, row.DlThpKbps, row.UlThpKbps, row.DlPRB, row.UlPRB)
	}
	c.mu.Unlock()

	if c.sampleTarget > 0 && samples >= c.sampleTarget {
		log.Infof("Reached target of %d samples", c.sampleTarget)
		c.done()
	}

	c.notify(row)
	return nil
}

func (c *Collector) notify(row exporter.Row) {
	c.watchersMu.RLock()
	defer c.watchersMu.RUnlock()
	for _, ch := range c.watchers {
		select {
		case ch <- row:
		default:
			// slow watchers drop rows rather than stall ingestion
		}
	}
}

// Watch registers a channel receiving a copy of every emitted row.
func (c *Collector) Watch(ch chan<- exporter.Row) {
	c.watchersMu.Lock()
	defer c.watchersMu.Unlock()
	c.watchers = append(c.watchers, ch)
}

// Samples returns the number of rows emitted so far.
func (c *Collector) Samples() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.samples
}

// Done is closed when the sample target is reached or the sink failed.
func (c *Collector) Done() <-chan struct{} {
	return c.doneCh
}

// Err returns the sink error that ended the session, if any.
func (c *Collector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sinkErr
}

func (c *Collector) done() {
	c.doneOnce.Do(func() {
		close(c.doneCh)
	})
}

// Close flushes and closes the dataset sink. Called exactly once by the
// manager after all subscriptions are released.
func (c *Collector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sinkErr != nil {
		// the sink was already closed best-effort on the write failure
		return c.sinkErr
	}
	if err := c.sink.Flush(); err != nil {
		return err
	}
	return c.sink.Close()
}
