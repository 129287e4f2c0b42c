// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package collector

import (
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/exporter"
	"github.com/AMINE-ADJ/xapp-monitoring/pkg/messages"
)

// macGroup holds the latest MAC scheduler statistics. MAC is the primary
// group: its freshness flag gates row emission.
type macGroup struct {
	rnti      uint32
	cqi       uint8
	puschSNR  float64
	pucchSNR  float64
	dlBLER    float64
	ulBLER    float64
	dlMCS1    uint8
	dlMCS2    uint8
	ulMCS1    uint8
	ulMCS2    uint8
	dlTBS     uint64
	ulTBS     uint64
	dlAggrTBS uint64
	ulAggrTBS uint64
	dlPRB     uint32
	ulPRB     uint32
	dlSchedRB uint32
	ulSchedRB uint32
	bsr       uint32
	phr       int8
	frame     uint16
	slot      uint16
	fresh     bool
}

type rlcGroup struct {
	txPkts  uint32
	txBytes uint32
	rxPkts  uint32
	rxBytes uint32
	txBuf   uint32
	rxBuf   uint32
	retx    uint32
	fresh   bool
}

type pdcpGroup struct {
	txPkts  uint32
	txBytes uint32
	rxPkts  uint32
	rxBytes uint32
	fresh   bool
}

type kpmGroup struct {
	dlThpKbps     float64
	ulThpKbps     float64
	rlcSduDelayUs float64
	pdcpVolDlKb   int32
	pdcpVolUlKb   int32
	prbTotDl      int32
	prbTotUl      int32
	fresh         bool
}

// metricRecord is the shared fused record. All groups live in one
// mutual-exclusion domain owned by the Collector; no partial record is ever
// observed mid-update.
type metricRecord struct {
	timestamp int64
	mac       macGroup
	rlc       rlcGroup
	pdcp      pdcpGroup
	kpm       kpmGroup
}

// row snapshots the whole record into a dataset row. Non-primary groups are
// read regardless of freshness; staleness is tolerated by design.
func (r *metricRecord) row() exporter.Row {
	return exporter.Row{
		Timestamp: r.timestamp,

		RNTI:      r.mac.rnti,
		CQI:       r.mac.cqi,
		PuschSNR:  r.mac.puschSNR,
		PucchSNR:  r.mac.pucchSNR,
		DlBLER:    r.mac.dlBLER,
		UlBLER:    r.mac.ulBLER,
		DlMCS1:    r.mac.dlMCS1,
		DlMCS2:    r.mac.dlMCS2,
		UlMCS1:    r.mac.ulMCS1,
		UlMCS2:    r.mac.ulMCS2,
		DlTBS:     r.mac.dlTBS,
		UlTBS:     r.mac.ulTBS,
		DlAggrTBS: r.mac.dlAggrTBS,
		UlAggrTBS: r.mac.ulAggrTBS,
		DlPRB:     r.mac.dlPRB,
		UlPRB:     r.mac.ulPRB,
		DlSchedRB: r.mac.dlSchedRB,
		UlSchedRB: r.mac.ulSchedRB,
		BSR:       r.mac.bsr,
		PHR:       r.mac.phr,
		Frame:     r.mac.frame,
		Slot:      r.mac.slot,

		RlcTxPkts:  r.rlc.txPkts,
		RlcTxBytes: r.rlc.txBytes,
		RlcRxPkts:  r.rlc.rxPkts,
		RlcRxBytes: r.rlc.rxBytes,
		RlcTxBuf:   r.rlc.txBuf,
		RlcRxBuf:   r.rlc.rxBuf,
		RlcRetx:    r.rlc.retx,

		PdcpTxPkts:  r.pdcp.txPkts,
		PdcpTxBytes: r.pdcp.txBytes,
		PdcpRxPkts:  r.pdcp.rxPkts,
		PdcpRxBytes: r.pdcp.rxBytes,

		DlThpKbps:     r.kpm.dlThpKbps,
		UlThpKbps:     r.kpm.ulThpKbps,
		RlcSduDelayUs: r.kpm.rlcSduDelayUs,
		PdcpVolDlKb:   r.kpm.pdcpVolDlKb,
		PdcpVolUlKb:   r.kpm.pdcpVolUlKb,
		PrbTotDl:      r.kpm.prbTotDl,
		PrbTotUl:      r.kpm.prbTotUl,
	}
}

// kpmSetter writes one recognized measurement into the KPM group. A record
// whose value tag does not match the expected type is ignored, the same way
// unrecognized names are.
type kpmSetter struct {
	valueType messages.MeasurementValueType
	set       func(*kpmGroup, messages.MeasurementRecord)
}

// KPMSetters maps recognized measurement names to KPM group fields. Names
// not in this table are ignored so that new upstream measurements never
// break ingestion.
var KPMSetters = map[string]kpmSetter{
	"DRB.UEThpDl": {messages.RealValue, func(g *kpmGroup, rec messages.MeasurementRecord) {
		g.dlThpKbps = rec.RealValue
	}},
	"DRB.UEThpUl": {messages.RealValue, func(g *kpmGroup, rec messages.MeasurementRecord) {
		g.ulThpKbps = rec.RealValue
	}},
	"DRB.RlcSduDelayDl": {messages.RealValue, func(g *kpmGroup, rec messages.MeasurementRecord) {
		g.rlcSduDelayUs = rec.RealValue
	}},
	"DRB.PdcpSduVolumeDL": {messages.IntegerValue, func(g *kpmGroup, rec messages.MeasurementRecord) {
		g.pdcpVolDlKb = int32(rec.IntValue)
	}},
	"DRB.PdcpSduVolumeUL": {messages.IntegerValue, func(g *kpmGroup, rec messages.MeasurementRecord) {
		g.pdcpVolUlKb = int32(rec.IntValue)
	}},
	"RRU.PrbTotDl": {messages.IntegerValue, func(g *kpmGroup, rec messages.MeasurementRecord) {
		g.prbTotDl = int32(rec.IntValue)
	}},
	"RRU.PrbTotUl": {messages.IntegerValue, func(g *kpmGroup, rec messages.MeasurementRecord) {
		g.prbTotUl = int32(rec.IntValue)
	}},
}

// KPMMeasurementNames returns the recognized measurement names in the order
// they are requested at subscription time.
func KPMMeasurementNames() []string {
	return []string{
		"DRB.UEThpDl",
		"DRB.UEThpUl",
		"DRB.RlcSduDelayDl",
		"DRB.PdcpSduVolumeDL",
		"DRB.PdcpSduVolumeUL",
		"RRU.PrbTotDl",
		"RRU.PrbTotUl",
	}
}
