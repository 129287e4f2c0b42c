// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package messages

// StreamKind identifies one telemetry stream delivered by the RAN side.
type StreamKind string

const (
	// StreamMAC scheduler and link quality statistics; the primary stream
	StreamMAC StreamKind = "mac"
	// StreamRLC link-layer buffer and PDU statistics
	StreamRLC StreamKind = "rlc"
	// StreamPDCP PDCP PDU statistics
	StreamPDCP StreamKind = "pdcp"
	// StreamGTP tunnel statistics, monitored but not persisted
	StreamGTP StreamKind = "gtp"
	// StreamKPM named KPM measurement reports
	StreamKPM StreamKind = "kpm"
)

// Streams lists every stream kind this xApp subscribes to, in subscription order.
var Streams = []StreamKind{StreamMAC, StreamRLC, StreamPDCP, StreamGTP, StreamKPM}

// Indication is one decoded indication message, tagged by its stream kind.
// Exactly the field matching Kind is populated.
type Indication struct {
	Kind StreamKind      `json:"kind"`
	MAC  *MACIndication  `json:"mac,omitempty"`
	RLC  *RLCIndication  `json:"rlc,omitempty"`
	PDCP *PDCPIndication `json:"pdcp,omitempty"`
	GTP  *GTPIndication  `json:"gtp,omitempty"`
	KPM  *KPMIndication  `json:"kpm,omitempty"`
}

// MACIndication carries per-UE scheduler statistics.
type MACIndication struct {
	UEStats []MACUEStats `json:"ueStats"`
}

// MACUEStats is the statistics block for one served UE.
type MACUEStats struct {
	RNTI      uint32  `json:"rnti"`
	WbCQI     uint8   `json:"wbCqi"`
	PuschSNR  float64 `json:"puschSnr"`
	PucchSNR  float64 `json:"pucchSnr"`
	DlBLER    float64 `json:"dlBler"`
	UlBLER    float64 `json:"ulBler"`
	DlMCS1    uint8   `json:"dlMcs1"`
	DlMCS2    uint8   `json:"dlMcs2"`
	UlMCS1    uint8   `json:"ulMcs1"`
	UlMCS2    uint8   `json:"ulMcs2"`
	DlCurrTBS uint64  `json:"dlCurrTbs"`
	UlCurrTBS uint64  `json:"ulCurrTbs"`
	DlAggrTBS uint64  `json:"dlAggrTbs"`
	UlAggrTBS uint64  `json:"ulAggrTbs"`
	DlAggrPRB uint32  `json:"dlAggrPrb"`
	UlAggrPRB uint32  `json:"ulAggrPrb"`
	DlSchedRB uint32  `json:"dlSchedRb"`
	UlSchedRB uint32  `json:"ulSchedRb"`
	BSR       uint32  `json:"bsr"`
	PHR       int8    `json:"phr"`
	Frame     uint16  `json:"frame"`
	Slot      uint16  `json:"slot"`
}

// RLCIndication carries per-bearer RLC statistics.
type RLCIndication struct {
	Bearers []RLCBearerStats `json:"bearers"`
}

// RLCBearerStats is the statistics block for one radio bearer.
type RLCBearerStats struct {
	TxPDUPkts     uint32 `json:"txPduPkts"`
	TxPDUBytes    uint32 `json:"txPduBytes"`
	RxPDUPkts     uint32 `json:"rxPduPkts"`
	RxPDUBytes    uint32 `json:"rxPduBytes"`
	TxBufOccBytes uint32 `json:"txBufOccBytes"`
	RxBufOccBytes uint32 `json:"rxBufOccBytes"`
	TxPDURetxPkts uint32 `json:"txPduRetxPkts"`
}

// PDCPIndication carries per-bearer PDCP statistics.
type PDCPIndication struct {
	Bearers []PDCPBearerStats `json:"bearers"`
}

// PDCPBearerStats is the statistics block for one radio bearer.
type PDCPBearerStats struct {
	TxPDUPkts  uint32 `json:"txPduPkts"`
	TxPDUBytes uint32 `json:"txPduBytes"`
	RxPDUPkts  uint32 `json:"rxPduPkts"`
	RxPDUBytes uint32 `json:"rxPduBytes"`
}

// GTPIndication carries per-tunnel GTP statistics.
type GTPIndication struct {
	Tunnels []GTPTunnelStats `json:"tunnels"`
}

// GTPTunnelStats is the statistics block for one GTP tunnel.
type GTPTunnelStats struct {
	RNTI uint32 `json:"rnti"`
	TEID uint32 `json:"teid"`
	QFI  uint8  `json:"qfi"`
}

// KPMIndication carries named measurement reports, one per matched UE.
type KPMIndication struct {
	UEReports []KPMUEReport `json:"ueReports"`
}

// KPMUEReport is the measurement record list reported for one UE.
type KPMUEReport struct {
	Records []MeasurementRecord `json:"records"`
}

// MeasurementValueType tags the value variant of a MeasurementRecord.
type MeasurementValueType int

const (
	// RealValue the record carries RealValue
	RealValue MeasurementValueType = iota
	// IntegerValue the record carries IntValue
	IntegerValue
)

// MeasurementRecord is one named measurement value. Names are opaque keys;
// unrecognized names are ignored by the consumer.
type MeasurementRecord struct {
	Name      string               `json:"name"`
	Type      MeasurementValueType `json:"type"`
	RealValue float64              `json:"realValue,omitempty"`
	IntValue  int64                `json:"intValue,omitempty"`
}

// NewRealMeasurement returns a real-valued measurement record.
func NewRealMeasurement(name string, value float64) MeasurementRecord {
	return MeasurementRecord{
		Name:      name,
		Type:      RealValue,
		RealValue: value,
	}
}

// NewIntegerMeasurement returns an integer-valued measurement record.
func NewIntegerMeasurement(name string, value int64) MeasurementRecord {
	return MeasurementRecord{
		Name:     name,
		Type:     IntegerValue,
		IntValue: value,
	}
}
