// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package exporter

import (
	"fmt"
)

// SchemaVersion is the dataset column schema version. The header row is fixed
// for a given version; consumers key their parsers on it.
const SchemaVersion = 2

// Row is one fused dataset record: the latest known value of every stream
// group at emission time. Field order matches the column schema.
type Row struct {
	Timestamp int64 `parquet:"timestamp"`

	RNTI     uint32  `parquet:"rnti"`
	CQI      uint8   `parquet:"cqi"`
	PuschSNR float64 `parquet:"pusch_snr"`
	PucchSNR float64 `parquet:"pucch_snr"`
	DlBLER   float64 `parquet:"dl_bler"`
	UlBLER   float64 `parquet:"ul_bler"`
	DlMCS1   uint8   `parquet:"dl_mcs1"`
	DlMCS2   uint8   `parquet:"dl_mcs2"`
	UlMCS1   uint8   `parquet:"ul_mcs1"`
	UlMCS2   uint8   `parquet:"ul_mcs2"`
	DlTBS    uint64  `parquet:"dl_tbs"`
	UlTBS    uint64  `parquet:"ul_tbs"`
	DlAggrTBS uint64 `parquet:"dl_aggr_tbs"`
	UlAggrTBS uint64 `parquet:"ul_aggr_tbs"`
	DlPRB     uint32 `parquet:"dl_prb"`
	UlPRB     uint32 `parquet:"ul_prb"`
	DlSchedRB uint32 `parquet:"dl_sched_rb"`
	UlSchedRB uint32 `parquet:"ul_sched_rb"`
	BSR       uint32 `parquet:"bsr"`
	PHR       int8   `parquet:"phr"`
	Frame     uint16 `parquet:"frame"`
	Slot      uint16 `parquet:"slot"`

	RlcTxPkts  uint32 `parquet:"rlc_tx_pkts"`
	RlcTxBytes uint32 `parquet:"rlc_tx_bytes"`
	RlcRxPkts  uint32 `parquet:"rlc_rx_pkts"`
	RlcRxBytes uint32 `parquet:"rlc_rx_bytes"`
	RlcTxBuf   uint32 `parquet:"rlc_txbuf"`
	RlcRxBuf   uint32 `parquet:"rlc_rxbuf"`
	RlcRetx    uint32 `parquet:"rlc_retx"`

	PdcpTxPkts  uint32 `parquet:"pdcp_tx_pkts"`
	PdcpTxBytes uint32 `parquet:"pdcp_tx_bytes"`
	PdcpRxPkts  uint32 `parquet:"pdcp_rx_pkts"`
	PdcpRxBytes uint32 `parquet:"pdcp_rx_bytes"`

	DlThpKbps     float64 `parquet:"dl_thp_kbps"`
	UlThpKbps     float64 `parquet:"ul_thp_kbps"`
	RlcSduDelayUs float64 `parquet:"rlc_sdu_delay_us"`
	PdcpVolDlKb   int32   `parquet:"pdcp_vol_dl_kb"`
	PdcpVolUlKb   int32   `parquet:"pdcp_vol_ul_kb"`
	PrbTotDl      int32   `parquet:"prb_tot_dl"`
	PrbTotUl      int32   `parquet:"prb_tot_ul"`
}

// Schema returns the dataset column names in order.
func Schema() []string {
	return []string{
		"timestamp", "rnti", "cqi", "pusch_snr", "pucch_snr",
		"dl_bler", "ul_bler", "dl_mcs1", "dl_mcs2", "ul_mcs1", "ul_mcs2",
		"dl_tbs", "ul_tbs", "dl_aggr_tbs", "ul_aggr_tbs",
		"dl_prb", "ul_prb", "dl_sched_rb", "ul_sched_rb",
		"bsr", "phr", "frame", "slot",
		"rlc_tx_pkts", "rlc_tx_bytes", "rlc_rx_pkts", "rlc_rx_bytes",
		"rlc_txbuf", "rlc_rxbuf", "rlc_retx",
		"pdcp_tx_pkts", "pdcp_tx_bytes", "pdcp_rx_pkts", "pdcp_rx_bytes",
		"dl_thp_kbps", "ul_thp_kbps", "rlc_sdu_delay_us",
		"pdcp_vol_dl_kb", "pdcp_vol_ul_kb", "prb_tot_dl", "prb_tot_ul",
	}
}

// Strings renders the row with the fixed per-column formatting: SNR,
// throughput and delay to two fractional digits, BLER to four, integers
// unsigned unless noted. Column order and count match Schema.
func (r *Row) Strings() []string {
	return []string{
		fmt.Sprintf("%d", r.Timestamp),
		fmt.Sprintf("%d", r.RNTI),
		fmt.Sprintf("%d", r.CQI),
		fmt.Sprintf("%.2f", r.PuschSNR),
		fmt.Sprintf("%.2f", r.PucchSNR),
		fmt.Sprintf("%.4f", r.DlBLER),
		fmt.Sprintf("%.4f", r.UlBLER),
		fmt.Sprintf("%d", r.DlMCS1),
		fmt.Sprintf("%d", r.DlMCS2),
		fmt.Sprintf("%d", r.UlMCS1),
		fmt.Sprintf("%d", r.UlMCS2),
		fmt.Sprintf("%d", r.DlTBS),
		fmt.Sprintf("%d", r.UlTBS),
		fmt.Sprintf("%d", r.DlAggrTBS),
		fmt.Sprintf("%d", r.UlAggrTBS),
		fmt.Sprintf("%d", r.DlPRB),
		fmt.Sprintf("%d", r.UlPRB),
		fmt.Sprintf("%d", r.DlSchedRB),
		fmt.Sprintf("%d", r.UlSchedRB),
		fmt.Sprintf("%d", r.BSR),
		fmt.Sprintf("%d", r.PHR),
		fmt.Sprintf("%d", r.Frame),
		fmt.Sprintf("%d", r.Slot),
		fmt.Sprintf("%d", r.RlcTxPkts),
		fmt.Sprintf("%d", r.RlcTxBytes),
		fmt.Sprintf("%d", r.RlcRxPkts),
		fmt.Sprintf("%d", r.RlcRxBytes),
		fmt.Sprintf("%d", r.RlcTxBuf),
		fmt.Sprintf("%d", r.RlcRxBuf),
		fmt.Sprintf("%d", r.RlcRetx),
		fmt.Sprintf("%d", r.PdcpTxPkts),
		fmt.Sprintf("%d", r.PdcpTxBytes),
		fmt.Sprintf("%d", r.PdcpRxPkts),
		fmt.Sprintf("%d", r.PdcpRxBytes),
		fmt.Sprintf("%.2f", r.DlThpKbps),
		fmt.Sprintf("%.2f", r.UlThpKbps),
		fmt.Sprintf("%.2f", r.RlcSduDelayUs),
		fmt.Sprintf("%d", r.PdcpVolDlKb),
		fmt.Sprintf("%d", r.PdcpVolUlKb),
		fmt.Sprintf("%d", r.PrbTotDl),
		fmt.Sprintf("%d", r.PrbTotUl),
	}
}
