// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRow() *Row {
	return &Row{
		Timestamp: 1724572800000000,
		RNTI:      0x4601,
		CQI:       12,
		PuschSNR:  18.5,
		PucchSNR:  16.5,
		DlBLER:    0.0123,
		UlBLER:    0.2,
		DlThpKbps: 1500.756,
		PrbTotDl:  42,
	}
}

func TestRowMatchesSchema(t *testing.T) {
	assert.Len(t, (&Row{}).Strings(), len(Schema()))
	assert.Len(t, testRow().Strings(), len(Schema()))
	assert.Equal(t, "timestamp", Schema()[0])
}

func TestRowFormatting(t *testing.T) {
	values := testRow().Strings()
	schema := Schema()
	byName := make(map[string]string, len(values))
	for i, name := range schema {
		byName[name] = values[i]
	}

	assert.Equal(t, "17921", byName["rnti"])
	assert.Equal(t, "12", byName["cqi"])
	assert.Equal(t, "18.50", byName["pusch_snr"])
	assert.Equal(t, "0.0123", byName["dl_bler"])
	assert.Equal(t, "0.2000", byName["ul_bler"])
	assert.Equal(t, "1500.76", byName["dl_thp_kbps"])
	assert.Equal(t, "42", byName["prb_tot_dl"])
}

func TestTextWriterCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	w, err := NewWriter(path, FormatCSV)
	require.NoError(t, err)

	require.NoError(t, w.Write(testRow()))
	require.NoError(t, w.Write(testRow()))
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two data rows")
	assert.Equal(t, Schema(), records[0])
	for _, record := range records[1:] {
		assert.Len(t, record, len(Schema()))
	}
}

func TestTextWriterTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.tsv")
	w, err := NewWriter(path, FormatTSV)
	require.NoError(t, err)
	require.NoError(t, w.Write(testRow()))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Len(t, strings.Split(lines[0], "\t"), len(Schema()))
	assert.Len(t, strings.Split(lines[1], "\t"), len(Schema()))
}

func TestParquetWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.parquet")
	w, err := NewWriter(path, FormatParquet)
	require.NoError(t, err)
	require.NoError(t, w.Write(testRow()))
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestColumnCountStableAcrossEmissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	w, err := NewWriter(path, FormatCSV)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		row := testRow()
		row.Timestamp = int64(i)
		row.PuschSNR = float64(i) / 3
		require.NoError(t, w.Write(row))
	}
	require.NoError(t, w.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader := csv.NewReader(file)
	// FieldsPerRecord defaults to the header width; any ragged row fails here
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1001)
	for _, record := range records {
		assert.Len(t, record, len(Schema()))
	}
}

func TestUnknownFormat(t *testing.T) {
	_, err := NewWriter(filepath.Join(t.TempDir(), "dataset.xml"), Format("xml"))
	assert.True(t, errors.IsInvalid(err))
}

func TestCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	w, err := NewWriter(path, FormatCSV)
	require.NoError(t, err)
	require.NoError(t, w.Write(testRow()))
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestHeaderWrittenAtOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	w, err := NewWriter(path, FormatCSV)
	require.NoError(t, err)
	defer w.Close()

	// no rows written yet; the header must already be durable
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(Schema(), ",")+"\n", string(data))
}
