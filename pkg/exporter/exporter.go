// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package exporter implements the append-only dataset sink. A writer emits a
// fixed, versioned column header before any data row and writes rows in
// strict arrival order; rows are never rewritten or deleted.
package exporter

import (
	"encoding/csv"
	"os"
	"sync"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/onosproject/onos-lib-go/pkg/logging"
	"github.com/parquet-go/parquet-go"
)

var log = logging.GetLogger("exporter")

// Format identifies a dataset file format.
type Format string

const (
	// FormatCSV comma-separated text, the reference format
	FormatCSV Format = "csv"
	// FormatTSV tab-separated text
	FormatTSV Format = "tsv"
	// FormatParquet columnar binary
	FormatParquet Format = "parquet"
)

// Writer is the dataset sink. Implementations are not safe for concurrent
// use; the caller serializes writes.
type Writer interface {
	// Write appends one fully-formatted row
	Write(row *Row) error

	// Flush pushes buffered rows to durable storage
	Flush() error

	// Close flushes and closes the sink; safe to call more than once
	Close() error
}

// NewWriter opens the dataset sink at path for the given format, writing the
// header before returning.
func NewWriter(path string, format Format) (Writer, error) {
	switch format {
	case FormatCSV:
		return newTextWriter(path, ',')
	case FormatTSV:
		return newTextWriter(path, '\t')
	case FormatParquet:
		return newParquetWriter(path)
	}
	return nil, errors.NewInvalid("unknown dataset format %q", format)
}

type textWriter struct {
	file      *os.File
	writer    *csv.Writer
	closeOnce sync.Once
	closeErr  error
}

func newTextWriter(path string, comma rune) (*textWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.NewInternal("cannot open dataset sink %s: %v", path, err)
	}
	w := csv.NewWriter(file)
	w.Comma = comma
	if err := w.Write(Schema()); err != nil {
		_ = file.Close()
		return nil, errors.NewInternal("cannot write dataset header: %v", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = file.Close()
		return nil, errors.NewInternal("cannot write dataset header: %v", err)
	}
	log.Infof("Opened dataset sink %s (schema v%d)", path, SchemaVersion)
	return &textWriter{file: file, writer: w}, nil
}

func (t *textWriter) Write(row *Row) error {
	if err := t.writer.Write(row.Strings()); err != nil {
		return errors.NewInternal("dataset row write failed: %v", err)
	}
	return nil
}

func (t *textWriter) Flush() error {
	t.writer.Flush()
	if err := t.writer.Error(); err != nil {
		return errors.NewInternal("dataset flush failed: %v", err)
	}
	if err := t.file.Sync(); err != nil {
		return errors.NewInternal("dataset sync failed: %v", err)
	}
	return nil
}

func (t *textWriter) Close() error {
	t.closeOnce.Do(func() {
		t.writer.Flush()
		if err := t.writer.Error(); err != nil {
			t.closeErr = errors.NewInternal("dataset flush failed: %v", err)
		}
		if err := t.file.Close(); err != nil && t.closeErr == nil {
			t.closeErr = errors.NewInternal("dataset close failed: %v", err)
		}
	})
	return t.closeErr
}

type parquetWriter struct {
	file      *os.File
	writer    *parquet.GenericWriter[Row]
	closeOnce sync.Once
	closeErr  error
}

func newParquetWriter(path string) (*parquetWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.NewInternal("cannot open dataset sink %s: %v", path, err)
	}
	// schema is carried in the file metadata; rows follow the Row struct
	writer := parquet.NewGenericWriter[Row](file)
	log.Infof("Opened dataset sink %s (schema v%d)", path, SchemaVersion)
	return &parquetWriter{file: file, writer: writer}, nil
}

func (p *parquetWriter) Write(row *Row) error {
	if _, err := p.writer.Write([]Row{*row}); err != nil {
		return errors.NewInternal("dataset row write failed: %v", err)
	}
	return nil
}

func (p *parquetWriter) Flush() error {
	if err := p.writer.Flush(); err != nil {
		return errors.NewInternal("dataset flush failed: %v", err)
	}
	return nil
}

func (p *parquetWriter) Close() error {
	p.closeOnce.Do(func() {
		if err := p.writer.Close(); err != nil {
			p.closeErr = errors.NewInternal("dataset close failed: %v", err)
		}
		if err := p.file.Close(); err != nil && p.closeErr == nil {
			p.closeErr = errors.NewInternal("dataset close failed: %v", err)
		}
	})
	return p.closeErr
}
