// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package uenib

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/collector"
)

func TestNewClientConnectFailure(t *testing.T) {
	c := collector.NewCollector()
	dir := t.TempDir()

	client, err := NewClient(context.Background(),
		filepath.Join(dir, "missing.crt"), filepath.Join(dir, "missing.key"), c)
	assert.Error(t, err)
	assert.Nil(t, client)
}
