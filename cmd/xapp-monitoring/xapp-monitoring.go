// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/onosproject/onos-lib-go/pkg/certs"
	"github.com/onosproject/onos-lib-go/pkg/logging"

	"github.com/AMINE-ADJ/xapp-monitoring/pkg/manager"
)

var log = logging.GetLogger("main")

func main() {
	caPath := flag.String("caPath", "", "path to CA certificate")
	keyPath := flag.String("keyPath", "", "path to client private key")
	certPath := flag.String("certPath", "", "path to client certificate")
	configPath := flag.String("configPath", "/etc/onos/config/config.json", "path to config.json file")
	e2tEndpoint := flag.String("e2tEndpoint", "onos-e2t:5150", "E2T service endpoint")
	smName := flag.String("smName", "oran-e2sm-kpm", "service model name in RAN function description")
	smVersion := flag.String("smVersion", "v2", "service model version in RAN function description")
	outputPath := flag.String("outputPath", "/tmp/kpm_metrics_dataset.csv", "path of the dataset file")
	outputFormat := flag.String("outputFormat", "csv", "dataset format (csv, tsv or parquet)")
	sampleTarget := flag.Uint64("sampleTarget", 1000, "number of samples to collect before stopping")
	flushInterval := flag.Uint64("flushInterval", 100, "number of samples between sink flushes")

	flag.Parse()

	_, err := certs.HandleCertPaths(*caPath, *keyPath, *certPath, true)
	if err != nil {
		log.Fatal(err)
	}

	log.Infof("Starting xapp-monitoring")
	mgr := manager.NewManager(manager.Config{
		CAPath:        *caPath,
		KeyPath:       *keyPath,
		CertPath:      *certPath,
		ConfigPath:    *configPath,
		E2tEndpoint:   *e2tEndpoint,
		SMName:        *smName,
		SMVersion:     *smVersion,
		OutputPath:    *outputPath,
		OutputFormat:  *outputFormat,
		SampleTarget:  *sampleTarget,
		FlushInterval: *flushInterval,
	})

	mgr.Run()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-mgr.Done():
		log.Infof("Sample target reached after %d samples", mgr.Samples())
	case sig := <-sigCh:
		log.Infof("Received signal %v, stopping after %d samples", sig, mgr.Samples())
	}

	mgr.Close()
}
