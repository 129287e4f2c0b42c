// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package messages

import (
	"encoding/json"

	"github.com/onosproject/onos-lib-go/pkg/errors"
)

// DecodeIndication decodes an indication payload received on a subscription
// stream. The declared kind must carry a matching body.
func DecodeIndication(payload []byte) (*Indication, error) {
	ind := &Indication{}
	if err := json.Unmarshal(payload, ind); err != nil {
		return nil, errors.NewInvalid("cannot decode indication payload: %v", err)
	}
	if err := ind.validate(); err != nil {
		return nil, err
	}
	return ind, nil
}

// EncodeIndication encodes an indication for transport; used by simulators
// and tests, the RAN side produces the same shape.
func EncodeIndication(ind *Indication) ([]byte, error) {
	if err := ind.validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(ind)
	if err != nil {
		return nil, errors.NewInvalid("cannot encode indication: %v", err)
	}
	return payload, nil
}

func (ind *Indication) validate() error {
	var ok bool
	switch ind.Kind {
	case StreamMAC:
		ok = ind.MAC != nil
	case StreamRLC:
		ok = ind.RLC != nil
	case StreamPDCP:
		ok = ind.PDCP != nil
	case StreamGTP:
		ok = ind.GTP != nil
	case StreamKPM:
		ok = ind.KPM != nil
	default:
		return errors.NewInvalid("unknown stream kind %q", ind.Kind)
	}
	if !ok {
		return errors.NewInvalid("indication of kind %q has no %q body", ind.Kind, ind.Kind)
	}
	return nil
}
