package mq

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/robotalks/dyno.go/pkg/throttle"
)

// Channel payloads are deterministic CBOR so identical samples encode
// to identical bytes for any reader.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}.EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyQuiet,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// EncodeSample encodes one telemetry sample for the data channel.
func EncodeSample(s throttle.Sample) ([]byte, error) {
	return encMode.Marshal(s)
}

// DecodeSample decodes a data channel payload.
func DecodeSample(data []byte) (s throttle.Sample, err error) {
	err = decMode.Unmarshal(data, &s)
	return
}

// EncodeEvent encodes one protocol event for the event channel.
func EncodeEvent(ev throttle.Event) ([]byte, error) {
	return encMode.Marshal(ev)
}

// DecodeEvent decodes an event channel payload.
func DecodeEvent(data []byte) (ev throttle.Event, err error) {
	err = decMode.Unmarshal(data, &ev)
	return
}
