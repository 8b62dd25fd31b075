// Package mq connects a controller to an MQTT broker: a thin pub/sub
// queue over the paho client, and a Bridge mirroring telemetry out
// and feeding remote command lines into the control loop.
//
// Topics live under <prefix><type>/<id>/: retained meta in JSON, cmd
// for inbound command lines, data and event carrying CBOR payloads.
package mq
