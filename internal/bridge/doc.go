// Package bridge carries the one-shot insertQuery message from the CLI to the
// page-side agent and its single reply back.
//
// The transport is a websocket on the loopback interface. The agent runs a
// [Server]; the CLI uses a [Client]. Each request gets exactly one [Reply].
// A missing receiver (nothing listening, or the connection dropped before a
// reply) is reported as [ErrNoReceiver], which is distinct from a receiver
// that answered with Success false.
package bridge
