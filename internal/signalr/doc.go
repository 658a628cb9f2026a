// Package signalr implements the minimal SignalR 1.5 client protocol the
// Bittrex push service speaks: an HTTP negotiation handshake followed by a
// WebSocket carrying JSON invocation frames and pushed hub callbacks.
//
// A Channel owns one WebSocket connection. Failures are terminal: there is
// no reconnect, retry or read timeout. Callers decide whether to open a
// new channel after a failure.
package signalr
