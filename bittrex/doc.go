// Package bittrex is a client for the Bittrex exchange: a REST query
// client (API) and a streaming client (Socket) for the SignalR push
// service carrying order-book deltas, market summary deltas and account
// balance/order deltas.
//
// Known limitation: the streaming side has no reconnect, retry or
// read-timeout policy. Every socket failure (a protocol error frame, a
// remote close, a transport error, a payload that fails decoding) is
// terminal for that feed and surfaces to the caller, who decides whether
// to open a new one.
package bittrex
