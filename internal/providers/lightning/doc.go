// Package lightning implements the long-lived WebSocket strike feed:
// connect, receive JSON-framed strike messages, hold them in a
// time-ordered working set, and flush the current set to the store on
// a fixed timer independent of the socket's state. A second timer
// evicts strikes older than the feed's age horizon. Reconnects are
// unconditional and happen on a fixed delay; persistence keeps running
// against whatever is in memory while disconnected.
package lightning
