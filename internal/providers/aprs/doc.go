// Package aprs implements the APRS-IS TCP streaming collector: log in
// to a rotating server pool with a geographic server-side filter,
// parse the newline-delimited packet stream (uncompressed and
// base-91 compressed position reports), and maintain an in-memory
// table of stations keyed by callsign. A persist timer flushes the
// most-recently-heard stations to the store; an eviction timer drops
// stations that have gone silent.
//
// The wire format has no ecosystem Go client in the example pack, so
// the line protocol and position decoders here are hand-rolled pure
// functions against net.Dial and bufio.Scanner rather than a
// third-party APRS library.
package aprs
