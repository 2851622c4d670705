// Package kiwisdr implements the KiwiSDR receiver directory collector.
// The upstream page has no JSON API: each station lives in a
// <div class="cl-entry"> with its attributes encoded as HTML comments
// (<!-- key=value -->) inside the div. Station names are truncated to
// 200 characters; SNR is the first of a comma-separated pair.
package kiwisdr
