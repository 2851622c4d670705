// Package fogos implements the Fogos.pt Portuguese civil-protection
// incident collector. It fetches the "active incidents" and "last 24h
// search" endpoints in parallel, merges the results by id (active
// wins on conflict), and drops anything older than 24 hours.
package fogos
