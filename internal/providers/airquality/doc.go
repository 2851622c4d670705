// Package airquality polls the WAQI (World Air Quality Index) bundled
// world station feed and publishes a point collection of station AQI
// readings. Requires WAQI_API_KEY; the collector is skipped entirely
// via credential-gated registration when the key is absent. Stations
// reporting a non-numeric AQI ("-", the feed's placeholder for no
// current reading) are dropped.
package airquality
