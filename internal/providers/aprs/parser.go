package aprs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

var courseSpeedRe = regexp.MustCompile(`^(\d{3})/(\d{3})`)
var altitudeRe = regexp.MustCompile(`/A=(\d{6})$`)

// position holds everything one line can contribute before it is
// folded into a model.Point's Fields map.
type position struct {
	lat, lon   float64
	symbolCode byte
	symbolTbl  byte
	comment    string
	courseDeg  *float64
	speedKmh   *float64
	altitudeM  *float64
}

// ParsePosition decodes one line of the APRS-IS stream. ok is false
// for server comment lines (leading '#') or any non-position packet
// type, both of which the collector silently skips; err is non-nil
// only when the line looked like a position report but failed to
// decode or produced an out-of-range coordinate.
func ParsePosition(line string, now time.Time) (callsign string, point model.Point, ok bool, err error) {
	if strings.HasPrefix(line, "#") || line == "" {
		return "", model.Point{}, false, nil
	}

	header, body, found := strings.Cut(line, ":")
	if !found {
		return "", model.Point{}, false, nil
	}
	callsign, _, found = strings.Cut(header, ">")
	if !found || callsign == "" {
		return "", model.Point{}, false, nil
	}

	if len(body) == 0 {
		return "", model.Point{}, false, nil
	}
	packetType := body[0]
	data := body[1:]

	switch packetType {
	case '!', '=':
		// no timestamp prefix
	case '/', '@':
		if len(data) < 7 {
			return "", model.Point{}, false, nil
		}
		data = data[7:]
	default:
		return "", model.Point{}, false, nil
	}

	if len(data) == 0 {
		return "", model.Point{}, false, nil
	}

	var pos position
	if data[0] >= '0' && data[0] <= '9' {
		pos, err = parseUncompressed(data)
	} else {
		pos, err = parseCompressed(data)
	}
	if err != nil {
		return "", model.Point{}, false, fmt.Errorf("aprs: %s: %w", callsign, err)
	}

	if pos.lat < -90 || pos.lat > 90 || pos.lon < -180 || pos.lon > 180 {
		return "", model.Point{}, false, fmt.Errorf("aprs: %s: coordinate out of range: lat=%v lon=%v", callsign, pos.lat, pos.lon)
	}

	fields := map[string]any{
		"symbol":       string(pos.symbolCode),
		"symbol_table": string(pos.symbolTbl),
		"comment":      pos.comment,
	}
	if pos.courseDeg != nil {
		fields["course_deg"] = *pos.courseDeg
	}
	if pos.speedKmh != nil {
		fields["speed_kmh"] = *pos.speedKmh
	}
	if pos.altitudeM != nil {
		fields["altitude_m"] = *pos.altitudeM
	}

	return callsign, model.Point{Lat: pos.lat, Lon: pos.lon, Time: now, Fields: fields}, true, nil
}

// parseUncompressed decodes the DDMM.MMH/DDDMM.MMH position format:
// bytes 0-7 latitude, byte 8 symbol table, bytes 9-17 longitude, byte
// 18 symbol code, the remainder is free-text comment that may itself
// carry a course/speed prefix and an altitude suffix.
func parseUncompressed(data string) (position, error) {
	if len(data) < 19 {
		return position{}, fmt.Errorf("uncompressed position too short: %d bytes", len(data))
	}

	lat, err := parseDegMinHemi(data[0:8], 2)
	if err != nil {
		return position{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := parseDegMinHemi(data[9:18], 3)
	if err != nil {
		return position{}, fmt.Errorf("longitude: %w", err)
	}

	pos := position{
		lat:        lat,
		lon:        lon,
		symbolTbl:  data[8],
		symbolCode: data[18],
		comment:    data[19:],
	}

	if m := courseSpeedRe.FindStringSubmatch(pos.comment); m != nil {
		course, _ := strconv.Atoi(m[1])
		knots, _ := strconv.Atoi(m[2])
		c := float64(course)
		s := float64(knots) * 1.852
		pos.courseDeg = &c
		pos.speedKmh = &s
		pos.comment = pos.comment[len(m[0]):]
	}
	if m := altitudeRe.FindStringSubmatch(pos.comment); m != nil {
		feet, _ := strconv.Atoi(m[1])
		alt := float64(feet) * 0.3048
		pos.altitudeM = &alt
		pos.comment = pos.comment[:len(pos.comment)-len(m[0])]
	}

	return pos, nil
}

// parseDegMinHemi parses a DD[D]MM.MMH coordinate string whose whole
// degrees field is degDigits wide.
func parseDegMinHemi(s string, degDigits int) (float64, error) {
	deg, err := strconv.Atoi(s[:degDigits])
	if err != nil {
		return 0, err
	}
	min, err := strconv.ParseFloat(s[degDigits:len(s)-1], 64)
	if err != nil {
		return 0, err
	}
	value := float64(deg) + min/60
	switch s[len(s)-1] {
	case 'S', 'W':
		value = -value
	}
	return value, nil
}

// parseCompressed decodes the 13-byte base-91 compressed position:
// byte 0 symbol table, bytes 1-4 and 5-8 base-91 lat/lon, byte 9
// symbol code, bytes 10-12 a course/speed or altitude encoding chosen
// by bit 0x18 of the compression-type byte.
func parseCompressed(data string) (position, error) {
	if len(data) < 13 {
		return position{}, fmt.Errorf("compressed position too short: %d bytes", len(data))
	}

	latVal, err := base91Decode(data[1:5])
	if err != nil {
		return position{}, fmt.Errorf("latitude: %w", err)
	}
	lonVal, err := base91Decode(data[5:9])
	if err != nil {
		return position{}, fmt.Errorf("longitude: %w", err)
	}

	pos := position{
		lat:        90 - float64(latVal)/380926,
		lon:        -180 + float64(lonVal)/190463,
		symbolTbl:  data[0],
		symbolCode: data[9],
	}
	if len(data) > 13 {
		pos.comment = data[13:]
	}

	c0, c1, ctype := data[10], data[11], data[12]
	if c0 != ' ' {
		if ctype&0x18 == 0x18 {
			val := (int(c0)-33)*91 + (int(c1) - 33)
			altitudeFt := math.Pow(1.002, float64(val))
			alt := altitudeFt * 0.3048
			pos.altitudeM = &alt
		} else {
			course := float64(int(c0)-33) * 4
			speedKnots := math.Pow(1.08, float64(int(c1)-33)) - 1
			speedKmh := speedKnots * 1.852
			pos.courseDeg = &course
			pos.speedKmh = &speedKmh
		}
	}

	return pos, nil
}

// base91Decode decodes a 4-character base-91 field offset by 33, as
// used by APRS compressed positions.
func base91Decode(s string) (int, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("base91 field must be 4 bytes, got %d", len(s))
	}
	v := 0
	for i := 0; i < 4; i++ {
		c := int(s[i]) - 33
		if c < 0 || c > 90 {
			return 0, fmt.Errorf("byte %d out of base91 range: %q", i, s[i])
		}
		v = v*91 + c
	}
	return v, nil
}
