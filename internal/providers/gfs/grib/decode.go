package grib

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	errTruncated  = errors.New("grib: truncated message")
	errBadMagic   = errors.New("grib: missing GRIB indicator")
	errBadEndMark = errors.New("grib: missing 7777 end marker")
)

// DecodeMessages decodes every GRIB2 message in a concatenated byte
// stream, the shape a NOMADS filter URL selecting several variables
// returns. A message that fails to decode is skipped with its error
// recorded; decoding continues with the next message so one malformed
// field never loses its siblings.
func DecodeMessages(data []byte) ([]Message, []error) {
	var messages []Message
	var errs []error

	for len(data) > 0 {
		idx := bytes.Index(data, []byte("GRIB"))
		if idx < 0 {
			break
		}
		data = data[idx:]
		if len(data) < 16 {
			errs = append(errs, errTruncated)
			break
		}

		discipline := data[6]
		totalLen := binary.BigEndian.Uint64(data[8:16])
		if totalLen < 16 || uint64(len(data)) < totalLen {
			errs = append(errs, fmt.Errorf("%w: declared length %d exceeds remaining %d bytes", errTruncated, totalLen, len(data)))
			break
		}

		msgBytes := data[:totalLen]
		data = data[totalLen:]

		msg, err := parseMessage(discipline, msgBytes)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		messages = append(messages, msg)
	}

	return messages, errs
}

func parseMessage(discipline uint8, msg []byte) (Message, error) {
	if !bytes.HasSuffix(msg, []byte("7777")) {
		return Message{}, errBadEndMark
	}
	body := msg[16 : len(msg)-4]

	m := Message{Discipline: discipline}
	var grid GridDefinition
	var rep dataRepresentation
	var haveValues bool

	for len(body) >= 5 {
		secLen := binary.BigEndian.Uint32(body[0:4])
		if secLen < 5 || uint64(secLen) > uint64(len(body)) {
			return Message{}, fmt.Errorf("%w: section length %d exceeds remaining %d bytes", errTruncated, secLen, len(body))
		}
		secNum := body[4]
		content := body[5:secLen]

		var err error
		switch secNum {
		case 3:
			grid, err = parseSection3(content)
		case 4:
			m.ParameterCategory, m.ParameterNumber, m.ForecastHour, err = parseSection4(content)
		case 5:
			rep, err = parseSection5(content)
		case 7:
			m.Values, err = unpackSimple(content, rep, grid.NX*grid.NY)
			haveValues = true
		}
		if err != nil {
			return Message{}, err
		}

		body = body[secLen:]
	}

	if !haveValues {
		return Message{}, errors.New("grib: message has no data section")
	}
	m.Grid = grid
	return m, nil
}

type dataRepresentation struct {
	reference    float32
	binaryScale  int
	decimalScale int
	bitsPerValue int
}

func parseSection3(c []byte) (GridDefinition, error) {
	if len(c) < 67 {
		return GridDefinition{}, fmt.Errorf("%w: section 3 too short", errTruncated)
	}
	templateNumber := binary.BigEndian.Uint16(c[7:9])
	if templateNumber != 0 {
		return GridDefinition{}, fmt.Errorf("grib: unsupported grid definition template %d", templateNumber)
	}

	nx := int(binary.BigEndian.Uint32(c[25:29]))
	ny := int(binary.BigEndian.Uint32(c[29:33]))
	la1 := signedMagnitude32(c[41:45])
	lo1 := signedMagnitude32(c[45:49])
	la2 := signedMagnitude32(c[50:54])
	lo2 := signedMagnitude32(c[54:58])
	di := signedMagnitude32(c[58:62])
	dj := signedMagnitude32(c[62:66])

	const micro = 1e6
	return GridDefinition{
		NX: nx, NY: ny,
		La1: float64(la1) / micro, Lo1: float64(lo1) / micro,
		La2: float64(la2) / micro, Lo2: float64(lo2) / micro,
		Dx: float64(di) / micro, Dy: float64(dj) / micro,
	}, nil
}

func parseSection4(c []byte) (category, parameter uint8, forecastHour int, err error) {
	if len(c) < 19 {
		return 0, 0, 0, fmt.Errorf("%w: section 4 too short", errTruncated)
	}
	templateNumber := binary.BigEndian.Uint16(c[2:4])
	if templateNumber != 0 {
		return 0, 0, 0, fmt.Errorf("grib: unsupported product definition template %d", templateNumber)
	}
	category = c[4]
	parameter = c[5]
	forecastHour = int(binary.BigEndian.Uint32(c[13:17]))
	return category, parameter, forecastHour, nil
}

func parseSection5(c []byte) (dataRepresentation, error) {
	if len(c) < 16 {
		return dataRepresentation{}, fmt.Errorf("%w: section 5 too short", errTruncated)
	}
	templateNumber := binary.BigEndian.Uint16(c[4:6])
	if templateNumber != 0 {
		return dataRepresentation{}, fmt.Errorf("grib: unsupported data representation template %d", templateNumber)
	}
	ref := math.Float32frombits(binary.BigEndian.Uint32(c[6:10]))
	binScale := int(signedMagnitude16(c[10:12]))
	decScale := int(signedMagnitude16(c[12:14]))
	bits := int(c[14])
	return dataRepresentation{reference: ref, binaryScale: binScale, decimalScale: decScale, bitsPerValue: bits}, nil
}

// unpackSimple applies GRIB2 simple packing (template 5.0):
// value = (R + X·2^E) / 10^D, where X is the raw n-bit packed integer
// read MSB-first from the data section.
func unpackSimple(data []byte, rep dataRepresentation, n int) ([]float64, error) {
	if rep.bitsPerValue == 0 {
		values := make([]float64, n)
		for i := range values {
			values[i] = float64(rep.reference)
		}
		return values, nil
	}

	reader := newBitReader(data)
	values := make([]float64, n)
	scale := math.Pow(10, -float64(rep.decimalScale))
	binFactor := math.Pow(2, float64(rep.binaryScale))
	for i := 0; i < n; i++ {
		x, err := reader.readBits(rep.bitsPerValue)
		if err != nil {
			return nil, fmt.Errorf("grib: unpacking value %d: %w", i, err)
		}
		values[i] = (float64(rep.reference) + float64(x)*binFactor) * scale
	}
	return values, nil
}

// signedMagnitude32 decodes a 4-byte GRIB2 signed-magnitude integer:
// the high-order bit of the first byte is the sign, not a two's
// complement bit.
func signedMagnitude32(b []byte) int32 {
	v := int32(binary.BigEndian.Uint32(b) &^ (1 << 31))
	if b[0]&0x80 != 0 {
		return -v
	}
	return v
}

func signedMagnitude16(b []byte) int16 {
	v := int16(binary.BigEndian.Uint16(b) &^ (1 << 15))
	if b[0]&0x80 != 0 {
		return -v
	}
	return v
}

type bitReader struct {
	data   []byte
	bitPos int
}

func newBitReader(data []byte) *bitReader { return &bitReader{data: data} }

func (r *bitReader) readBits(n int) (uint64, error) {
	var v uint64
	for i := 0; i < n; i++ {
		byteIdx := r.bitPos / 8
		if byteIdx >= len(r.data) {
			return 0, errTruncated
		}
		bitIdx := 7 - (r.bitPos % 8)
		bit := (r.data[byteIdx] >> bitIdx) & 1
		v = (v << 1) | uint64(bit)
		r.bitPos++
	}
	return v, nil
}
