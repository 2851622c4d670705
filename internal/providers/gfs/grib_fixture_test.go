package gfs

import (
	"bytes"
	"encoding/binary"
	"math"
)

// buildGRIBMessage constructs a minimal single-field GRIB2 message for
// testing normalization and sub-collection matching without a real
// NOMADS fixture. values are packed as plain integer offsets from
// reference (binary/decimal scale both zero), matching the same
// simple-packing layout the grib package decodes.
func buildGRIBMessage(category, parameter uint8, forecastHour int, nx, ny int, la1, lo1, dx, dy float64, values []int32, reference float32) []byte {
	const micro = 1e6

	signedMag := func(v int32, n int) []byte {
		mag := v
		neg := false
		if mag < 0 {
			mag = -mag
			neg = true
		}
		b := make([]byte, n)
		switch n {
		case 2:
			binary.BigEndian.PutUint16(b, uint16(mag))
		case 4:
			binary.BigEndian.PutUint32(b, uint32(mag))
		}
		if neg {
			b[0] |= 0x80
		}
		return b
	}

	var sec3 bytes.Buffer
	sec3.WriteByte(0)
	binary.Write(&sec3, binary.BigEndian, uint32(nx*ny))
	sec3.WriteByte(0)
	sec3.WriteByte(0)
	binary.Write(&sec3, binary.BigEndian, uint16(0))
	sec3.WriteByte(1)
	sec3.WriteByte(0)
	binary.Write(&sec3, binary.BigEndian, uint32(0))
	sec3.WriteByte(0)
	binary.Write(&sec3, binary.BigEndian, uint32(0))
	sec3.WriteByte(0)
	binary.Write(&sec3, binary.BigEndian, uint32(0))
	binary.Write(&sec3, binary.BigEndian, uint32(nx))
	binary.Write(&sec3, binary.BigEndian, uint32(ny))
	binary.Write(&sec3, binary.BigEndian, uint32(0))
	binary.Write(&sec3, binary.BigEndian, uint32(0))
	sec3.Write(signedMag(int32(math.Round(la1*micro)), 4))
	sec3.Write(signedMag(int32(math.Round(lo1*micro)), 4))
	sec3.WriteByte(0)
	sec3.Write(signedMag(int32(math.Round((la1-float64(ny-1)*dy)*micro)), 4))
	sec3.Write(signedMag(int32(math.Round((lo1+float64(nx-1)*dx)*micro)), 4))
	sec3.Write(signedMag(int32(math.Round(dx*micro)), 4))
	sec3.Write(signedMag(int32(math.Round(dy*micro)), 4))
	sec3.WriteByte(0)
	section3 := makeSection(3, sec3.Bytes())

	var sec4 bytes.Buffer
	binary.Write(&sec4, binary.BigEndian, uint16(0))
	binary.Write(&sec4, binary.BigEndian, uint16(0))
	sec4.WriteByte(category)
	sec4.WriteByte(parameter)
	sec4.WriteByte(0)
	sec4.WriteByte(0)
	sec4.WriteByte(0)
	binary.Write(&sec4, binary.BigEndian, uint16(0))
	sec4.WriteByte(0)
	sec4.WriteByte(1)
	binary.Write(&sec4, binary.BigEndian, uint32(forecastHour))
	sec4.WriteByte(1)
	sec4.WriteByte(0)
	section4 := makeSection(4, sec4.Bytes())

	var sec5 bytes.Buffer
	binary.Write(&sec5, binary.BigEndian, uint32(nx*ny))
	binary.Write(&sec5, binary.BigEndian, uint16(0))
	binary.Write(&sec5, binary.BigEndian, math.Float32bits(reference))
	sec5.Write(signedMag(0, 2))
	sec5.Write(signedMag(0, 2))
	sec5.WriteByte(16)
	sec5.WriteByte(0)
	section5 := makeSection(5, sec5.Bytes())

	var bitstream uint64
	var nbits int
	var packed bytes.Buffer
	for _, v := range values {
		bitstream = (bitstream << 16) | uint64(uint16(v))
		nbits += 16
		for nbits >= 8 {
			nbits -= 8
			packed.WriteByte(byte(bitstream >> nbits))
		}
	}
	if nbits > 0 {
		packed.WriteByte(byte(bitstream << (8 - nbits)))
	}
	section7 := makeSection(7, packed.Bytes())

	body := append(append(append([]byte{}, section3...), section4...), section5...)
	body = append(body, section7...)

	totalLen := 16 + len(body) + 4
	var sec0 bytes.Buffer
	sec0.WriteString("GRIB")
	sec0.Write([]byte{0, 0})
	sec0.WriteByte(0)
	sec0.WriteByte(2)
	binary.Write(&sec0, binary.BigEndian, uint64(totalLen))

	msg := append([]byte{}, sec0.Bytes()...)
	msg = append(msg, body...)
	msg = append(msg, []byte("7777")...)
	return msg
}

func makeSection(number uint8, content []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(5+len(content)))
	buf.WriteByte(number)
	buf.Write(content)
	return buf.Bytes()
}
