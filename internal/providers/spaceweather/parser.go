package spaceweather

import (
	"encoding/json"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

type kpEntry struct {
	KpIndex float64 `json:"kp_index"`
}

type f107Entry struct {
	Flux float64 `json:"flux"`
}

type xrayEntry struct {
	Class string  `json:"energy"`
	Flux  float64 `json:"flux"`
}

// Assemble combines whichever of the three already-fetched payloads
// succeeded into one SpaceWeather record. A nil payload means that
// fetch failed; its field is simply left absent.
func Assemble(kpRaw, f107Raw, xrayRaw []byte) model.SpaceWeather {
	sw := model.SpaceWeather{Time: time.Now()}

	if kpRaw != nil {
		var entries []kpEntry
		if json.Unmarshal(kpRaw, &entries) == nil && len(entries) > 0 {
			v := entries[len(entries)-1].KpIndex
			sw.KpIndex = &v
		}
	}

	if f107Raw != nil {
		var entries []f107Entry
		if json.Unmarshal(f107Raw, &entries) == nil && len(entries) > 0 {
			v := entries[len(entries)-1].Flux
			sw.F107Flux = &v
		}
	}

	if xrayRaw != nil {
		var entries []xrayEntry
		if json.Unmarshal(xrayRaw, &entries) == nil && len(entries) > 0 {
			last := entries[len(entries)-1]
			sw.XRayClass = &last.Class
			sw.XRayFlux = &last.Flux
		}
	}

	return sw
}
