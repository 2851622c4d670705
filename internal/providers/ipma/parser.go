package ipma

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

type rawWarning struct {
	AreaCode  string `json:"idAreaAviso"`
	Type      string `json:"awarenessTypeName"`
	Level     string `json:"awarenessLevelID"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// severityRank orders IPMA awareness levels; higher sorts first.
var severityRank = map[string]int{"red": 3, "orange": 2, "yellow": 1, "green": 0}

// Parse decodes the IPMA warnings feed, drops severity-green and
// expired entries, groups by area code, and sorts each area's
// warnings severity-descending then by start time.
func Parse(raw []byte, now time.Time) (model.IPMACollection, error) {
	var warnings []rawWarning
	if err := json.Unmarshal(raw, &warnings); err != nil {
		return model.IPMACollection{}, fmt.Errorf("ipma: decoding warnings: %w", err)
	}

	byArea := make(map[string][]model.IPMAWarningEntry)
	for _, w := range warnings {
		level := normalizeSeverity(w.Level)
		if level == "green" {
			continue
		}
		end, err := time.Parse(time.RFC3339, w.EndTime)
		if err == nil && end.Before(now) {
			continue
		}
		start, _ := time.Parse(time.RFC3339, w.StartTime)

		byArea[w.AreaCode] = append(byArea[w.AreaCode], model.IPMAWarningEntry{
			WarningType: w.Type,
			Severity:    level,
			Start:       start,
			End:         end,
		})
	}

	areas := make([]model.IPMAArea, 0, len(byArea))
	for code, entries := range byArea {
		sort.Slice(entries, func(i, j int) bool {
			if severityRank[entries[i].Severity] != severityRank[entries[j].Severity] {
				return severityRank[entries[i].Severity] > severityRank[entries[j].Severity]
			}
			return entries[i].Start.Before(entries[j].Start)
		})
		areas = append(areas, model.IPMAArea{
			AreaCode:        code,
			OverallSeverity: entries[0].Severity,
			Warnings:        entries,
		})
	}

	return model.IPMACollection{Areas: areas}, nil
}

func normalizeSeverity(raw string) string {
	switch raw {
	case "3":
		return "red"
	case "2":
		return "orange"
	case "1":
		return "yellow"
	default:
		return "green"
	}
}
