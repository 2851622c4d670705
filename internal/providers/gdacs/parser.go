package gdacs

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/decode"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

type properties struct {
	EventType string `json:"eventtype"`
	EventID   string `json:"eventid"`
	EpisodeID string `json:"episodeid"`
	IsCurrent string `json:"iscurrent"`
	Severity  string `json:"severity"`
	FromDate  string `json:"fromdate"`
	Name      string `json:"name"`
}

var trackPointPattern = regexp.MustCompile(`^Point_Polygon_Point_(\d+)$`)

// Parse decodes a GDACS feed, keeping only current features, grouping
// by (eventtype, eventid, episodeid, geometry-class) and reconstructing
// tropical-cyclone tracks where present.
func Parse(raw []byte, now time.Time) (model.GDACSCollection, error) {
	var fc decode.FeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return model.GDACSCollection{}, fmt.Errorf("gdacs: decoding feed: %w", err)
	}

	type trackFeature struct {
		index int
		point model.TrackPoint
	}

	// family holds the cyclone-specific sub-features (track points,
	// forecast cone) shared by every geometry-class event under the
	// same (eventtype, eventid, episodeid), regardless of which of
	// those events they end up attached to.
	type family struct {
		trackPoints []trackFeature
		cone        *model.Polygon
	}
	families := make(map[string]*family)

	type eventEntry struct {
		event     model.GDACSEvent
		familyKey string
	}
	events := make(map[string]*eventEntry)

	for _, f := range fc.Features {
		var props properties
		if len(f.Properties) > 0 {
			_ = json.Unmarshal(f.Properties, &props)
		}
		if props.IsCurrent != "" && props.IsCurrent != "true" && props.IsCurrent != "1" {
			continue
		}

		geomKind := ""
		if f.Geometry != nil {
			geomKind = f.Geometry.Type
		}

		famKey := props.EventType + "|" + props.EventID + "|" + props.EpisodeID

		switch {
		case trackPointPattern.MatchString(props.Name):
			lon, lat, ok := f.Geometry.PointLonLat()
			if !ok {
				continue
			}
			fam, ok := families[famKey]
			if !ok {
				fam = &family{}
				families[famKey] = fam
			}
			m := trackPointPattern.FindStringSubmatch(props.Name)
			idx, _ := strconv.Atoi(m[1])
			t, _ := time.Parse(time.RFC3339, props.FromDate)
			fam.trackPoints = append(fam.trackPoints, trackFeature{
				index: idx,
				point: model.TrackPoint{Lat: lat, Lon: lon, Time: t, IsForecast: t.After(now)},
			})

		case props.Name == "Poly_Cones":
			fam, ok := families[famKey]
			if !ok {
				fam = &family{}
				families[famKey] = fam
			}
			fam.cone = polygonFromGeometry(f.Geometry)

		default:
			// The geometry class joins the dedup key here: a feed can
			// carry both a Point (current position) and a Polygon
			// (affected area) feature for the same
			// (eventtype, eventid, episodeid), and those must survive
			// as two distinct events rather than one overwriting the
			// other.
			gkey := famKey + "|" + geomKind
			e, ok := events[gkey]
			if !ok {
				e = &eventEntry{familyKey: famKey}
				events[gkey] = e
			}
			lon, lat, _ := zeroIfNoPoint(f.Geometry)
			t, _ := time.Parse(time.RFC3339, props.FromDate)
			e.event = model.GDACSEvent{
				EventType:    props.EventType,
				EventID:      props.EventID,
				EpisodeID:    props.EpisodeID,
				GeometryKind: geomKind,
				Lat:          lat,
				Lon:          lon,
				Severity:     props.Severity,
				Time:         t,
			}
		}
	}

	out := make([]model.GDACSEvent, 0, len(events))
	for _, e := range events {
		fam := families[e.familyKey]
		if fam != nil && (len(fam.trackPoints) > 0 || fam.cone != nil) {
			sort.Slice(fam.trackPoints, func(i, j int) bool { return fam.trackPoints[i].index < fam.trackPoints[j].index })
			points := make([]model.TrackPoint, len(fam.trackPoints))
			for i, tf := range fam.trackPoints {
				points[i] = tf.point
			}
			e.event.CycloneData = &model.CycloneData{TrackPoints: points, ForecastCone: fam.cone}
		}
		out = append(out, e.event)
	}

	return model.GDACSCollection{Events: out}, nil
}

func polygonFromGeometry(g *decode.Geometry) *model.Polygon {
	if g == nil || g.Type != "Polygon" {
		return nil
	}
	var rings [][][2]float64
	if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
		return nil
	}
	return &model.Polygon{Coordinates: rings}
}

func zeroIfNoPoint(g *decode.Geometry) (lon, lat float64, ok bool) {
	return g.PointLonLat()
}
