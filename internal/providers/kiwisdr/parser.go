package kiwisdr

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const maxNameLen = 200

var commentKV = regexp.MustCompile(`^\s*([A-Za-z0-9_]+)\s*=\s*(.*?)\s*$`)

// Parse extracts every KiwiSDR station entry from the directory page's
// HTML, reading each station's attributes out of the HTML comments
// embedded inside its div.cl-entry.
func Parse(raw []byte) (model.KiwiCollection, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return model.KiwiCollection{}, fmt.Errorf("kiwisdr: parsing HTML: %w", err)
	}

	var stations []model.KiwiStation
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "cl-entry") {
			stations = append(stations, parseEntry(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return model.KiwiCollection{Stations: stations}, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, tok := range strings.Fields(attr.Val) {
			if tok == class {
				return true
			}
		}
	}
	return false
}

func parseEntry(n *html.Node) model.KiwiStation {
	kv := make(map[string]string)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.CommentNode {
			if m := commentKV.FindStringSubmatch(n.Data); m != nil {
				kv[m[1]] = m[2]
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	lat, lon := parseGPS(kv["gps"])
	users, _ := strconv.Atoi(kv["users"])
	maxUsers, _ := strconv.Atoi(kv["users_max"])

	name := kv["name"]
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}

	return model.KiwiStation{
		Name:     name,
		Lat:      lat,
		Lon:      lon,
		Users:    users,
		MaxUsers: maxUsers,
		Antenna:  kv["antenna"],
		Location: kv["loc"],
		SNR:      firstCSVFloat(kv["snr"]),
		Offline:  kv["offline"] == "1" || kv["offline"] == "true",
	}
}

// parseGPS parses a "lat,lon" pair embedded in the gps comment.
func parseGPS(s string) (lat, lon float64) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0
	}
	lat, _ = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, _ = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	return lat, lon
}

// firstCSVFloat parses the first value of a comma-separated pair, the
// SNR comment's shape (e.g. "12,12-20").
func firstCSVFloat(s string) float64 {
	parts := strings.SplitN(s, ",", 2)
	v, _ := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	return v
}
