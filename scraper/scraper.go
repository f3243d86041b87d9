// Package scraper extracts train delays from the operator's HTML status
// page. The page keys delays by the human-visible train number rather than
// the dataset trip id, which makes it a weaker join than the realtime feed;
// the overlay resolver only consults it as a fallback.
package scraper

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// One status row reads like "Train 169 is running 13 minutes late" or a
// table cell pair such as "169 | 13 min". Both collapse to number + minutes
// once a row's text is joined.
var rowPattern = regexp.MustCompile(`(?i)\b(?:train\s*#?\s*)?(\d{3})\b\D{0,40}?(\d{1,3})\s*min`)

// ParseStatusPage parses a scraped status page into a map from train
// display number to delay minutes. Rows that do not mention a delay are
// ignored; an unparseable document returns an error, an empty one an empty
// map.
func ParseStatusPage(b []byte) (map[string]int, error) {
	doc, err := html.Parse(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse status page: %w", err)
	}

	delays := map[string]int{}
	for _, row := range rowTexts(doc) {
		for _, m := range rowPattern.FindAllStringSubmatch(row, -1) {
			minutes, err := strconv.Atoi(m[2])
			if err != nil || minutes == 0 {
				continue
			}
			delays[m[1]] = minutes
		}
	}
	log.Debug().Int("trains", len(delays)).Msg("Parsed scraped delay page")
	return delays, nil
}

// rowTexts returns the joined text of each table row, falling back to the
// whole document text when the page has no table markup.
func rowTexts(doc *html.Node) []string {
	var rows []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			rows = append(rows, textContent(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if len(rows) == 0 {
		rows = append(rows, textContent(doc))
	}
	return rows
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
