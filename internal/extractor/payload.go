package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	PayloadStartMarker = `<script id="__NEXT_DATA__" type="application/json" crossorigin="anonymous">`
	PayloadEndMarker   = `</script>`
)

// LocatePayload returns the text between the first payload start marker and
// the next closing script tag.
func LocatePayload(html string) (string, error) {
	start := strings.Index(html, PayloadStartMarker)
	if start < 0 {
		return "", &PayloadNotFoundError{Reason: StartMarkerMissing, Marker: PayloadStartMarker}
	}
	body := html[start+len(PayloadStartMarker):]

	end := strings.Index(body, PayloadEndMarker)
	if end < 0 {
		return "", &PayloadNotFoundError{Reason: EndMarkerMissing, Marker: PayloadEndMarker}
	}
	return body[:end], nil
}

// ScriptTag is the attribute signature of a JSON script element.
type ScriptTag struct {
	ID          string
	Type        string
	CrossOrigin string
	Length      int
}

// DiagnoseScripts lists the JSON script elements of a page. It is only used
// to explain a locator failure, e.g. when the retailer reorders the
// attributes of the __NEXT_DATA__ tag.
func DiagnoseScripts(html string) []ScriptTag {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var tags []ScriptTag
	doc.Find(`script#__NEXT_DATA__, script[type="application/json"]`).Each(func(_ int, s *goquery.Selection) {
		tags = append(tags, ScriptTag{
			ID:          s.AttrOr("id", ""),
			Type:        s.AttrOr("type", ""),
			CrossOrigin: s.AttrOr("crossorigin", ""),
			Length:      len(s.Text()),
		})
	})
	return tags
}
