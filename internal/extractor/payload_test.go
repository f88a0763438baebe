package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocatePayload(t *testing.T) {
	cases := []string{
		`{}`,
		``,
		`{"query":{"a":"<b>bold</b>"}}`,
		"  {\n\"multi\": \"line\"}\n",
	}

	for _, x := range cases {
		got, err := LocatePayload(PayloadStartMarker + x + PayloadEndMarker)
		require.NoError(t, err)
		require.Equal(t, x, got)
	}
}

func TestLocatePayloadFirstOccurrence(t *testing.T) {
	html := `<html><head><script src="/a.js"></script></head><body>` +
		PayloadStartMarker + `{"first":true}` + PayloadEndMarker +
		PayloadStartMarker + `{"second":true}` + PayloadEndMarker +
		`</body></html>`

	got, err := LocatePayload(html)
	require.NoError(t, err)
	require.Equal(t, `{"first":true}`, got)
}

func TestLocatePayloadMissingMarkers(t *testing.T) {
	cases := []struct {
		name   string
		html   string
		reason MarkerReason
	}{
		{
			name:   "no start marker",
			html:   `<html><script>{"x":1}</script></html>`,
			reason: StartMarkerMissing,
		},
		{
			name:   "start marker is case sensitive",
			html:   `<script id="__next_data__" type="application/json" crossorigin="anonymous">{}</script>`,
			reason: StartMarkerMissing,
		},
		{
			name:   "no end marker after start",
			html:   `</script>` + PayloadStartMarker + `{"x":1}`,
			reason: EndMarkerMissing,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			_, err := LocatePayload(test.html)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrPayloadNotFound))

			var notFound *PayloadNotFoundError
			require.True(t, errors.As(err, &notFound))
			require.Equal(t, test.reason, notFound.Reason)
		})
	}
}

func TestDiagnoseScripts(t *testing.T) {
	html := `<html><body>
<script type="application/json" id="__NEXT_DATA__">{"a":1}</script>
<script>var x = 1;</script>
</body></html>`

	_, err := LocatePayload(html)
	require.Error(t, err)

	tags := DiagnoseScripts(html)
	require.Len(t, tags, 1)
	require.Equal(t, "__NEXT_DATA__", tags[0].ID)
	require.Equal(t, "application/json", tags[0].Type)
	require.Equal(t, "", tags[0].CrossOrigin)
	require.Equal(t, len(`{"a":1}`), tags[0].Length)
}
