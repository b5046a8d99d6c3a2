package parsing

import (
	"fmt"
	"strings"

	"github.com/araddon/dateparse"
)

// HyphenateYyyyMmDd hyphenates yyyymmdd date values for display.
func HyphenateYyyyMmDd(d string) string {
	d = strings.ReplaceAll(d, " ", "")
	d = strings.ReplaceAll(d, "-", "")
	if len(d) < 8 {
		return d
	}

	return d[0:4] + "-" + d[4:6] + "-" + d[6:8]
}

// NormalizeUploadDate parses the upload date string returned by the
// extractor (yt-dlp emits 'yyyymmdd', the Data API emits RFC 3339) and
// formats it as yyyy-mm-dd.
func NormalizeUploadDate(dateString string) (string, error) {
	if dateString == "" {
		return "", nil
	}

	if len(dateString) == 8 && !strings.ContainsAny(dateString, "-:TZ ") {
		return HyphenateYyyyMmDd(dateString), nil
	}

	t, err := dateparse.ParseAny(dateString)
	if err != nil {
		return "", fmt.Errorf("unable to parse date: %s", dateString)
	}
	return t.Format("2006-01-02"), nil
}
