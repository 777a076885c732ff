package speech

import (
	"fmt"
	"math"
	"strings"
)

// Caption timing assumes an average speaking rate of 2.5 words per second
// (150 words per minute).
const wordsPerSecond = 2.5

const captionChunkWords = 10

// BuildCaptionTrack produces a WEBVTT caption track for the given text.
// Words are grouped into chunks of ten; each chunk gets a contiguous time
// interval sized by the assumed speaking rate, starting where the previous
// chunk ended. The output is fully determined by the input text.
func BuildCaptionTrack(text string) string {
	words := strings.Fields(text)

	var b strings.Builder
	b.WriteString("WEBVTT\n\n")

	current := 0.0
	for i := 0; i < len(words); i += captionChunkWords {
		end := i + captionChunkWords
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[i:end], " ")

		start := current
		finish := current + float64(end-i)/wordsPerSecond

		b.WriteString(formatTimestamp(start))
		b.WriteString(" --> ")
		b.WriteString(formatTimestamp(finish))
		b.WriteString("\n")
		b.WriteString(chunk)
		b.WriteString("\n\n")

		current = finish
	}

	return b.String()
}

// formatTimestamp renders a second offset as MM:SS.mmm.
func formatTimestamp(seconds float64) string {
	m := int(seconds) / 60
	s := int(seconds) % 60
	ms := int(math.Round((seconds - math.Trunc(seconds)) * 1000))
	if ms > 999 {
		ms = 999
	}
	return fmt.Sprintf("%02d:%02d.%03d", m, s, ms)
}
