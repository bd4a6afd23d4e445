/*

This file implements reading and writing the WebVTT file format (*.vtt),
the sibling of subrip.go for the second textual format named in §4.D.

*/

package subkit

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

var vttTimestampLine = regexp.MustCompile(`([\d:.]+)\s*-+>\s*([\d:.]+)`)

// ReadVTTFile reads and parses a WebVTT file from disk.
func ReadVTTFile(path string, logger *zerolog.Logger) (*SubtitleFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, newError("ReadVTTFile", KindIO, err)
	}
	sf, err := ParseVTT(buf, logger)
	if sf != nil {
		sf.Path = path
	}
	return sf, err
}

// ParseVTT decodes buf and parses it as WebVTT (§4.D "VTT parse").
func ParseVTT(buf []byte, logger *zerolog.Logger) (*SubtitleFile, error) {
	log := loggerOrDefault(logger)
	text, label, err := DetectEncoding(buf)
	if err != nil {
		return nil, newError("ParseVTT", KindEncoding, err)
	}

	sf := NewSubtitleFile(FormatVTT)
	sf.Encoding = label

	body := stripVTTHeader(text)
	for _, outcome := range parseVTTBlocks(body) {
		if !outcome.ok {
			log.Warn().Str("reason", outcome.skip).Msg("skipped malformed VTT block")
			continue
		}
		sf.Events = append(sf.Events, outcome.event)
	}
	sf.Sort()
	return sf, nil
}

// stripVTTHeader discards the "WEBVTT" line and any header metadata up to
// the first blank line (§4.D).
func stripVTTHeader(text string) string {
	lines := strings.Split(text, "\n")
	i := 0
	if i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "WEBVTT") {
		i++
	}
	for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
		i++
	}
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	return strings.Join(lines[i:], "\n")
}

// parseVTTBlocks splits the header-stripped body into cue blocks and
// parses each one independently, just like parseSRTBlocks.
func parseVTTBlocks(text string) []cueOutcome {
	blocks := splitBlankLines(text)
	outcomes := make([]cueOutcome, 0, len(blocks))
	for _, block := range blocks {
		lines := strings.Split(block, "\n")
		for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		if len(lines) == 0 {
			continue
		}

		// Find the first line containing "-->"; any preceding line is a
		// discarded cue identifier.
		timingIdx := -1
		for i, l := range lines {
			if strings.Contains(l, "-->") {
				timingIdx = i
				break
			}
		}
		if timingIdx < 0 {
			outcomes = append(outcomes, cueOutcome{skip: "block has no timing line"})
			continue
		}

		m := vttTimestampLine.FindStringSubmatch(lines[timingIdx])
		if m == nil {
			outcomes = append(outcomes, cueOutcome{skip: "invalid VTT timestamp line: " + lines[timingIdx]})
			continue
		}
		start, err := ParseVTTTimestamp(m[1])
		if err != nil {
			outcomes = append(outcomes, cueOutcome{skip: err.Error()})
			continue
		}
		end, err := ParseVTTTimestamp(m[2])
		if err != nil {
			outcomes = append(outcomes, cueOutcome{skip: err.Error()})
			continue
		}

		textLines := lines[timingIdx+1:]
		cueText := strings.TrimRight(strings.Join(textLines, "\n"), " \t\n")
		outcomes = append(outcomes, cueOutcome{ok: true, event: Event{Start: start, End: end, Text: cueText}})
	}
	return outcomes
}

// WriteVTTFile writes sf to path as WebVTT text.
func WriteVTTFile(path string, sf *SubtitleFile) error {
	f, err := os.Create(path)
	if err != nil {
		return newError("WriteVTTFile", KindIO, err)
	}
	defer f.Close()
	return WriteVTT(f, sf)
}

// WriteVTT emits sf as WebVTT text: header, then timing + text + blank
// line per event (§4.D "VTT emit").
func WriteVTT(w io.Writer, sf *SubtitleFile) error {
	sf.Sort()
	wr := &writer{w: w}
	wr.prn("WEBVTT")
	wr.prn()
	for _, e := range sf.Events {
		wr.pr(FormatVTTTimestamp(e.Start), " --> ", FormatVTTTimestamp(e.End))
		wr.pr(newLine)
		for _, line := range e.Lines() {
			wr.prn(line)
		}
		wr.pr(newLine)
	}
	return wr.err
}
