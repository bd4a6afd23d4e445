/*

This file implements reading and writing the SubRip file format (*.srt).
It parses *.srt byte buffers into a SubtitleFile and writes a SubtitleFile
back out as SubRip text.

Format specifications:
https://en.wikipedia.org/wiki/SubRip
http://www.matroska.org/technical/specs/subtitles/srt.html

The parser is permissive: a malformed block is skipped with a diagnostic,
never aborting the rest of the file (§4.D, §7 "a malformed individual cue
is logged and skipped, not raised").

*/

package subkit

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// cueOutcome is the reified per-cue parse result (Design Note:
// "Exception-as-control-flow in parsers" — no continue-on-error, an
// enumerated ok/skip outcome instead).
type cueOutcome struct {
	event Event
	ok    bool
	skip  string // reason, set when ok is false
}

// seqNumPattern validates (loosely) an SRT sequence-number line.
var seqNumPattern = regexp.MustCompile(`^\s*\d+\s*$`)

// srtTimestampLine extracts both timestamps from an SRT timing line. Very
// permissive: tolerates "." or "," as the decimal separator and extra
// trailing junk after the second timestamp, matching the teacher's own
// permissive grammar.
var srtTimestampLine = regexp.MustCompile(`(\d{1,}:\d\d:\d\d[,.]\d+)\s*-+>\s*(\d{1,}:\d\d:\d\d[,.]\d+)`)

// ReadSRTFile reads and parses a SubRip file from disk.
func ReadSRTFile(path string, logger *zerolog.Logger) (*SubtitleFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, newError("ReadSRTFile", KindIO, err)
	}
	sf, err := ParseSRT(buf, logger)
	if sf != nil {
		sf.Path = path
	}
	return sf, err
}

// ParseSRT decodes buf (via the Encoding Detector) and parses it as SRT.
func ParseSRT(buf []byte, logger *zerolog.Logger) (*SubtitleFile, error) {
	log := loggerOrDefault(logger)
	text, label, err := DetectEncoding(buf)
	if err != nil {
		return nil, newError("ParseSRT", KindEncoding, err)
	}

	sf := NewSubtitleFile(FormatSRT)
	sf.Encoding = label

	for _, outcome := range parseSRTBlocks(text) {
		if !outcome.ok {
			log.Warn().Str("reason", outcome.skip).Msg("skipped malformed SRT block")
			continue
		}
		sf.Events = append(sf.Events, outcome.event)
	}
	sf.Sort()
	return sf, nil
}

// parseSRTBlocks splits text on blank-line boundaries and parses each
// block independently (§4.D "SRT parse").
func parseSRTBlocks(text string) []cueOutcome {
	blocks := splitBlankLines(text)
	outcomes := make([]cueOutcome, 0, len(blocks))
	for _, block := range blocks {
		lines := strings.Split(block, "\n")
		// Trim a trailing empty line left by a trailing newline in block.
		for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		if len(lines) == 0 {
			continue
		}

		idx := 0
		if seqNumPattern.MatchString(lines[0]) {
			idx = 1 // discard the sequence number, it's regenerated on write
		}
		if idx >= len(lines) {
			outcomes = append(outcomes, cueOutcome{skip: "block has no timing line"})
			continue
		}

		m := srtTimestampLine.FindStringSubmatch(lines[idx])
		if m == nil {
			outcomes = append(outcomes, cueOutcome{skip: fmt.Sprintf("invalid timestamp line: %q", lines[idx])})
			continue
		}
		start, err := ParseSRTTimestamp(m[1])
		if err != nil {
			outcomes = append(outcomes, cueOutcome{skip: err.Error()})
			continue
		}
		end, err := ParseSRTTimestamp(m[2])
		if err != nil {
			outcomes = append(outcomes, cueOutcome{skip: err.Error()})
			continue
		}

		textLines := lines[idx+1:]
		cueText := strings.TrimRight(strings.Join(textLines, "\n"), " \t\n")
		outcomes = append(outcomes, cueOutcome{ok: true, event: Event{Start: start, End: end, Text: cueText}})
	}
	return outcomes
}

// splitBlankLines splits s on runs of one or more blank lines, the
// `\n\s*\n` boundary §4.D specifies.
func splitBlankLines(s string) []string {
	re := regexp.MustCompile(`\n\s*\n`)
	parts := re.Split(strings.TrimRight(s, "\n")+"\n", -1)
	blocks := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			blocks = append(blocks, p)
		}
	}
	return blocks
}

// WriteSRTFile writes sf to path as SubRip text.
func WriteSRTFile(path string, sf *SubtitleFile) error {
	f, err := os.Create(path)
	if err != nil {
		return newError("WriteSRTFile", KindIO, err)
	}
	defer f.Close()
	return WriteSRT(f, sf)
}

// WriteSRT emits sf as SubRip text to w: 1-based index, timing line, text,
// blank-line separator, per event in Start order (§4.D "SRT emit").
func WriteSRT(w io.Writer, sf *SubtitleFile) error {
	sf.Sort()
	wr := &writer{w: w}
	for i, e := range sf.Events {
		wr.prn(i + 1)
		wr.pr(FormatSRTTimestamp(e.Start), " --> ", FormatSRTTimestamp(e.End))
		wr.pr(newLine)
		for _, line := range e.Lines() {
			wr.prn(line)
		}
		wr.pr(newLine)
	}
	return wr.err
}
