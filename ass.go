/*

This file implements reading and writing the Sub Station Alpha file
formats (*.ass, *.ssa), §4.D's third textual format. Unlike the other two,
ASS carries non-event header metadata ([Script Info], [Styles]) that must
round-trip verbatim, and its Dialogue lines carry both a raw payload
(override blocks preserved) and a cleaned display form.

Format reference: http://www.matroska.org/technical/specs/subtitles/ssa.html

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

var (
	scriptInfoHeader = regexp.MustCompile(`(?i)^\[Script Info\]`)
	stylesHeader     = regexp.MustCompile(`(?i)^\[V4\+? Styles\]`)
	eventsHeader     = regexp.MustCompile(`(?i)^\[Events\]`)
	anySectionHeader = regexp.MustCompile(`^\[.*\]`)

	assOverridePattern = regexp.MustCompile(`\{[^}]*\}`)

	// htmlPattern strips HTML-like tags (e.g. "<i>...</i>"), shared with
	// the Splitter (§4.H step 2).
	htmlPattern = regexp.MustCompile(`<[^>]+>`)
)

// assSection is the linear section-machine state (Design Note:
// "Polymorphic parsers" generalised to a second axis — a closed set of
// section kinds dispatched by switch, not a stack of handler objects).
type assSection int

const (
	assSectionNone assSection = iota
	assSectionScriptInfo
	assSectionStyles
	assSectionEvents
	assSectionUnknown
)

// defaultASSColumns are the fallback column positions used when a
// Dialogue line's Format: line is missing or doesn't name a column
// (§4.D "if names are missing, default positions are (1:start, 2:end,
// 3:style, 9:text)").
const (
	defaultStartCol = 1
	defaultEndCol   = 2
	defaultStyleCol = 3
	defaultTextCol  = 9
)

// ReadASSFile reads and parses an ASS/SSA file from disk.
func ReadASSFile(path string, format Format, logger *zerolog.Logger) (*SubtitleFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, newError("ReadASSFile", KindIO, err)
	}
	sf, err := ParseASS(buf, format, logger)
	if sf != nil {
		sf.Path = path
	}
	return sf, err
}

// ParseASS decodes buf and parses it as ASS/SSA (§4.D "ASS parse").
func ParseASS(buf []byte, format Format, logger *zerolog.Logger) (*SubtitleFile, error) {
	log := loggerOrDefault(logger)
	text, label, err := DetectEncoding(buf)
	if err != nil {
		return nil, newError("ParseASS", KindEncoding, err)
	}

	sf := NewSubtitleFile(format)
	sf.Encoding = label

	section := assSectionNone
	sawEvents := false
	var formatCols []string

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimRight(rawLine, "\r")

		switch {
		case scriptInfoHeader.MatchString(line):
			section = assSectionScriptInfo
			sf.ScriptInfo = append(sf.ScriptInfo, line)
			continue
		case stylesHeader.MatchString(line):
			section = assSectionStyles
			sf.Styles = append(sf.Styles, line)
			continue
		case eventsHeader.MatchString(line):
			section = assSectionEvents
			sawEvents = true
			continue
		case anySectionHeader.MatchString(line):
			section = assSectionUnknown
			continue
		}

		switch section {
		case assSectionScriptInfo:
			sf.ScriptInfo = append(sf.ScriptInfo, line)
		case assSectionStyles:
			sf.Styles = append(sf.Styles, line)
		case assSectionEvents:
			trimmed := strings.TrimSpace(line)
			lower := strings.ToLower(trimmed)
			switch {
			case strings.HasPrefix(lower, "format:"):
				formatCols = parseASSFormatLine(trimmed)
			case strings.HasPrefix(lower, "dialogue:"):
				ev, ok, reason := parseASSDialogueLine(trimmed, formatCols)
				if !ok {
					log.Debug().Str("reason", reason).Str("line", trimmed).Msg("skipped malformed ASS dialogue line")
					continue
				}
				sf.Events = append(sf.Events, ev)
			}
		}
	}

	if !sawEvents {
		return nil, newError("ParseASS", KindFormat, fmt.Errorf("no [Events] section found"))
	}

	sf.Sort()
	return sf, nil
}

// parseASSFormatLine splits a "Format: a, b, c" line into lower-cased,
// trimmed column names, case-insensitively (§4.D).
func parseASSFormatLine(line string) []string {
	_, rest, _ := strings.Cut(line, ":")
	fields := strings.Split(rest, ",")
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = strings.ToLower(strings.TrimSpace(f))
	}
	return cols
}

// parseASSDialogueLine splits a "Dialogue: ..." line by the first N-1
// commas (N = number of format columns) so commas inside the text column
// survive, then looks up start/end/style/text by column name, falling
// back to the default positions when the names are missing (§4.D).
func parseASSDialogueLine(line string, formatCols []string) (Event, bool, string) {
	_, content, ok := strings.Cut(line, ":")
	if !ok {
		return Event{}, false, "no ':' in Dialogue line"
	}
	content = strings.TrimPrefix(content, " ")

	startCol, endCol, styleCol, textCol := defaultStartCol, defaultEndCol, defaultStyleCol, defaultTextCol
	n := 10 // default ASS has 10 columns (Marked/Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text)
	if len(formatCols) > 0 {
		n = len(formatCols)
		if i := indexOf(formatCols, "start"); i >= 0 {
			startCol = i
		}
		if i := indexOf(formatCols, "end"); i >= 0 {
			endCol = i
		}
		if i := indexOf(formatCols, "style"); i >= 0 {
			styleCol = i
		}
		if i := indexOf(formatCols, "text"); i >= 0 {
			textCol = i
		}
	}

	parts := strings.SplitN(content, ",", n)
	if len(parts) < 2 {
		return Event{}, false, "too few fields in Dialogue line"
	}

	get := func(col int) string {
		if col >= 0 && col < len(parts) {
			return strings.TrimSpace(parts[col])
		}
		return ""
	}

	startStr, endStr := get(startCol), get(endCol)
	if startStr == "" {
		startStr = "0:00:00.00"
	}
	if endStr == "" {
		endStr = "0:00:00.00"
	}
	start, err := ParseASSTimestamp(startStr)
	if err != nil {
		return Event{}, false, err.Error()
	}
	end, err := ParseASSTimestamp(endStr)
	if err != nil {
		return Event{}, false, err.Error()
	}

	style := get(styleCol)
	if style == "" {
		style = "Default"
	}
	var rawText string
	if textCol >= 0 && textCol < len(parts) {
		rawText = parts[textCol]
	}

	return Event{
		Start:     start,
		End:       end,
		Text:      cleanASSText(rawText),
		StyleName: style,
		Raw:       rawText,
	}, true, ""
}

func indexOf(ss []string, v string) int {
	for i, s := range ss {
		if s == v {
			return i
		}
	}
	return -1
}

// cleanASSText normalises \N/\n to real newlines and strips override
// blocks and HTML-like tags to produce the display form (§3 "ASS newline
// sequences are normalised to the newline character on parse"; §4.D
// "stripped to produce the display form").
func cleanASSText(raw string) string {
	s := strings.ReplaceAll(raw, `\N`, "\n")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = assOverridePattern.ReplaceAllString(s, "")
	s = htmlPattern.ReplaceAllString(s, "")
	return s
}

// WriteASSFile writes sf to path as ASS/SSA text.
func WriteASSFile(path string, sf *SubtitleFile) error {
	f, err := os.Create(path)
	if err != nil {
		return newError("WriteASSFile", KindIO, err)
	}
	defer f.Close()
	return WriteASS(f, sf)
}

// WriteASS emits sf as ASS/SSA text: verbatim (or synthesised) header
// sections followed by a canonical Events section (§4.D "ASS emit").
func WriteASS(w io.Writer, sf *SubtitleFile) error {
	sf.Sort()
	wr := &writer{w: w}

	if len(sf.ScriptInfo) > 0 {
		for _, line := range sf.ScriptInfo {
			wr.prn(line)
		}
		wr.prn()
	} else {
		wr.prn("[Script Info]")
		wr.prn("ScriptType: v4.00+")
		wr.prn()
	}

	if len(sf.Styles) > 0 {
		for _, line := range sf.Styles {
			wr.prn(line)
		}
		wr.prn()
	} else {
		wr.prn("[V4+ Styles]")
		wr.prn("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding")
		wr.prn("Style: Default,Arial,48,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1")
		wr.prn()
	}

	wr.prn("[Events]")
	wr.prn("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text")

	for _, e := range sf.Events {
		style := e.StyleName
		if style == "" {
			style = "Default"
		}
		text := e.Raw
		if text == "" {
			text = strings.ReplaceAll(e.Text, "\n", `\N`)
		}
		wr.prf("Dialogue: 0,%s,%s,%s,,0,0,0,,%s", FormatASSTimestamp(e.Start), FormatASSTimestamp(e.End), style, text)
		wr.pr(newLine)
	}

	return wr.err
}
