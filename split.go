/*

This file implements the Splitter (§4.H), the inverse of the Merger: it
partitions a bilingual cue stream into two monolingual streams by script
class, and derives output file names from the input name's recognised
language suffix.

*/

package subkit

import (
	"path/filepath"
	"strings"
)

// SplitOptions controls the Splitter's optional HTML-stripping step.
type SplitOptions struct {
	StripHTML bool
}

// Split implements §4.H steps 1-4: for each input event, split its text
// into lines, classify each line, and route CJK lines to the primary
// output and Latin lines to the secondary output, duplicating ambiguous
// lines into both.
func Split(sf *SubtitleFile, opts SplitOptions) (primary, secondary *SubtitleFile) {
	primary = NewSubtitleFile(sf.Format)
	primary.Encoding = sf.Encoding
	secondary = NewSubtitleFile(sf.Format)
	secondary.Encoding = sf.Encoding

	for _, e := range sf.Events {
		var cjkLines, latinLines []string
		for _, line := range e.Lines() {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if opts.StripHTML {
				line = htmlPattern.ReplaceAllString(line, "")
			}
			switch ClassifyLine(line) {
			case ScriptCJK:
				cjkLines = append(cjkLines, line)
			case ScriptLatin:
				latinLines = append(latinLines, line)
			default:
				cjkLines = append(cjkLines, line)
				latinLines = append(latinLines, line)
			}
		}
		if len(cjkLines) > 0 {
			primary.Events = append(primary.Events, Event{Start: e.Start, End: e.End, Text: strings.Join(cjkLines, "\n")})
		}
		if len(latinLines) > 0 {
			secondary.Events = append(secondary.Events, Event{Start: e.Start, End: e.End, Text: strings.Join(latinLines, "\n")})
		}
	}

	primary.Sort()
	secondary.Sort()
	return primary, secondary
}

// IsBilingual inspects the first K (~50) events of sf and returns true
// only when both CJK and Latin lines are observed (§4.H preflight).
func IsBilingual(sf *SubtitleFile) bool {
	const window = 50
	limit := window
	if limit > len(sf.Events) {
		limit = len(sf.Events)
	}
	var sawCJK, sawLatin bool
	for i := 0; i < limit; i++ {
		for _, line := range sf.Events[i].Lines() {
			switch ClassifyLine(line) {
			case ScriptCJK:
				sawCJK = true
			case ScriptLatin:
				sawLatin = true
			}
		}
		if sawCJK && sawLatin {
			return true
		}
	}
	return false
}

// languageSuffixes is the full recognised set of language identifier
// suffixes (§6), longest compound forms first so e.g. ".zh-en" is
// stripped whole rather than leaving a dangling ".en".
var languageSuffixes = []string{
	"zh-en", "en-zh", "zh-cn", "zh-tw",
	"zh", "chs", "cht", "chi", "cn",
	"en", "eng",
	"ja", "jpn",
	"ko", "kor",
	"bilingual",
}

// stripLanguageSuffix removes a trailing recognised language suffix from
// stem, checking compound forms before single-language forms (the order
// of languageSuffixes above).
func stripLanguageSuffix(stem string) string {
	for _, suf := range languageSuffixes {
		dotSuf := "." + suf
		if strings.HasSuffix(strings.ToLower(stem), dotSuf) {
			return stem[:len(stem)-len(dotSuf)]
		}
	}
	return stem
}

// DeriveSplitPath computes the output path for one side of a split: the
// base name with any recognised language suffix stripped, plus the
// caller-chosen suffix and the original extension. If the derived path
// would collide with inputPath, "-only" is inserted to disambiguate
// (§4.H "refuses to overwrite its own input").
func DeriveSplitPath(inputPath, suffix string) string {
	dir := filepath.Dir(inputPath)
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), ext)
	stem = stripLanguageSuffix(stem)

	candidate := filepath.Join(dir, stem+"."+suffix+ext)
	if candidate == inputPath {
		candidate = filepath.Join(dir, stem+"."+suffix+"-only"+ext)
	}
	return candidate
}
