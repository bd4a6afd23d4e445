/*

This file implements the Encoding Detector (§4.A): map raw bytes to
(decoded text, encoding label), with a bias toward East Asian encodings
when UTF-8 fails, grounded on golang.org/x/text/encoding (the same module
Eyevinn-moqlivemock and zsiec-prism pull in transitively, promoted here to
a direct dependency for the candidate list the spec requires).

*/

package subkit

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidateEncoding is one statistical-detection candidate, resolved once
// at package init (Design Note: "Mutable shared detector state" — the
// candidate list is an immutable record, never rebuilt or mutated at a
// call site).
type candidateEncoding struct {
	label string
	enc   encoding.Encoding
}

// eastAsianCandidates is the fixed detection order used by step 3 of
// §4.A: "the detector must try at minimum GB18030, GBK, Big5, Shift-JIS,
// EUC-KR, and Windows-1252".
var eastAsianCandidates = []candidateEncoding{
	{"gb18030", simplifiedchinese.GB18030},
	{"gbk", simplifiedchinese.GBK},
	{"big5", traditionalchinese.Big5},
	{"shift-jis", japanese.ShiftJIS},
	{"euc-kr", korean.EUCKR},
	{"windows-1252", charmap.Windows1252},
}

// DetectEncoding implements §4.A's protocol over an in-memory buffer.
// Returns decoded text with all line endings normalised to "\n", and the
// encoding label that was used.
func DetectEncoding(buf []byte) (text string, label string, err error) {
	if len(buf) == 0 {
		return "", "", newError("DetectEncoding", KindEncoding, fmt.Errorf("empty buffer"))
	}

	// Step 1: UTF-8 BOM.
	if bytes.HasPrefix(buf, utf8BOM) {
		rest := buf[len(utf8BOM):]
		if !validUTF8Strict(rest) {
			return "", "", newError("DetectEncoding", KindEncoding, fmt.Errorf("BOM present but body is not valid UTF-8"))
		}
		return normalizeNewlines(string(rest)), "utf-8-sig", nil
	}

	// Step 2: UTF-8 strict.
	if validUTF8Strict(buf) {
		return normalizeNewlines(string(buf)), "utf-8", nil
	}

	// Step 3: statistical East Asian detection. Pick the first candidate
	// that decodes the full buffer without emitting U+FFFD.
	for _, c := range eastAsianCandidates {
		decoded, decErr := c.enc.NewDecoder().Bytes(buf)
		if decErr != nil {
			continue
		}
		if bytes.ContainsRune(decoded, '�') {
			continue
		}
		return normalizeNewlines(string(decoded)), c.label, nil
	}

	// Step 4: fall back to GB18030 with replacement characters, logged as
	// a warning through the package default logger.
	decoded, _ := simplifiedchinese.GB18030.NewDecoder().Bytes(buf)
	log := Default()
	log.Warn().Msg("no candidate encoding decoded cleanly; decoded as gb18030 with replacement characters")
	return normalizeNewlines(string(decoded)), "gb18030", nil
}

// validUTF8Strict reports whether buf is valid UTF-8.
func validUTF8Strict(buf []byte) bool {
	return utf8.Valid(buf)
}

// normalizeNewlines replaces CRLF and lone CR with LF (§4.A: "all \r\n
// and lone \r replaced by \n").
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// EncodeOutput returns the bytes to write for text, per §4.A's emit rule:
// UTF-8 without BOM for every format, except ASS/SSA, which may prepend a
// UTF-8 BOM because some players require it.
func EncodeOutput(text string, format Format) []byte {
	if format == FormatASS || format == FormatSSA {
		out := make([]byte, 0, len(utf8BOM)+len(text))
		out = append(out, utf8BOM...)
		out = append(out, text...)
		return out
	}
	return []byte(text)
}
