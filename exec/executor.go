/*

Package exec is a parameter-driven executor: it parses flags and performs
one subtitle transformation from package subkit.

It is the heart of the subkit command line tool; a caller that wants to
drive the same operations from somewhere other than a terminal (a web
front end, say) can produce the same argument list instead of linking
against subkit directly.

*/
package exec

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/srtsuite/subkit"
)

// Executor is a helper type that executes one subtitle transformation
// defined by a series of arguments.
type Executor struct {
	FlagSet *flag.FlagSet

	In   string // input file name
	Out  string // output file name
	In2  string // optional 2nd input file name (merge's secondary track)
	Out2 string // optional 2nd output file name (split's secondary output)

	ShiftBy    string // offset to shift by, any form ParseOffset accepts
	AnchorTo   string // timestamp to anchor the first event to
	Realign    bool   // realign In against In2 (reference)
	RealignRef string // explicit anchor pair "srcIdx:refIdx", optional

	Merge      bool // merge In (primary) and In2 (secondary)
	Split      bool // split In into Out (CJK) and Out2 (Latin)
	ConvertTo  string // target format set on the result; the written format follows Out's extension

	Stats bool // analyze file and print statistics

	Sf1, Sf2 *subkit.SubtitleFile // operands, set by the caller before GearIt()
}

// New creates a new Executor.
func New() *Executor {
	return &Executor{
		FlagSet: flag.NewFlagSet("subkit", flag.ContinueOnError),
	}
}

// ProcFlags sets up variables for parsing the arguments, pointing to the
// fields of the Executor, and parses the arguments.
func (e *Executor) ProcFlags(arguments []string) error {
	f := e.FlagSet

	f.StringVar(&e.In, "in", "", "input file name")
	f.StringVar(&e.Out, "out", "", "output file name")
	f.StringVar(&e.In2, "in2", "", "optional 2nd input file name (merge secondary / realign reference)")
	f.StringVar(&e.Out2, "out2", "", "optional 2nd output file name (split secondary output)")

	f.StringVar(&e.ShiftBy, "shiftBy", "", "shift timestamps by an offset (ms, 'Xms', 'X.Ys', or HH:MM:SS,mmm)")
	f.StringVar(&e.AnchorTo, "anchorTo", "", "anchor the first event to a target timestamp")
	f.BoolVar(&e.Realign, "realign", false, "realign -in against -in2 (reference track)")
	f.StringVar(&e.RealignRef, "anchorPair", "", "explicit anchor pair 'srcIdx:refIdx' for -realign")

	f.BoolVar(&e.Merge, "merge", false, "merge -in (primary) and -in2 (secondary) into -out")
	f.BoolVar(&e.Split, "split", false, "split -in into -out (CJK) and -out2 (Latin)")
	f.StringVar(&e.ConvertTo, "convertTo", "", "set the result's format, e.g. 'vtt' (the written format follows the -out extension)")

	f.BoolVar(&e.Stats, "stats", false, "analyze file and print statistics")

	return f.Parse(arguments)
}

// GearIt performs the subtitle transformation specified by the arguments
// passed to ProcFlags. Prior to calling this method, Executor.Sf1 (and
// Sf2, if needed) must be set.
func (e *Executor) GearIt() error {
	sf1, sf2 := e.Sf1, e.Sf2

	if sf1 == nil {
		return fmt.Errorf("input file must be specified (-in)")
	}
	if sf2 == nil && (e.Merge || e.Realign) {
		return fmt.Errorf("2nd input file must be specified (-in2)")
	}

	if e.ShiftBy != "" {
		delta, err := subkit.ParseOffset(e.ShiftBy)
		if err != nil {
			return fmt.Errorf("invalid -shiftBy: %w", err)
		}
		sf1 = subkit.ShiftBy(sf1, delta)
	}

	if e.AnchorTo != "" {
		target, err := subkit.ParseOffset(e.AnchorTo)
		if err != nil {
			return fmt.Errorf("invalid -anchorTo: %w", err)
		}
		sf1 = subkit.AnchorFirstTo(sf1, target)
	}

	if e.Realign {
		req := subkit.RealignRequest{
			Method:              subkit.RealignFirstLine,
			ConfidenceThreshold: 0,
			Options:             subkit.DefaultOptions(),
		}
		if e.RealignRef != "" {
			var srcIdx, refIdx int
			if _, err := fmt.Sscanf(e.RealignRef, "%d:%d", &srcIdx, &refIdx); err != nil {
				return fmt.Errorf("invalid -anchorPair %q: %w", e.RealignRef, err)
			}
			req.Method = subkit.RealignExplicitAnchor
			req.ExplicitSource, req.ExplicitReference = srcIdx, refIdx
		}
		result, err := subkit.Realign(sf1, sf2, req, nil)
		if err != nil {
			return err
		}
		sf1 = result.File
	}

	if e.Merge {
		merged, err := subkit.Merge(sf1, sf2, subkit.MergeOptions{
			MicroCueThreshold: subkit.DefaultOptions().MergeMicroCueThreshold,
			AdjacencyGap:      subkit.DefaultOptions().MergeAdjacencyGap,
		})
		if err != nil {
			return err
		}
		sf1 = merged
	}

	if e.Split {
		primary, secondary := subkit.Split(sf1, subkit.SplitOptions{})
		sf1, e.Sf2 = primary, secondary
		sf2 = secondary
	}

	if e.ConvertTo != "" {
		format, ok := subkit.FormatFromExt(e.ConvertTo)
		if !ok {
			return fmt.Errorf("unsupported target format: %s", e.ConvertTo)
		}
		sf1.Format = format
	}

	if e.Stats {
		st := sf1.Stats()
		fmt.Printf("STATS of %s:\n", e.In)
		p := func(name string, value interface{}) {
			fmt.Printf("%-29s: %v\n", name, value)
		}
		p("Total # of events", st.Events)
		p("Lines", st.Lines)
		p("Avg lines per event", fmt.Sprintf("%.4f", st.AvgLinesPerCue))
		p("Chars", st.Chars)
		p("Chars (without spaces)", st.CharsNoSpace)
		p("Words", st.Words)
		p("Avg chars per word", fmt.Sprintf("%.4f", st.AvgCharsPerWord))
		p("Total display duration", st.TotalDisplayDur)
		p("Visible ratio", fmt.Sprintf("%.2f%% (compared to total length)", st.VisibleRatio*100))
	}

	e.Sf1 = sf1
	return nil
}

// WriteOutput writes e.Sf1 (and e.Sf2, if the operation produced a
// second output) to the paths given by -out/-out2, inferring format from
// each path's extension.
func (e *Executor) WriteOutput() error {
	if e.Out != "" && e.Sf1 != nil {
		if err := writeByExt(e.Out, e.Sf1); err != nil {
			return err
		}
	}
	if e.Out2 != "" && e.Sf2 != nil {
		if err := writeByExt(e.Out2, e.Sf2); err != nil {
			return err
		}
	}
	return nil
}

func writeByExt(path string, sf *subkit.SubtitleFile) error {
	format, ok := subkit.FormatFromExt(filepath.Ext(path))
	if !ok {
		return fmt.Errorf("cannot infer format from output path: %s", path)
	}
	switch format {
	case subkit.FormatSRT:
		return subkit.WriteSRTFile(path, sf)
	case subkit.FormatVTT:
		return subkit.WriteVTTFile(path, sf)
	case subkit.FormatASS, subkit.FormatSSA:
		return subkit.WriteASSFile(path, sf)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// ReadInput reads e.In (and e.In2, if set) by sniffing their extensions.
func (e *Executor) ReadInput() error {
	sf1, err := readByExt(e.In)
	if err != nil {
		return err
	}
	e.Sf1 = sf1

	if e.In2 != "" {
		sf2, err := readByExt(e.In2)
		if err != nil {
			return err
		}
		e.Sf2 = sf2
	}
	return nil
}

func readByExt(path string) (*subkit.SubtitleFile, error) {
	format, ok := subkit.FormatFromExt(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("cannot infer format from input path: %s", path)
	}
	switch format {
	case subkit.FormatSRT:
		return subkit.ReadSRTFile(path, nil)
	case subkit.FormatVTT:
		return subkit.ReadVTTFile(path, nil)
	case subkit.FormatASS, subkit.FormatSSA:
		return subkit.ReadASSFile(path, format, nil)
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}
