package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// FrameMetadata holds the run parameters encoded in rendered-image file
// names, e.g. "image_230GHz_Ma+0.94_i_30_Rhigh_160". Fields are kept as
// the strings found in the name; absent parameters stay empty.
type FrameMetadata struct {
	FrequencyGHz string
	Spin         string
	Inclination  string
	Rhigh        string
}

var (
	frequencyRe   = regexp.MustCompile(`(?i)(\d+)\s*GHz`)
	spinRe        = regexp.MustCompile(`(?:^|_)Ma([+\-]?\d*\.?\d+)(?:_|$)`)
	inclinationRe = regexp.MustCompile(`(?i)(?:^|_)i_(\d+)(?:_|$)`)
	rhighRe       = regexp.MustCompile(`(?i)(?:^|_)Rhigh_(\d+)(?:_|$)`)
)

// ParseFrameMetadata extracts run parameters from a rendered-image or
// movie file name.
func ParseFrameMetadata(name string) FrameMetadata {
	var md FrameMetadata
	if m := frequencyRe.FindStringSubmatch(name); m != nil {
		md.FrequencyGHz = m[1]
	}
	if m := spinRe.FindStringSubmatch(name); m != nil {
		md.Spin = m[1]
	}
	if m := inclinationRe.FindStringSubmatch(name); m != nil {
		md.Inclination = m[1]
	}
	if m := rhighRe.FindStringSubmatch(name); m != nil {
		md.Rhigh = m[1]
	}
	return md
}

// TitleLines renders the parsed parameters as display lines for a movie
// title card, in a fixed order, skipping absent parameters.
func (md FrameMetadata) TitleLines() []string {
	var lines []string
	if md.FrequencyGHz != "" {
		lines = append(lines, fmt.Sprintf("Frequency: %s GHz", md.FrequencyGHz))
	}
	if md.Spin != "" {
		lines = append(lines, fmt.Sprintf("Spin (a): %s", md.Spin))
	}
	if md.Inclination != "" {
		lines = append(lines, fmt.Sprintf("Inclination (i): %s deg", md.Inclination))
	}
	if md.Rhigh != "" {
		lines = append(lines, fmt.Sprintf("R_high: %s", md.Rhigh))
	}
	return lines
}

// Empty reports whether no parameters were recognized.
func (md FrameMetadata) Empty() bool {
	return md.FrequencyGHz == "" && md.Spin == "" && md.Inclination == "" && md.Rhigh == ""
}

// Describe joins the title lines into a one-line summary.
func (md FrameMetadata) Describe() string {
	return strings.Join(md.TitleLines(), ", ")
}
