package bar

import "github.com/rawmkit/rawm/internal/config"

// Segment is one run of status text sharing a single color scheme, as
// produced by ParseStatusText.
type Segment struct {
	ColorIndex int // a config.Scheme value, index into config.Config.Colors
	Text       string
}

// MaxColorEscape is the highest in-band color-switch byte ParseStatusText
// accepts: one escape per non-default scheme (config.SchemeSel,
// config.SchemeUrg).
const MaxColorEscape = int(config.NumColors) - 1

// ParseStatusText splits s into colored segments. A byte b in
// [1, MaxColorEscape] switches the current color scheme to b directly
// (0x01 selects config.SchemeSel, 0x02 selects config.SchemeUrg); any
// other byte is literal text. Text before the first escape uses
// config.SchemeNorm. Unlike gobar's "{CF ...}" bracket markup, this is a
// fixed single-byte escape so a status feeder can emit it without any
// quoting concerns.
func ParseStatusText(s string) []Segment {
	var segs []Segment
	colorIdx := int(config.SchemeNorm)
	var cur []byte
	flush := func() {
		if len(cur) > 0 {
			segs = append(segs, Segment{ColorIndex: colorIdx, Text: string(cur)})
			cur = nil
		}
	}
	for i := 0; i < len(s); i++ {
		b := int(s[i])
		if b >= 1 && b <= MaxColorEscape {
			flush()
			colorIdx = b
			continue
		}
		cur = append(cur, s[i])
	}
	flush()
	return segs
}
