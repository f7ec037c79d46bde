// Package hgvs extracts residue positions from protein-change annotation
// strings as they appear in MAF files. Accepted forms range from bare numbers
// ("459") over short HGVSp ("p.P459L") to long HGVSp with frameshift and
// termination suffixes ("p.Leu2195ProfsTer30", "p.C229Lfs*18") and
// multi-residue ranges ("729_731del").
package hgvs

import (
	"strconv"
	"strings"
)

// Change is a protein change with its parsed residue position.
type Change struct {
	// Raw is the normalized change string with any "p." prefix removed,
	// e.g. "P459L".
	Raw string
	// Pos is the affected residue position. For multi-residue changes this
	// is the first residue of the range.
	Pos int
}

// Normalize strips the HGVS "p." prefix from a change string, keeping the
// trailing segment. Strings without the prefix are returned unchanged.
func Normalize(raw string) string {
	if i := strings.LastIndex(raw, "p."); i >= 0 {
		return raw[i+2:]
	}
	return raw
}

// Position extracts the residue position from a protein-change string.
// Returns ok=false when the string carries no parseable position, e.g. a
// placeholder like "." or "p.=".
func Position(raw string) (pos int, ok bool) {
	seg := Normalize(raw)

	// Drop termination-codon markers and anything after them: "Ter30",
	// trailing "*", "*18". A leading "*" (stop-lost notation) is not a
	// terminator for the position that follows it.
	seg = strings.TrimPrefix(seg, "*")
	if i := strings.IndexByte(seg, '*'); i >= 0 {
		seg = seg[:i]
	}
	if i := strings.Index(seg, "Ter"); i >= 0 {
		seg = seg[:i]
	}

	// Keep digits, the range delimiter and a sign; letters carry amino
	// acid codes and effect suffixes (fs, del, ins, dup).
	var b strings.Builder
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if c >= '0' && c <= '9' || c == '_' || c == '-' {
			b.WriteByte(c)
		}
	}
	digits := b.String()

	// Multi-residue change: first residue of the range.
	if i := strings.IndexByte(digits, '_'); i >= 0 {
		digits = digits[:i]
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	if n < 0 {
		n = -n
	}
	return n, true
}

// Parse combines Normalize and Position into a Change.
func Parse(raw string) (Change, bool) {
	pos, ok := Position(raw)
	if !ok {
		return Change{}, false
	}
	return Change{Raw: Normalize(raw), Pos: pos}, true
}

// StripPrefix removes the leading amino-acid/position prefix from a change
// string, leaving only the alternate part: "P459V" -> "V", "L2195Pfs" ->
// "Pfs". Used when collapsing multiple labels at one position into a
// compound label. Returns the input unchanged when no prefix is found.
func StripPrefix(change string) string {
	i := 0
	// leading amino acid code (or "*" for stop-lost)
	for i < len(change) && (change[i] >= 'A' && change[i] <= 'Z' || change[i] >= 'a' && change[i] <= 'z' || change[i] == '*') {
		i++
	}
	// residue number
	j := i
	for j < len(change) && change[j] >= '0' && change[j] <= '9' {
		j++
	}
	if j == i || j == len(change) {
		return change
	}
	return change[j:]
}
