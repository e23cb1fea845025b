package respond

import (
	"strconv"
	"strings"
)

// mediaRange is one entry of an Accept header.
type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges. Entries without a
// slash are treated as type/*; malformed or out-of-range q values count as 1.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		params := strings.Split(part, ";")
		mr := mediaRange{q: 1.0}
		mt := strings.ToLower(strings.TrimSpace(params[0]))
		if typ, sub, ok := strings.Cut(mt, "/"); ok {
			mr.typ, mr.subtype = typ, sub
		} else {
			mr.typ, mr.subtype = mt, "*"
		}
		for _, p := range params[1:] {
			key, val, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || strings.ToLower(strings.TrimSpace(key)) != "q" {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil || q < 0 || q > 1 {
				q = 1.0
			}
			mr.q = q
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// matches reports how specifically mr matches application/<subtype>, or -1.
// Exact subtypes beat structured-suffix wildcards, which beat type wildcards.
func (mr mediaRange) matches(subtype string) int {
	switch {
	case mr.typ == "application" && (mr.subtype == subtype || mr.subtype == "problem+"+subtype):
		return 3
	case mr.typ == "application" && mr.subtype == "*+"+subtype:
		return 2
	case mr.typ == "application" && mr.subtype == "*":
		return 1
	case mr.typ == "*" && mr.subtype == "*":
		return 0
	default:
		return -1
	}
}

// quality returns the q value of the most specific range matching subtype.
func quality(ranges []mediaRange, subtype string) float64 {
	best, q := -1, 0.0
	for _, mr := range ranges {
		if s := mr.matches(subtype); s > best {
			best, q = s, mr.q
		}
	}
	return q
}

// selectFormat reports whether CBOR should be used for the given Accept header.
// JSON wins ties and is the fallback when nothing acceptable matches.
func selectFormat(accept string) bool {
	ranges := parseAccept(accept)
	if len(ranges) == 0 {
		return false
	}
	cborQ := quality(ranges, "cbor")
	jsonQ := quality(ranges, "json")
	return cborQ > 0 && cborQ > jsonQ
}
