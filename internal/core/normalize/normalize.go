// Package normalize canonicalises user search terms before they reach the store
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 remove format characters (zero width joiners, BOM, bidi marks)
// 3 Unicode NFC so precomposed and combining forms compare equal
// 4 width fold fullwidth ASCII and ideographic space to their narrow forms
// 5 collapse whitespace runs to one space and trim
//
// case is left alone, the store collation or ILIKE decides it
package normalize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe, transformer chains come from a pool
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.In(unicode.Cf)),
			norm.NFC,
			width.Fold,
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the canonical form of s following the pipeline above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// chain only fails on malformed input which ToValidUTF8 already removed
		ns = s
	}
	return collapseSpaces(ns)
}

var std = New()

// Term normalizes with the shared Normalizer
func Term(s string) string { return std.Normalize(s) }

// Len counts code points, the unit the minimum term length is expressed in
func Len(s string) int { return utf8.RuneCountInString(s) }

// collapseSpaces folds every whitespace run, line breaks included, into one ASCII space and trims the edges
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
