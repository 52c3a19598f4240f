// internal/parser/supplier.go

// Package parser holds the row-classification state machines that recover
// structured SKU records from the loosely formatted WMS exports. Row meaning
// (section marker, header, data) depends on cell content and position, so
// each reader carries its section context explicitly.
package parser

import "strings"

// supplierAlias maps a lower-cased fragment of a WMS supplier label to the
// canonical supplier code.
type supplierAlias struct {
	fragment string
	code     string
}

// Normalizer resolves free-text supplier and section labels to canonical
// supplier codes. Aliases are checked in declaration order because a label
// can contain more than one fragment; first match wins.
type Normalizer struct {
	aliases []supplierAlias
}

// defaultAliases is the fixed WMS-name-to-code table.
var defaultAliases = []supplierAlias{
	{"alliance metal changzhou", "AMC"},
	{"amc", "AMC"},
	{"hx/ whi", "HX"},
	{"hx/whi", "HX"},
	{"zhongxing", "ZhongXing"},
	{"zhong xing", "ZhongXing"},
	{"tianjin", "TianJin"},
	{"tianjin/whi", "TianJin"},
	{"tianijn", "TianJin"},
	{"winschem", "WINSCHEM"},
	{"changzhou winschem", "WINSCHEM"},
	{"changzhou nuode", "Nuode"},
	{"nuode", "Nuode"},
}

// NewNormalizer returns a normalizer with the default alias table.
func NewNormalizer() *Normalizer {
	return &Normalizer{aliases: defaultAliases}
}

// Resolve maps a raw label to its supplier code. Unmapped labels pass
// through trimmed but otherwise verbatim; an unknown supplier is data, not
// an error.
func (n *Normalizer) Resolve(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, a := range n.aliases {
		if strings.Contains(lower, a.fragment) {
			return a.code
		}
	}
	return strings.TrimSpace(raw)
}
