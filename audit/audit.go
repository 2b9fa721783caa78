// Package audit cross-checks a parsed Registry against an independent
// DOM view of the same document.
//
// The document is loaded with xmlquery and its sections are counted
// with XPath expressions, so a parser that silently skips records shows
// up as a count mismatch. Ambiguities lists the <enum> tags carrying
// more than one discriminating attribute, where the classifier's
// priority order decides the record kind.
package audit

import (
	"io"
	"sort"

	"github.com/andaru/vkregistry/attr"
	"github.com/andaru/vkregistry/registry"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

// Load parses the document read from r into a DOM.
func Load(r io.Reader) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "audit: load")
	}
	return doc, nil
}

// Census holds the number of records of each section found in a
// document, keyed by section name.
type Census map[string]int

// census is the XPath count expression per section. Sections are named
// as in the registry's section events.
var census = map[string]*xpath.Expr{
	"platforms":         xpath.MustCompile(`count(/registry/platforms/platform)`),
	"tags":              xpath.MustCompile(`count(/registry/tags/tag)`),
	"types":             xpath.MustCompile(`count(/registry/types/type)`),
	"enums":             xpath.MustCompile(`count(/registry/enums[not(@name='API Constants') and not(@type='constants')])`),
	"constants":         xpath.MustCompile(`count(/registry/enums[@name='API Constants' or @type='constants']/enum)`),
	"commands":          xpath.MustCompile(`count(/registry/commands/command[not(@alias)])`),
	"command-aliases":   xpath.MustCompile(`count(/registry/commands/command[@alias])`),
	"features":          xpath.MustCompile(`count(/registry/feature)`),
	"extensions":        xpath.MustCompile(`count(/registry/extensions/extension)`),
	"formats":           xpath.MustCompile(`count(/registry/formats/format)`),
	"spirvextensions":   xpath.MustCompile(`count(/registry/spirvextensions/spirvextension)`),
	"spirvcapabilities": xpath.MustCompile(`count(/registry/spirvcapabilities/spirvcapability)`),
	"syncstages":        xpath.MustCompile(`count(/registry/sync/syncstage)`),
	"syncaccesses":      xpath.MustCompile(`count(/registry/sync/syncaccess)`),
	"syncpipelines":     xpath.MustCompile(`count(/registry/sync/syncpipeline)`),
}

// Count returns the Census of doc.
func Count(doc *xmlquery.Node) Census {
	c := make(Census, len(census))
	for section, expr := range census {
		n, _ := expr.Evaluate(xmlquery.CreateXPathNavigator(doc)).(float64)
		c[section] = int(n)
	}
	return c
}

// Of returns the Census of a parsed Registry.
func Of(reg *registry.Registry) Census {
	return Census{
		"platforms":         len(reg.Platforms),
		"tags":              len(reg.VendorTags),
		"types":             len(reg.Types),
		"enums":             len(reg.EnumGroups),
		"constants":         len(reg.Constants),
		"commands":          len(reg.Commands),
		"command-aliases":   len(reg.CommandAliases),
		"features":          len(reg.Features),
		"extensions":        len(reg.Extensions),
		"formats":           len(reg.Formats),
		"spirvextensions":   len(reg.SpirvExtensions),
		"spirvcapabilities": len(reg.SpirvCapabilities),
		"syncstages":        len(reg.SyncStages),
		"syncaccesses":      len(reg.SyncAccesses),
		"syncpipelines":     len(reg.SyncPipelines),
	}
}

// Mismatch is a section whose record count differs between the
// document and the Registry.
type Mismatch struct {
	Section  string
	Document int
	Parsed   int
}

// Compare returns the sections of doc whose counts differ from reg,
// sorted by section name.
func Compare(doc Census, reg *registry.Registry) []Mismatch {
	parsed := Of(reg)
	var out []Mismatch
	for section, n := range doc {
		if parsed[section] != n {
			out = append(out, Mismatch{Section: section, Document: n, Parsed: parsed[section]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section < out[j].Section })
	return out
}

var (
	xpGroupEnums   = xpath.MustCompile(`/registry/enums[not(@name='API Constants') and not(@type='constants')]/enum`)
	xpRequireEnums = xpath.MustCompile(`//require/enum`)
)

var (
	groupKeys   = []string{"value", "alias", "bitpos"}
	requireKeys = []string{"offset", "bitpos", "alias", "value"}
)

// Ambiguity is an <enum> tag with more than one discriminating
// attribute.
type Ambiguity struct {
	// Context is "group" or "require".
	Context string
	Name    string
	// Keys are the discriminating keys present, in source order.
	Keys []string
	// Kind is the record kind selected by the classifier.
	Kind registry.EnumEntryKind
	// Err is set when the classifier rejects the tag.
	Err error
}

// Ambiguities returns every group and require <enum> in doc carrying
// more than one discriminating attribute, in document order per
// context.
func Ambiguities(doc *xmlquery.Node) []Ambiguity {
	var out []Ambiguity
	out = append(out, ambiguities(doc, xpGroupEnums, "group", groupKeys, registry.GroupPriority)...)
	out = append(out, ambiguities(doc, xpRequireEnums, "require", requireKeys, registry.RequirePriority)...)
	return out
}

func ambiguities(doc *xmlquery.Node, expr *xpath.Expr, context string, keys []string, pr registry.Priority) []Ambiguity {
	var out []Ambiguity
	for _, n := range xmlquery.QuerySelectorAll(doc, expr) {
		attrs := attributes(n)
		var present []string
		for _, key := range attrs.Keys() {
			for _, k := range keys {
				if key == k {
					present = append(present, k)
				}
			}
		}
		if len(present) < 2 {
			continue
		}
		kind, err := registry.ClassifyEnumEntry(attrs, pr)
		out = append(out, Ambiguity{
			Context: context,
			Name:    attrs.Value("name"),
			Keys:    present,
			Kind:    kind,
			Err:     err,
		})
	}
	return out
}

// attributes converts the attributes of n to an attr.List in source
// order.
func attributes(n *xmlquery.Node) attr.List {
	list := make(attr.List, 0, len(n.Attr))
	for _, a := range n.Attr {
		list = append(list, attr.Attr{Key: a.Name.Local, Value: a.Value})
	}
	return list
}
