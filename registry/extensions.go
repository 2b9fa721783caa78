package registry

import (
	"fmt"

	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/record"
)

// ExtensionType is the type attribute of an extension.
type ExtensionType int

const (
	ExtensionNone ExtensionType = iota
	ExtensionInstance
	ExtensionDevice
)

func (t ExtensionType) String() string {
	switch t {
	case ExtensionNone:
		return ""
	case ExtensionInstance:
		return "instance"
	case ExtensionDevice:
		return "device"
	}
	return fmt.Sprintf("ExtensionType(%d)", int(t))
}

func (t ExtensionType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

var extensionTypes = map[string]ExtensionType{
	"instance": ExtensionInstance,
	"device":   ExtensionDevice,
}

// Extension is an API extension. Disabled and reserved extensions
// typically have no type and no requirements.
type Extension struct {
	Name         string
	Number       int
	Type         ExtensionType
	Supported    string
	Author       *string
	Contact      *string
	Depends      *string
	Platform     *string
	Comment      *string
	SpecialUse   *string
	DeprecatedBy *string
	PromotedTo   *string
	ObsoletedBy  *string
	Ratified     *string
	Requires     *string
	RequiresCore *string
	Provisional  bool
	NoFeatures   bool
	SortOrder    *int
	Requirements []Requirement
	Removals     []Change
	Deprecations []Change
}

var extensions = record.New("extension",
	record.Text("name", func(r *Extension) *string { return &r.Name }),
	record.Int("number", func(r *Extension) *int { return &r.Number }),
	record.Enum("type", extensionTypes, func(r *Extension) *ExtensionType { return &r.Type }),
	record.Text("supported", func(r *Extension) *string { return &r.Supported }),
	record.OptText("author", func(r *Extension) **string { return &r.Author }),
	record.OptText("contact", func(r *Extension) **string { return &r.Contact }),
	record.OptText("depends", func(r *Extension) **string { return &r.Depends }),
	record.OptText("platform", func(r *Extension) **string { return &r.Platform }),
	record.OptText("comment", func(r *Extension) **string { return &r.Comment }),
	record.OptText("specialuse", func(r *Extension) **string { return &r.SpecialUse }),
	record.OptText("deprecatedby", func(r *Extension) **string { return &r.DeprecatedBy }),
	record.OptText("promotedto", func(r *Extension) **string { return &r.PromotedTo }),
	record.OptText("obsoletedby", func(r *Extension) **string { return &r.ObsoletedBy }),
	record.OptText("ratified", func(r *Extension) **string { return &r.Ratified }),
	record.OptText("requires", func(r *Extension) **string { return &r.Requires }),
	record.OptText("requiresCore", func(r *Extension) **string { return &r.RequiresCore }),
	record.Flag("provisional", func(r *Extension) *bool { return &r.Provisional }),
	record.Flag("nofeatures", func(r *Extension) *bool { return &r.NoFeatures }),
	record.OptInt("sortorder", func(r *Extension) **int { return &r.SortOrder }),
).Require("name", "number", "supported")

func (p *parser) extensions(tok element.Token) error {
	if _, err := build(p, containers, tok); err != nil {
		return err
	}
	return p.children(tok, func(child element.Token) error {
		if !child.Is("extension") {
			return p.unexpected(child, "<extension>")
		}
		return p.extension(child)
	})
}

func (p *parser) extension(tok element.Token) error {
	rec, err := build(p, extensions, tok)
	if err != nil {
		return err
	}
	rec.Requirements = []Requirement{}
	err = p.children(tok, func(child element.Token) error {
		return p.featureChild(child, &rec.Requirements, &rec.Removals, &rec.Deprecations)
	})
	if err != nil {
		return err
	}
	p.reg.Extensions = append(p.reg.Extensions, rec)
	p.emit(extensions.Kind(), rec.Name, false)
	return nil
}
