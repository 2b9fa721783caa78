package registry

import (
	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/record"
)

// SpirvExtension is a SPIR-V extension and the API versions or
// extensions that enable it.
type SpirvExtension struct {
	Name       string
	Versions   []string
	Extensions []string
}

// SpirvCapability is a SPIR-V capability and everything that enables it.
type SpirvCapability struct {
	Name       string
	Versions   []string
	Extensions []string
	Structs    []SpirvCapabilityStruct
	Properties []SpirvCapabilityProperty
}

// SpirvCapabilityStruct enables a capability through a feature struct
// member.
type SpirvCapabilityStruct struct {
	Struct   string
	Feature  string
	Requires string
	Alias    *string
}

// SpirvCapabilityProperty enables a capability through a device
// property value.
type SpirvCapabilityProperty struct {
	Property string
	Member   string
	Value    string
	Requires string
}

type enableVersion struct{ Version string }

type enableExtension struct{ Extension string }

type spirvName struct{ Name string }

var spirvNames = record.New("spirv",
	record.Text("name", func(r *spirvName) *string { return &r.Name }),
).Require("name")

var spirvEnableVersions = record.New("enable-version",
	record.Text("version", func(r *enableVersion) *string { return &r.Version }),
).Require("version")

var spirvEnableExtensions = record.New("enable-extension",
	record.Text("extension", func(r *enableExtension) *string { return &r.Extension }),
).Require("extension")

var spirvEnableStructs = record.New("enable-struct",
	record.Text("struct", func(r *SpirvCapabilityStruct) *string { return &r.Struct }),
	record.Text("feature", func(r *SpirvCapabilityStruct) *string { return &r.Feature }),
	record.Text("requires", func(r *SpirvCapabilityStruct) *string { return &r.Requires }),
	record.OptText("alias", func(r *SpirvCapabilityStruct) **string { return &r.Alias }),
).Require("struct", "feature", "requires")

var spirvEnableProperties = record.New("enable-property",
	record.Text("property", func(r *SpirvCapabilityProperty) *string { return &r.Property }),
	record.Text("member", func(r *SpirvCapabilityProperty) *string { return &r.Member }),
	record.Text("value", func(r *SpirvCapabilityProperty) *string { return &r.Value }),
	record.Text("requires", func(r *SpirvCapabilityProperty) *string { return &r.Requires }),
).Require("property", "member", "value", "requires")

// extensionEnablePriority classifies <enable> tags inside a SPIR-V
// extension, which name only versions and extensions.
var extensionEnablePriority = Priority{
	Tag:   "enable",
	Keys:  []string{"version", "extension"},
	Known: knownKeys(spirvEnableVersions, spirvEnableExtensions),
}

func (p *parser) spirvExtensions(tok element.Token) error {
	if _, err := build(p, containers, tok); err != nil {
		return err
	}
	return p.children(tok, func(child element.Token) error {
		if !child.Is("spirvextension") {
			return p.unexpected(child, "<spirvextension>")
		}
		n, err := build(p, spirvNames, child)
		if err != nil {
			return err
		}
		rec := SpirvExtension{Name: n.Name}
		err = p.enables(child, extensionEnablePriority, func(key string, e element.Token) error {
			return p.enableVersionOrExtension(key, e, &rec.Versions, &rec.Extensions)
		})
		if err != nil {
			return err
		}
		p.reg.SpirvExtensions = append(p.reg.SpirvExtensions, rec)
		p.emit("spirvextension", rec.Name, false)
		return nil
	})
}

func (p *parser) spirvCapabilities(tok element.Token) error {
	if _, err := build(p, containers, tok); err != nil {
		return err
	}
	return p.children(tok, func(child element.Token) error {
		if !child.Is("spirvcapability") {
			return p.unexpected(child, "<spirvcapability>")
		}
		n, err := build(p, spirvNames, child)
		if err != nil {
			return err
		}
		rec := SpirvCapability{Name: n.Name}
		err = p.enables(child, EnablePriority, func(key string, e element.Token) error {
			switch key {
			case "struct":
				s, err := build(p, spirvEnableStructs, e)
				if err != nil {
					return err
				}
				rec.Structs = append(rec.Structs, s)
				return nil
			case "property":
				pr, err := build(p, spirvEnableProperties, e)
				if err != nil {
					return err
				}
				rec.Properties = append(rec.Properties, pr)
				return nil
			}
			return p.enableVersionOrExtension(key, e, &rec.Versions, &rec.Extensions)
		})
		if err != nil {
			return err
		}
		p.reg.SpirvCapabilities = append(p.reg.SpirvCapabilities, rec)
		p.emit("spirvcapability", rec.Name, false)
		return nil
	})
}

// enables calls fn with the classified key of each <enable/> child of
// tok.
func (p *parser) enables(tok element.Token, pr Priority, fn func(key string, e element.Token) error) error {
	return p.children(tok, func(child element.Token) error {
		if !child.IsEmpty("enable") {
			return p.unexpected(child, "<enable/>")
		}
		_, key, err := p.classify(child, pr)
		if err != nil {
			return err
		}
		if err := fn(key, child); err != nil {
			return err
		}
		p.emit("enable", key, true)
		return nil
	})
}

func (p *parser) enableVersionOrExtension(key string, e element.Token, versions, exts *[]string) error {
	if key == "version" {
		v, err := build(p, spirvEnableVersions, e)
		if err != nil {
			return err
		}
		*versions = append(*versions, v.Version)
		return nil
	}
	x, err := build(p, spirvEnableExtensions, e)
	if err != nil {
		return err
	}
	*exts = append(*exts, x.Extension)
	return nil
}
