package registry

import (
	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/record"
)

// Platform is a window-system or OS platform namespace.
type Platform struct {
	Name    string
	Protect string
	Comment string
}

// VendorTag is an author prefix reserved for extension names.
type VendorTag struct {
	Name    string
	Author  string
	Contact string
}

var platforms = record.New("platform",
	record.Text("name", func(r *Platform) *string { return &r.Name }),
	record.Text("protect", func(r *Platform) *string { return &r.Protect }),
	record.Text("comment", func(r *Platform) *string { return &r.Comment }),
).Require("name", "protect", "comment")

var vendorTags = record.New("tag",
	record.Text("name", func(r *VendorTag) *string { return &r.Name }),
	record.Text("author", func(r *VendorTag) *string { return &r.Author }),
	record.Text("contact", func(r *VendorTag) *string { return &r.Contact }),
).Require("name", "author", "contact")

func (p *parser) platforms(tok element.Token) error {
	if _, err := build(p, containers, tok); err != nil {
		return err
	}
	return p.children(tok, func(child element.Token) error {
		if !child.IsEmpty("platform") {
			return p.unexpected(child, "<platform/>")
		}
		rec, err := build(p, platforms, child)
		if err != nil {
			return err
		}
		p.reg.Platforms = append(p.reg.Platforms, rec)
		p.emit(platforms.Kind(), rec.Name, false)
		return nil
	})
}

func (p *parser) tags(tok element.Token) error {
	if _, err := build(p, containers, tok); err != nil {
		return err
	}
	return p.children(tok, func(child element.Token) error {
		if !child.IsEmpty("tag") {
			return p.unexpected(child, "<tag/>")
		}
		rec, err := build(p, vendorTags, child)
		if err != nil {
			return err
		}
		p.reg.VendorTags = append(p.reg.VendorTags, rec)
		p.emit(vendorTags.Kind(), rec.Name, false)
		return nil
	})
}
