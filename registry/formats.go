package registry

import (
	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/record"
	"github.com/andaru/vkregistry/regerr"
	"github.com/pkg/errors"
)

// Format describes the memory layout of an image format.
type Format struct {
	Name             string
	Class            string
	BlockSize        int
	TexelsPerBlock   int
	Packed           *int
	BlockExtent      *string
	Compressed       *string
	Chroma           *string
	SpirvImageFormat *string
	Components       []FormatComponent
	Planes           []FormatPlane
}

// FormatComponent is one color component of a format. Bits is numeric
// or "compressed".
type FormatComponent struct {
	Name          string
	Bits          string
	NumericFormat string
	PlaneIndex    *int
}

// FormatPlane is one plane of a multi-planar format.
type FormatPlane struct {
	Index         int
	WidthDivisor  int
	HeightDivisor int
	Compatible    string
}

var formats = record.New("format",
	record.Text("name", func(r *Format) *string { return &r.Name }),
	record.Text("class", func(r *Format) *string { return &r.Class }),
	record.Int("blockSize", func(r *Format) *int { return &r.BlockSize }),
	record.Int("texelsPerBlock", func(r *Format) *int { return &r.TexelsPerBlock }),
	record.OptInt("packed", func(r *Format) **int { return &r.Packed }),
	record.OptText("blockExtent", func(r *Format) **string { return &r.BlockExtent }),
	record.OptText("compressed", func(r *Format) **string { return &r.Compressed }),
	record.OptText("chroma", func(r *Format) **string { return &r.Chroma }),
).Require("name", "class", "blockSize", "texelsPerBlock")

var formatComponents = record.New("component",
	record.Text("name", func(r *FormatComponent) *string { return &r.Name }),
	record.Text("bits", func(r *FormatComponent) *string { return &r.Bits }),
	record.Text("numericFormat", func(r *FormatComponent) *string { return &r.NumericFormat }),
	record.OptInt("planeIndex", func(r *FormatComponent) **int { return &r.PlaneIndex }),
).Require("name", "bits", "numericFormat")

var formatPlanes = record.New("plane",
	record.Int("index", func(r *FormatPlane) *int { return &r.Index }),
	record.Int("widthDivisor", func(r *FormatPlane) *int { return &r.WidthDivisor }),
	record.Int("heightDivisor", func(r *FormatPlane) *int { return &r.HeightDivisor }),
	record.Text("compatible", func(r *FormatPlane) *string { return &r.Compatible }),
).Require("index", "widthDivisor", "heightDivisor", "compatible")

func (p *parser) formats(tok element.Token) error {
	if _, err := build(p, containers, tok); err != nil {
		return err
	}
	return p.children(tok, func(child element.Token) error {
		if !child.IsStart("format") {
			return p.unexpected(child, "<format>")
		}
		return p.format(child)
	})
}

func (p *parser) format(tok element.Token) error {
	rec, err := build(p, formats, tok)
	if err != nil {
		return err
	}
	err = p.children(tok, func(child element.Token) error {
		switch {
		case child.IsEmpty("component"):
			c, err := build(p, formatComponents, child)
			if err != nil {
				return err
			}
			rec.Components = append(rec.Components, c)
		case child.IsEmpty("plane"):
			pl, err := build(p, formatPlanes, child)
			if err != nil {
				return err
			}
			rec.Planes = append(rec.Planes, pl)
		case child.IsEmpty("spirvimageformat"):
			if rec.SpirvImageFormat != nil {
				return p.unexpected(child, "</format>")
			}
			ref, err := build(p, references, child)
			if err != nil {
				return err
			}
			rec.SpirvImageFormat = &ref.Name
		default:
			return p.unexpected(child, "<component/>, <plane/> or <spirvimageformat/>")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(rec.Components) == 0 {
		return errors.WithStack(regerr.MissingRequiredAttribute("component", formats.Kind(),
			regerr.WithRaw(tok.Attrs), regerr.WithPath(p.pathString()+"/"+tok.Name)))
	}
	p.reg.Formats = append(p.reg.Formats, rec)
	p.emit(formats.Kind(), rec.Name, false)
	return nil
}
