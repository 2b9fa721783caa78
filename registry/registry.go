package registry

import (
	"bytes"
	"io"

	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/markup"
)

// Registry is the parsed content of one registry document. Every list
// preserves document order and is non-nil after a successful parse.
type Registry struct {
	Platforms         []Platform
	VendorTags        []VendorTag
	Types             []TypeEntry
	EnumGroups        []EnumGroup
	Constants         []ConstantEntry
	Commands          []Command
	CommandAliases    []CommandAlias
	Features          []Feature
	Extensions        []Extension
	Formats           []Format
	SpirvExtensions   []SpirvExtension
	SpirvCapabilities []SpirvCapability
	SyncStages        []SyncStage
	SyncAccesses      []SyncAccess
	SyncPipelines     []SyncPipeline
}

func newRegistry() *Registry {
	return &Registry{
		Platforms:         []Platform{},
		VendorTags:        []VendorTag{},
		Types:             []TypeEntry{},
		EnumGroups:        []EnumGroup{},
		Constants:         []ConstantEntry{},
		Commands:          []Command{},
		CommandAliases:    []CommandAlias{},
		Features:          []Feature{},
		Extensions:        []Extension{},
		Formats:           []Format{},
		SpirvExtensions:   []SpirvExtension{},
		SpirvCapabilities: []SpirvCapability{},
		SyncStages:        []SyncStage{},
		SyncAccesses:      []SyncAccess{},
		SyncPipelines:     []SyncPipeline{},
	}
}

type config struct {
	sink   Sink
	markup []markup.Option
}

// Option is a Parse option function.
type Option func(*config)

// WithSink sets the diagnostic sink receiving one Event per record.
func WithSink(sink Sink) Option {
	return func(c *config) {
		if sink != nil {
			c.sink = sink
		}
	}
}

// WithMarkupOptions sets options for the tokenizer used by ParseReader
// and ParseBytes.
func WithMarkupOptions(opts ...markup.Option) Option {
	return func(c *config) { c.markup = append(c.markup, opts...) }
}

func newConfig(opts []Option) *config {
	c := &config{sink: NopSink{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parse consumes s, which must hold exactly one <registry> element, and
// returns the Registry it describes. Any token outside the registry
// grammar aborts the parse with an error carrying a *regerr.Error; no
// partial Registry is returned.
func Parse(s element.Stream, opts ...Option) (*Registry, error) {
	p := newParser(s, newConfig(opts))
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.reg, nil
}

// ParseReader tokenizes the document read from r and parses it.
func ParseReader(r io.Reader, opts ...Option) (*Registry, error) {
	c := newConfig(opts)
	p := newParser(markup.NewReader(r, c.markup...), c)
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.reg, nil
}

// ParseBytes parses the document held in b.
func ParseBytes(b []byte, opts ...Option) (*Registry, error) {
	return ParseReader(bytes.NewReader(b), opts...)
}
