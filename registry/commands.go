package registry

import (
	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/record"
	"github.com/andaru/vkregistry/regerr"
	"github.com/andaru/vkregistry/shape"
	"github.com/pkg/errors"
)

// Command is an API entry point. Name and return type come from Proto.
type Command struct {
	Name                     string
	Proto                    shape.Decl
	Params                   []Param
	ImplicitExternSyncParams []string
	SuccessCodes             *string
	ErrorCodes               *string
	Queues                   *string
	RenderPass               *string
	CmdBufferLevel           *string
	Tasks                    *string
	VideoCoding              *string
	API                      *string
	Comment                  *string
	Export                   *string
	AllowNoQueues            *string
	ConditionalRendering     *string
}

// Param is one command parameter.
type Param struct {
	shape.Decl
	Optional       *string
	ExternSync     *string
	Len            *string
	AltLen         *string
	API            *string
	Stride         *string
	ObjectType     *string
	ValidStructs   *string
	Deprecated     *string
	NoAutoValidity bool
}

// CommandAlias is an alternative name for a command.
type CommandAlias struct {
	Name    string
	Alias   string
	API     *string
	Comment *string
}

var commands = record.New("command",
	record.OptText("successcodes", func(r *Command) **string { return &r.SuccessCodes }),
	record.OptText("errorcodes", func(r *Command) **string { return &r.ErrorCodes }),
	record.OptText("queues", func(r *Command) **string { return &r.Queues }),
	record.OptText("renderpass", func(r *Command) **string { return &r.RenderPass }),
	record.OptText("cmdbufferlevel", func(r *Command) **string { return &r.CmdBufferLevel }),
	record.OptText("tasks", func(r *Command) **string { return &r.Tasks }),
	record.OptText("videocoding", func(r *Command) **string { return &r.VideoCoding }),
	record.OptText("api", func(r *Command) **string { return &r.API }),
	record.OptText("comment", func(r *Command) **string { return &r.Comment }),
	record.OptText("export", func(r *Command) **string { return &r.Export }),
	record.OptText("allownoqueues", func(r *Command) **string { return &r.AllowNoQueues }),
	record.OptText("conditionalrendering", func(r *Command) **string { return &r.ConditionalRendering }),
)

var params = record.New("param",
	record.OptText("optional", func(r *Param) **string { return &r.Optional }),
	record.OptText("externsync", func(r *Param) **string { return &r.ExternSync }),
	record.OptText("len", func(r *Param) **string { return &r.Len }),
	record.OptText("altlen", func(r *Param) **string { return &r.AltLen }),
	record.OptText("api", func(r *Param) **string { return &r.API }),
	record.OptText("stride", func(r *Param) **string { return &r.Stride }),
	record.OptText("objecttype", func(r *Param) **string { return &r.ObjectType }),
	record.OptText("validstructs", func(r *Param) **string { return &r.ValidStructs }),
	record.OptText("deprecated", func(r *Param) **string { return &r.Deprecated }),
	record.Flag("noautovalidity", func(r *Param) *bool { return &r.NoAutoValidity }),
)

var commandAliases = record.New("command-alias",
	record.Text("name", func(r *CommandAlias) *string { return &r.Name }),
	record.Text("alias", func(r *CommandAlias) *string { return &r.Alias }),
	record.OptText("api", func(r *CommandAlias) **string { return &r.API }),
	record.OptText("comment", func(r *CommandAlias) **string { return &r.Comment }),
).Require("name", "alias")

func (p *parser) commands(tok element.Token) error {
	if _, err := build(p, containers, tok); err != nil {
		return err
	}
	return p.children(tok, func(child element.Token) error {
		switch {
		case child.IsStart("command"):
			return p.command(child)
		case child.IsEmpty("command"):
			rec, err := build(p, commandAliases, child)
			if err != nil {
				return err
			}
			p.reg.CommandAliases = append(p.reg.CommandAliases, rec)
			p.emit(commandAliases.Kind(), rec.Name, false)
			return nil
		}
		return p.unexpected(child, "<command>")
	})
}

func (p *parser) command(tok element.Token) error {
	rec, err := build(p, commands, tok)
	if err != nil {
		return err
	}
	seenProto := false
	err = p.children(tok, func(child element.Token) error {
		var err error
		switch {
		case child.IsStart("proto") && !seenProto && len(rec.Params) == 0:
			if err = p.noAttrs(child); err != nil {
				return err
			}
			if rec.Proto, err = shape.Infer(p, "proto", shape.Proto); err != nil {
				return regerr.Annotate(err, regerr.WithPath(p.pathString()))
			}
			rec.Name, seenProto = rec.Proto.Name, true
		case child.IsStart("param") && seenProto && rec.ImplicitExternSyncParams == nil:
			prm, err := build(p, params, child)
			if err != nil {
				return err
			}
			if prm.Decl, err = shape.Infer(p, "param", shape.Param); err != nil {
				return regerr.Annotate(err, regerr.WithPath(p.pathString()), regerr.WithRaw(child.Attrs))
			}
			rec.Params = append(rec.Params, prm)
			p.emit(params.Kind(), prm.Name, true)
		case child.IsStart("implicitexternsyncparams") && seenProto && rec.ImplicitExternSyncParams == nil:
			return p.implicitExternSyncParams(child, &rec)
		default:
			return p.unexpected(child, "<proto>, <param> or <implicitexternsyncparams>")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !seenProto {
		return errors.WithStack(regerr.MissingRequiredAttribute("proto", commands.Kind(),
			regerr.WithRaw(tok.Attrs), regerr.WithPath(p.pathString()+"/"+tok.Name)))
	}
	p.reg.Commands = append(p.reg.Commands, rec)
	p.emit(commands.Kind(), rec.Name, false)
	return nil
}

func (p *parser) implicitExternSyncParams(tok element.Token, rec *Command) error {
	if err := p.noAttrs(tok); err != nil {
		return err
	}
	rec.ImplicitExternSyncParams = []string{}
	err := p.children(tok, func(child element.Token) error {
		if !child.IsStart("param") {
			return p.unexpected(child, "<param>")
		}
		text, err := p.text(child)
		if err != nil {
			return err
		}
		rec.ImplicitExternSyncParams = append(rec.ImplicitExternSyncParams, text)
		return nil
	})
	if err != nil {
		return err
	}
	if len(rec.ImplicitExternSyncParams) == 0 {
		return errors.WithStack(regerr.MissingRequiredAttribute("param", "implicitexternsyncparams",
			regerr.WithPath(p.pathString())))
	}
	return nil
}

// DispatchTable is the function table a loader places a command in,
// selected by the type of its first parameter.
type DispatchTable int

const (
	GlobalTable DispatchTable = iota
	InstanceTable
	DeviceTable
)

func (t DispatchTable) String() string {
	switch t {
	case InstanceTable:
		return "instance"
	case DeviceTable:
		return "device"
	}
	return "global"
}

var dispatchTables = map[string]DispatchTable{
	"VkInstance":       InstanceTable,
	"VkPhysicalDevice": InstanceTable,
	"VkDevice":         DeviceTable,
	"VkQueue":          DeviceTable,
	"VkCommandBuffer":  DeviceTable,
}

// Table returns the dispatch table of c.
func (c *Command) Table() DispatchTable {
	if len(c.Params) == 0 || c.Params[0].Shape.Kind != shape.Value {
		return GlobalTable
	}
	return dispatchTables[c.Params[0].BaseType]
}
