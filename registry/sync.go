package registry

import (
	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/record"
)

// SyncStage is a pipeline stage flag and the queues supporting it.
type SyncStage struct {
	Name       string
	Alias      *string
	Support    *SyncSupport
	Equivalent *SyncEquivalent
}

// SyncAccess is an access flag and the stages it may be used with.
type SyncAccess struct {
	Name       string
	Alias      *string
	Support    *SyncSupport
	Equivalent *SyncEquivalent
	Comments   []string
}

// SyncSupport lists the queues and stages supporting a stage or access.
type SyncSupport struct {
	Queues *string
	Stage  *string
}

// SyncEquivalent lists the stages and accesses a stage or access stands
// for.
type SyncEquivalent struct {
	Stage  *string
	Access *string
}

// SyncPipeline is the ordered list of stages of one pipeline type.
type SyncPipeline struct {
	Name    string
	Depends *string
	Stages  []SyncPipelineStage
}

// SyncPipelineStage is one stage of a pipeline with its ordering hints.
type SyncPipelineStage struct {
	Stage  string
	Order  *string
	Before *string
	After  *string
}

var syncStages = record.New("syncstage",
	record.Text("name", func(r *SyncStage) *string { return &r.Name }),
	record.OptText("alias", func(r *SyncStage) **string { return &r.Alias }),
).Require("name")

var syncAccesses = record.New("syncaccess",
	record.Text("name", func(r *SyncAccess) *string { return &r.Name }),
	record.OptText("alias", func(r *SyncAccess) **string { return &r.Alias }),
).Require("name")

var syncSupports = record.New("syncsupport",
	record.OptText("queues", func(r *SyncSupport) **string { return &r.Queues }),
	record.OptText("stage", func(r *SyncSupport) **string { return &r.Stage }),
)

var syncEquivalents = record.New("syncequivalent",
	record.OptText("stage", func(r *SyncEquivalent) **string { return &r.Stage }),
	record.OptText("access", func(r *SyncEquivalent) **string { return &r.Access }),
)

var syncPipelines = record.New("syncpipeline",
	record.Text("name", func(r *SyncPipeline) *string { return &r.Name }),
	record.OptText("depends", func(r *SyncPipeline) **string { return &r.Depends }),
).Require("name")

var syncPipelineStages = record.New("syncpipelinestage",
	record.OptText("order", func(r *SyncPipelineStage) **string { return &r.Order }),
	record.OptText("before", func(r *SyncPipelineStage) **string { return &r.Before }),
	record.OptText("after", func(r *SyncPipelineStage) **string { return &r.After }),
)

func (p *parser) sync(tok element.Token) error {
	if _, err := build(p, containers, tok); err != nil {
		return err
	}
	return p.children(tok, func(child element.Token) error {
		switch {
		case child.Is("syncstage"):
			return p.syncStage(child)
		case child.Is("syncaccess"):
			return p.syncAccess(child)
		case child.Is("syncpipeline"):
			return p.syncPipeline(child)
		case child.IsStart("comment"):
			_, err := p.comment(child)
			return err
		}
		return p.unexpected(child, "<syncstage>, <syncaccess> or <syncpipeline>")
	})
}

// syncDetail parses the <syncsupport/> and <syncequivalent/> children
// shared by stages and accesses. Each may appear once.
func (p *parser) syncDetail(tok element.Token, support **SyncSupport, equivalent **SyncEquivalent, comments *[]string) error {
	return p.children(tok, func(child element.Token) error {
		switch {
		case child.IsEmpty("syncsupport") && *support == nil:
			s, err := build(p, syncSupports, child)
			if err != nil {
				return err
			}
			*support = &s
		case child.IsEmpty("syncequivalent") && *equivalent == nil:
			e, err := build(p, syncEquivalents, child)
			if err != nil {
				return err
			}
			*equivalent = &e
		case child.IsStart("comment") && comments != nil:
			text, err := p.comment(child)
			if err != nil {
				return err
			}
			*comments = append(*comments, text)
		default:
			return p.unexpected(child, "<syncsupport/> or <syncequivalent/>")
		}
		return nil
	})
}

func (p *parser) syncStage(tok element.Token) error {
	rec, err := build(p, syncStages, tok)
	if err != nil {
		return err
	}
	if err := p.syncDetail(tok, &rec.Support, &rec.Equivalent, nil); err != nil {
		return err
	}
	p.reg.SyncStages = append(p.reg.SyncStages, rec)
	p.emit(syncStages.Kind(), rec.Name, false)
	return nil
}

func (p *parser) syncAccess(tok element.Token) error {
	rec, err := build(p, syncAccesses, tok)
	if err != nil {
		return err
	}
	if err := p.syncDetail(tok, &rec.Support, &rec.Equivalent, &rec.Comments); err != nil {
		return err
	}
	p.reg.SyncAccesses = append(p.reg.SyncAccesses, rec)
	p.emit(syncAccesses.Kind(), rec.Name, false)
	return nil
}

func (p *parser) syncPipeline(tok element.Token) error {
	rec, err := build(p, syncPipelines, tok)
	if err != nil {
		return err
	}
	err = p.children(tok, func(child element.Token) error {
		if !child.IsStart("syncpipelinestage") {
			return p.unexpected(child, "<syncpipelinestage>")
		}
		st, err := build(p, syncPipelineStages, child)
		if err != nil {
			return err
		}
		if st.Stage, err = p.expectText("pipeline stage name"); err != nil {
			return err
		}
		if err := p.expectEnd(child.Name); err != nil {
			return err
		}
		rec.Stages = append(rec.Stages, st)
		p.emit(syncPipelineStages.Kind(), st.Stage, true)
		return nil
	})
	if err != nil {
		return err
	}
	p.reg.SyncPipelines = append(p.reg.SyncPipelines, rec)
	p.emit(syncPipelines.Kind(), rec.Name, false)
	return nil
}
