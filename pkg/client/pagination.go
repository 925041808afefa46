package client

import (
	"context"

	"github.com/reefdb/reefdb-go/pkg/query"
	"github.com/reefdb/reefdb-go/pkg/values"
)

// Pages drives bidirectional traversal over a paged result set. Cursors come
// exclusively from server responses: the engine round-trips them verbatim and
// never fabricates one.
//
// Map, Filter and the With* options return or configure independent engines;
// deriving several cursors from one base is safe. Page advancement is local
// to the receiver.
type Pages struct {
	runner QueryRunner
	source query.Expr
	params []query.Optional

	before    values.Value
	hasBefore bool
	after     values.Value
	hasAfter  bool

	transforms []func(query.Expr) query.Expr
}

// PagesOpt configures a fresh cursor engine.
type PagesOpt func(*Pages)

// WithSize sets the page size requested from the server.
func WithSize(size int) PagesOpt {
	return func(p *Pages) { p.params = append(p.params, query.Size(size)) }
}

// WithTS pins every page read to a snapshot timestamp.
func WithTS(ts interface{}) PagesOpt {
	return func(p *Pages) { p.params = append(p.params, query.TS(ts)) }
}

// WithAfter pins the starting position for forward traversal.
func WithAfter(cursor values.Value) PagesOpt {
	return func(p *Pages) { p.after, p.hasAfter = cursor, true }
}

// WithBefore pins the starting position for backward traversal. When both
// WithBefore and WithAfter are given, before wins and after is discarded.
func WithBefore(cursor values.Value) PagesOpt {
	return func(p *Pages) { p.before, p.hasBefore = cursor, true }
}

// NewPages builds a cursor engine over the given set. The runner is the only
// collaborator: one query execution per page fetch, nothing else.
func NewPages(runner QueryRunner, set query.Expr, opts ...PagesOpt) *Pages {
	p := &Pages{runner: runner, source: set}
	for _, opt := range opts {
		opt(p)
	}
	if p.hasBefore && p.hasAfter {
		// Documented policy: a pinned before takes precedence.
		p.after, p.hasAfter = nil, false
	}
	return p
}

func (p *Pages) clone() *Pages {
	dup := *p
	dup.params = make([]query.Optional, len(p.params))
	copy(dup.params, p.params)
	dup.transforms = make([]func(query.Expr) query.Expr, len(p.transforms))
	copy(dup.transforms, p.transforms)
	return &dup
}

// Map returns a new engine that applies lambda to every page at fetch time.
// The receiver is left untouched.
func (p *Pages) Map(lambda interface{}) *Pages {
	dup := p.clone()
	dup.transforms = append(dup.transforms, func(e query.Expr) query.Expr {
		return query.Map(e, lambda)
	})
	return dup
}

// Filter returns a new engine that filters every page with lambda at fetch
// time. The receiver is left untouched.
func (p *Pages) Filter(lambda interface{}) *Pages {
	dup := p.clone()
	dup.transforms = append(dup.transforms, func(e query.Expr) query.Expr {
		return query.Filter(e, lambda)
	})
	return dup
}

// NextPage fetches one page forward of the current position and returns its
// data. Cursors reported by the response overwrite the engine's; cursors the
// response omits are left alone.
func (p *Pages) NextPage(ctx context.Context) (values.ArrayV, error) {
	page, err := p.fetch(ctx, false)
	if err != nil {
		return nil, err
	}
	return page.data, nil
}

// PreviousPage fetches one page backward of the current position and returns
// its data.
func (p *Pages) PreviousPage(ctx context.Context) (values.ArrayV, error) {
	page, err := p.fetch(ctx, true)
	if err != nil {
		return nil, err
	}
	return page.data, nil
}

// Each fetches pages forward, invoking callback once per page in order, until
// a response arrives without an after cursor. Page N+1 is never requested
// before page N's callback returns; a non-nil callback error stops traversal.
func (p *Pages) Each(ctx context.Context, callback func(values.ArrayV) error) error {
	cursor := p.clone()
	for {
		page, err := cursor.fetch(ctx, false)
		if err != nil {
			return err
		}
		if err := callback(page.data); err != nil {
			return err
		}
		if !page.hasAfter {
			return nil
		}
	}
}

// EachReverse is Each in the other direction, terminating when a response
// arrives without a before cursor.
func (p *Pages) EachReverse(ctx context.Context, callback func(values.ArrayV) error) error {
	cursor := p.clone()
	for {
		page, err := cursor.fetch(ctx, true)
		if err != nil {
			return err
		}
		if err := callback(page.data); err != nil {
			return err
		}
		if !page.hasBefore {
			return nil
		}
	}
}

type page struct {
	data      values.ArrayV
	hasBefore bool
	hasAfter  bool
}

func (p *Pages) buildExpr(reverse bool) query.Expr {
	params := make([]query.Optional, len(p.params), len(p.params)+1)
	copy(params, p.params)
	if reverse {
		if p.hasBefore {
			params = append(params, query.Before(p.before))
		}
	} else {
		if p.hasAfter {
			params = append(params, query.After(p.after))
		}
	}

	expr := query.Paginate(p.source, params...)
	for _, transform := range p.transforms {
		expr = transform(expr)
	}
	return expr
}

// fetch issues exactly one page request and folds the response cursors back
// into the engine. Only cursors the response actually reports are updated: an
// absent cursor is not a statement about remaining data.
func (p *Pages) fetch(ctx context.Context, reverse bool) (page, error) {
	res, err := p.runner.Query(ctx, p.buildExpr(reverse))
	if err != nil {
		return page{}, err
	}

	obj, ok := res.(values.ObjectV)
	if !ok {
		return page{}, values.DecodeError{Reason: "paginated response is not an object"}
	}
	data, ok := obj["data"].(values.ArrayV)
	if !ok {
		return page{}, values.DecodeError{Reason: "paginated response missing data array"}
	}

	var result page
	result.data = data
	if before, reported := obj["before"]; reported {
		p.before, p.hasBefore = before, true
		result.hasBefore = true
	}
	if after, reported := obj["after"]; reported {
		p.after, p.hasAfter = after, true
		result.hasAfter = true
	}
	return result, nil
}
