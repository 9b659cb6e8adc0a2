package fulltext

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/satishbabariya/prisma-go-fts/internal/debug"
	"github.com/satishbabariya/prisma-go-fts/query/cache"
	"github.com/satishbabariya/prisma-go-fts/query/fulltext/condition"
)

// Compiler renders full-text requests. The zero value is not usable; use
// NewCompiler. A Compiler is safe for concurrent use.
type Compiler struct {
	logger             *slog.Logger
	validateConditions bool
	conditions         *cache.LRUCache[error]
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithConditionValidation parses CONTAINS search conditions before
// rendering and rejects malformed ones. The text is still emitted verbatim.
func WithConditionValidation() Option {
	return func(c *Compiler) {
		c.validateConditions = true
	}
}

// WithCache remembers condition validation outcomes for up to size
// distinct conditions.
func WithCache(size int, ttl time.Duration) Option {
	return func(c *Compiler) {
		if size > 0 {
			c.conditions = cache.NewLRUCache[error](size, ttl)
		}
	}
}

// NewCompiler creates a compiler.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = debug.For("fulltext")
	}
	return c
}

var defaultCompiler = NewCompiler()

// CompilePredicate renders FREETEXT(...) or CONTAINS(...) with the default compiler.
func CompilePredicate(req Request) (*Fragment, error) {
	return defaultCompiler.CompilePredicate(req)
}

// CompileTableValued renders FREETEXTTABLE(...) or CONTAINSTABLE(...) with the
// default compiler.
func CompileTableValued(req TableRequest) (*Fragment, error) {
	return defaultCompiler.CompileTableValued(req)
}

// CompilePredicate renders a boolean full-text predicate:
//
//	FREETEXT(target, text[, LANGUAGE lang])
//	CONTAINS(target, condition[, LANGUAGE lang])
func (c *Compiler) CompilePredicate(req Request) (*Fragment, error) {
	if req.Top != nil || req.TopParam != "" {
		return nil, invalid("top", "%s does not accept a top_n_by_rank argument", req.Mode)
	}
	p, err := c.prepare(&req)
	if err != nil {
		return nil, err
	}
	return c.finish(p, req.Mode.String()), nil
}

// CompileTableValued renders a table-valued full-text function:
//
//	FREETEXTTABLE(table, target, text[, LANGUAGE lang][, top])
//	CONTAINSTABLE(table, target, condition[, LANGUAGE lang][, top])
func (c *Compiler) CompileTableValued(req TableRequest) (*Fragment, error) {
	if strings.TrimSpace(req.Table) == "" {
		return nil, invalid("table", "table name is empty")
	}
	p, err := c.prepare(&req.Request)
	if err != nil {
		return nil, err
	}
	p.table = QuoteIdentifier(req.Table)
	return c.finish(p, req.Mode.tableFunction()), nil
}

// CacheStats reports the condition cache statistics. ok is false when the
// compiler has no cache.
func (c *Compiler) CacheStats() (stats cache.Stats, ok bool) {
	if c.conditions == nil {
		return cache.Stats{}, false
	}
	return c.conditions.GetStats(), true
}

func (c *Compiler) prepare(req *Request) (*plan, error) {
	if !req.Mode.valid() {
		return nil, invalid("mode", "unknown full-text mode %d", int(req.Mode))
	}

	target, err := renderTarget(req.Target)
	if err != nil {
		return nil, err
	}

	var b binder
	text, err := textArgument(&b, req)
	if err != nil {
		return nil, err
	}
	lang, err := languageArgument(&b, req.Language)
	if err != nil {
		return nil, err
	}
	top, err := topArgument(&b, req)
	if err != nil {
		return nil, err
	}

	if req.Mode == Contains && c.validateConditions {
		if err := c.checkCondition(req.Text); err != nil {
			return nil, &ValidationError{Field: "text", Message: err.Error()}
		}
	}

	return &plan{
		mode:     req.Mode,
		target:   target,
		text:     text,
		language: lang,
		top:      top,
	}, nil
}

func (c *Compiler) finish(p *plan, fn string) *Fragment {
	frag := &Fragment{SQL: p.render(fn), Params: p.params()}
	c.logger.Debug("compiled full-text fragment", "function", fn, "sql", frag.SQL, "params", len(frag.Params))
	return frag
}

func (c *Compiler) checkCondition(text string) error {
	if c.conditions == nil {
		return condition.Validate(text)
	}

	key := cache.Key("condition", text)
	if err, ok := c.conditions.Get(key); ok {
		return err
	}
	err := condition.Validate(text)
	c.conditions.Set(key, err, 0)
	if err != nil {
		c.logger.Debug("rejected search condition", "condition", text, "error", err)
	}
	return err
}

// MustCompilePredicate is like CompilePredicate but panics on error.
func MustCompilePredicate(req Request) *Fragment {
	frag, err := CompilePredicate(req)
	if err != nil {
		panic(fmt.Sprintf("fulltext: %v", err))
	}
	return frag
}
