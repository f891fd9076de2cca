// Package structly validates structured values against declarative schemas.
// A schema document maps type names to constraints; loading compiles it once
// into an immutable SchemaSet that validates many documents concurrently.
package structly

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/structly/structly/errors"
	"github.com/structly/structly/internal/eval"
	"github.com/structly/structly/internal/loader"
	"github.com/structly/structly/internal/report"
)

// SchemaSet holds the compiled definitions of one schema document.
// It is safe for concurrent use by multiple goroutines.
type SchemaSet struct {
	defs     map[string]*loader.Definition
	maxDepth int
	logger   zerolog.Logger
	pool     sync.Pool
}

// LoadSchemas compiles a decoded schema document. The document maps type
// names to constraint mappings; every name reference is resolved and every
// bound checked here, so Validate never reports schema faults as failures.
func LoadSchemas(doc map[string]any, opts ...Option) (*SchemaSet, error) {
	cfg := applyOptions(opts)

	defs, err := loader.Load(doc, loader.Options{
		Strict:            cfg.strict,
		AllowTypeOverride: cfg.allowTypeOverride,
	})
	if err != nil {
		cfg.logger.Debug().Err(err).Msg("schema load failed")
		return nil, err
	}

	s := &SchemaSet{
		defs:     defs,
		maxDepth: cfg.maxDepth,
		logger:   cfg.logger,
	}
	s.pool.New = func() any {
		return eval.NewSession(s.maxDepth)
	}
	s.logger.Debug().Int("definitions", len(defs)).Msg("schema set compiled")
	return s, nil
}

// Validate checks doc against the named definition using a pooled session.
// A report with failures is not an error: the error return carries engine
// faults only, such as an unknown definition name or an exceeded depth limit.
func (s *SchemaSet) Validate(name string, doc any) (*Report, error) {
	if s == nil || s.defs == nil {
		return nil, fmt.Errorf("validate: schema set not loaded")
	}
	def, ok := s.defs[name]
	if !ok {
		return nil, &errors.UnknownTypeError{Name: name}
	}

	session := s.acquire()
	failures, err := session.Evaluate(def.Root, doc)
	s.release(session)
	if err != nil {
		s.logger.Debug().Err(err).Str("definition", name).Msg("evaluation fault")
		return nil, err
	}

	normalized := report.Normalize(failures)
	s.logger.Debug().
		Str("definition", name).
		Int("failures", len(normalized)).
		Msg("document validated")
	return &Report{
		Schema:   name,
		Valid:    len(normalized) == 0,
		Failures: normalized,
	}, nil
}

// Definitions returns the loaded definition names, sorted.
func (s *SchemaSet) Definitions() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.defs))
	for name := range s.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Description returns the description of the named definition, if any.
func (s *SchemaSet) Description(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	def, ok := s.defs[name]
	if !ok {
		return "", false
	}
	return def.Description, true
}

func (s *SchemaSet) acquire() *eval.Session {
	if v := s.pool.Get(); v != nil {
		return v.(*eval.Session)
	}
	return eval.NewSession(s.maxDepth)
}

func (s *SchemaSet) release(session *eval.Session) {
	if session == nil {
		return
	}
	session.Reset()
	s.pool.Put(session)
}
