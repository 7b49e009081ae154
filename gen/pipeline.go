package gen

import (
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/predef/decl"
	"github.com/teranos/predef/errors"
	"github.com/teranos/predef/object"
)

// Generator is implemented by namespaces that build their declaration
// tree themselves instead of going through Walk and the standard passes.
// Drivers consult it before falling back to Pipeline.Generate.
type Generator interface {
	Generate(log *zap.SugaredLogger) (*decl.Module, error)
}

// Pipeline turns live namespaces into processed declaration trees. The
// per-namespace extra-pass table is its only state that outlives a run;
// registration must finish before generation starts.
type Pipeline struct {
	mu     sync.RWMutex
	extras map[string][]Pass
	log    *zap.SugaredLogger
}

func NewPipeline(log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		extras: make(map[string][]Pass),
		log:    log,
	}
}

// RegisterNamespacePasses appends extra passes for the named namespace.
// Registration is additive: repeated calls extend the existing sequence.
func (p *Pipeline) RegisterNamespacePasses(name string, passes ...Pass) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.extras[name] = append(p.extras[name], passes...)
}

func (p *Pipeline) passesFor(name string) []Pass {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.extras[name]
}

// Generate walks ns into a declaration tree and runs the full processing
// sequence over it.
func (p *Pipeline) Generate(ns object.Namespace) (*decl.Module, error) {
	run, err := NewRun(ns, p.log)
	if err != nil {
		return nil, err
	}
	if err := run.Walk(); err != nil {
		return nil, err
	}
	run.log.Debugw("Walked namespace", "declarations", len(run.Module().Body))

	if err := run.Process(p.passesFor(ns.Name())...); err != nil {
		return nil, errors.Wrapf(err, "processing namespace %s", ns.Name())
	}
	return run.Module(), nil
}

// Process reworks the walked tree in the fixed order: redundancy
// elimination, hierarchy sequencing, import deduplication, assignment
// moves, the given extra passes, empty-body fixup.
func (r *Run) Process(extras ...Pass) error {
	module := r.Module()

	if err := r.eliminateRedundancy(module); err != nil {
		return err
	}
	r.sequenceHierarchy(module)
	dedupeImports(module)
	moveAssignsToEnd(module)
	moveClassAssignsBeforeRoutines(module)
	for _, pass := range extras {
		pass(module)
	}
	fixEmptyClassBodies(module)

	r.log.Debugw("Processed namespace",
		"declarations", len(module.Body),
		"extra_passes", len(extras))
	return nil
}
