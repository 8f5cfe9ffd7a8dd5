// Package compiler runs the front end and SSA construction over one source file.
package compiler

import (
	"fmt"
	"os"
	"time"

	"goc/grammar"
	"goc/internal/errors"
	"goc/internal/ir"
	"goc/internal/semantic"

	"github.com/tliron/commonlog"
)

// Options selects how far compilation goes and how SSA is built
type Options struct {
	IR  ir.Options
	SSA bool // false stops after lowering to a control-flow graph
}

// DefaultOptions builds verified SSA form with the reachability dominator algorithm
func DefaultOptions() Options {
	return Options{IR: ir.DefaultOptions(), SSA: true}
}

// Result holds whatever the pipeline produced before it stopped
type Result struct {
	Path     string
	Source   string
	Program  *grammar.Program
	Function *ir.Function // nil when an error stopped compilation
	Errors   []errors.CompilerError
	Duration time.Duration
}

// Failed reports whether any diagnostic is an error
func (r *Result) Failed() bool {
	for _, err := range r.Errors {
		if err.Level == errors.Error {
			return true
		}
	}
	return false
}

// Format renders every diagnostic with source context
func (r *Result) Format() string {
	return errors.NewErrorReporter(r.Path, r.Source).FormatErrors(r.Errors)
}

// CompileFile reads path and compiles it
func CompileFile(path string, opts Options) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Compile(path, string(source), opts), nil
}

// Compile parses, checks and lowers source, then builds SSA form. Syntax
// errors stop before semantic analysis and semantic errors stop before
// lowering. Warnings do not stop anything.
func Compile(path, source string, opts Options) *Result {
	log := commonlog.GetLogger("goc.compiler")
	start := time.Now()
	r := &Result{Path: path, Source: source}
	defer func() { r.Duration = time.Since(start) }()

	program, err := grammar.ParseString(path, source)
	if err != nil {
		r.Errors = []errors.CompilerError{errors.SyntaxError(err)}
		return r
	}
	r.Program = program

	analyzer := semantic.NewAnalyzer()
	r.Errors = analyzer.Analyze(program)
	if analyzer.HasErrors() {
		log.Debugf("%s: %d semantic diagnostics", path, len(r.Errors))
		return r
	}

	name, body := program.Main()
	fn := ir.Lower(name, body)
	if !opts.SSA {
		r.Function = fn
		return r
	}
	if err := ir.Construct(fn, opts.IR); err != nil {
		log.Errorf("%s: %s", path, err)
		r.Errors = append(r.Errors, errors.InternalError(err))
		return r
	}
	r.Function = fn
	return r
}
