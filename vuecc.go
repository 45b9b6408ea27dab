// Package vuecc compiles Vue 2 single-file components into ECMAScript
// modules carrying a generated render function. The parsing and code
// generation core lives in the sfc package; this package is the host-facing
// surface: file-id classification, transform dispatch and diagnostics.
package vuecc

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vuecc/vuecc/sfc"
)

// ParsedID classifies a build-tool file identifier of the form <path> or
// <path>?<query>. Only main requests for .vue paths are compiled.
type ParsedID struct {
	Path   string
	Query  string
	IsVue  bool
	IsMain bool
}

// ParseID splits id at the first '?'.
func ParseID(id string) ParsedID {
	path, query, found := strings.Cut(id, "?")
	return ParsedID{
		Path:   path,
		Query:  query,
		IsVue:  strings.HasSuffix(path, ".vue"),
		IsMain: !found,
	}
}

// Result is the output of a successful transform.
type Result struct {
	Code string
}

// Compiler transforms .vue sources. The zero value is ready to use; Logger,
// when set, receives a debug record per transform.
type Compiler struct {
	Logger *slog.Logger
}

func (cc *Compiler) logger() *slog.Logger {
	if cc.Logger != nil {
		return cc.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Transform compiles source when id names a main .vue document. It returns
// (nil, nil) for identifiers the compiler does not handle.
func (cc *Compiler) Transform(source, id string) (*Result, error) {
	pid := ParseID(id)
	if !pid.IsVue {
		return nil, nil
	}
	if !pid.IsMain {
		cc.logger().Debug("skipping non-main vue request", slog.String("id", id))
		return nil, nil
	}
	code, err := sfc.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", id, err)
	}
	cc.logger().Debug("transformed", slog.String("id", id), slog.Int("bytes", len(code)))
	return &Result{Code: code}, nil
}

// Transform runs a zero-value Compiler.
func Transform(source, id string) (*Result, error) {
	var cc Compiler
	return cc.Transform(source, id)
}
