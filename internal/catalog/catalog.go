// Package catalog wires every built-in rule set into a registry.
package catalog

import (
	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/internal/analyzer/generic"
	"github.com/buemura/willie/internal/analyzer/infra"
	"github.com/buemura/willie/internal/analyzer/javascript"
	"github.com/buemura/willie/internal/analyzer/python"
	"github.com/buemura/willie/internal/analyzer/rust"
	"github.com/buemura/willie/internal/analyzer/solidity"
	"github.com/buemura/willie/internal/analyzer/web"
)

// Default returns a registry with all built-in rule sets and the generic
// fallback.
func Default() *analyzer.Registry {
	reg := analyzer.NewRegistry(generic.New())
	reg.Register(python.New())
	reg.Register(javascript.New())
	reg.Register(solidity.New())
	reg.Register(rust.New())
	reg.Register(infra.New())
	reg.Register(web.New())
	return reg
}
