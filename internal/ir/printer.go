package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Printer provides pretty-printing for IR
type Printer struct {
	indent int
	output strings.Builder
}

// NewPrinter creates a new IR printer
func NewPrinter() *Printer {
	return &Printer{indent: 0}
}

// PrintDot renders the graph in Graphviz dot syntax: one boxed node per block
// labelled with its statements, then one edge line per successor link
func PrintDot(g *Graph) string {
	p := NewPrinter()
	p.printDot(g)
	return p.output.String()
}

// PrintListing renders fn block by block with predecessors, immediate
// dominator, dominance frontier and statements
func PrintListing(fn *Function) string {
	p := NewPrinter()
	p.printListing(fn)
	return p.output.String()
}

// Helper methods

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) write(format string, args ...interface{}) {
	p.output.WriteString(fmt.Sprintf(format, args...))
}

func (p *Printer) printDot(g *Graph) {
	p.writeLine("digraph g {")
	p.indent++
	p.writeLine("node [shape = box]")
	for _, v := range g.Vertices {
		p.writeIndent()
		p.write("%d [label=\"%d:\\l", v.Number, v.Number)
		for _, s := range v.Stmts {
			p.write("%s\\l", dotEscape(s.String()))
		}
		p.write("\"]\n")
	}
	for _, v := range g.Vertices {
		for _, s := range v.Succs {
			p.writeLine("%d -> %d", v.Number, g.Vertices[s].Number)
		}
	}
	p.indent--
	p.writeLine("}")
}

func dotEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func (p *Printer) printListing(fn *Function) {
	g := fn.Graph
	form := "CFG"
	if fn.SSA {
		form = "SSA"
	}
	p.writeLine("FUNCTION %s (%s)", fn.Name, form)
	p.writeLine("")

	for _, v := range g.Vertices {
		if !v.Reachable && g.Dominated() {
			p.writeLine("block %d: (unreachable)", v.Number)
		} else {
			p.writeLine("block %d:", v.Number)
		}
		p.indent++
		p.writeLine("; preds: %s", p.blockList(g, v.Preds))
		if g.Dominated() && v.Reachable {
			idom := "-"
			if v.Idom != NoVertex {
				idom = strconv.Itoa(g.Vertices[v.Idom].Number)
			}
			p.writeLine("; idom: %s", idom)
		}
		if g.HasFrontiers() && v.Reachable {
			p.writeLine("; df: %s", p.blockList(g, g.Frontier(v.Index)))
		}
		for _, s := range v.Stmts {
			p.writeLine("%s", s)
		}
		p.indent--
	}
}

func (p *Printer) blockList(g *Graph, idx []int) string {
	if len(idx) == 0 {
		return "-"
	}
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = strconv.Itoa(g.Vertices[n].Number)
	}
	return strings.Join(parts, ", ")
}
