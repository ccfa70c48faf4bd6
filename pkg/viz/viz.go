// Package viz renders STAC catalog trees as Graphviz diagrams.
package viz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/stacforge/gostac/pkg/stac"
)

// Options configures catalog diagram rendering.
type Options struct {
	// Detailed includes titles and item counts in node labels.
	// When false, only the object ID is shown.
	Detailed bool
	// IncludeItems adds one node per item. Large catalogs are usually more
	// readable without them.
	IncludeItems bool
}

// ToDOT converts a catalog tree to Graphviz DOT format. Catalogs render as
// boxes, collections as double-bordered boxes and items as ellipses. The
// resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// The whole tree is resolved during conversion, which may perform I/O.
func ToDOT(ctx context.Context, cat stac.Container, opts Options) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	err := cat.Walk(ctx, func(c stac.Container, children []stac.Container, items []*stac.Item) error {
		attrs := containerAttrs(c, len(items), opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", c.ID(), strings.Join(attrs, ", "))

		for _, child := range children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.ID(), child.ID())
		}
		if opts.IncludeItems {
			for _, item := range items {
				fmt.Fprintf(&buf, "  %q [shape=ellipse, style=filled, fillcolor=lightyellow];\n", item.ID())
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", c.ID(), item.ID())
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func containerAttrs(c stac.Container, itemCount int, detailed bool) []string {
	label := c.ID()
	if detailed {
		parts := []string{string(c.Type())}
		if title := containerTitle(c); title != "" {
			parts = append(parts, title)
		}
		if itemCount > 0 {
			parts = append(parts, fmt.Sprintf("%d items", itemCount))
		}
		label = c.ID() + "\n" + strings.Join(parts, "\n")
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if c.Type() == stac.TypeCollection {
		attrs = append(attrs, "peripheries=2", "fillcolor=lightblue")
	}
	return attrs
}

func containerTitle(c stac.Container) string {
	switch t := c.(type) {
	case *stac.Catalog:
		return t.Title
	case *stac.Collection:
		return t.Title
	}
	return ""
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
