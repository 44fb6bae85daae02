// Package visualize renders decision trees and training curves to
// image files.
package visualize

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/groveml/grove/pkg/errors"
	"github.com/groveml/grove/tree"
)

// TreeFormats maps file extensions to graphviz render formats.
var TreeFormats = map[string]graphviz.Format{
	".png": graphviz.PNG,
	".svg": graphviz.SVG,
	".jpg": graphviz.JPG,
}

// DrawTree renders a fitted tree to path. The output format follows
// the file extension, one of .png, .svg or .jpg.
func DrawTree(t *tree.Tree, path string) error {
	if t == nil || t.Root == nil {
		return errors.NewValueError("DrawTree", "nil tree")
	}
	format, ok := TreeFormats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return errors.NewValueError("DrawTree", "unsupported output extension "+filepath.Ext(path))
	}

	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		return errors.Wrap(err, "creating graph")
	}
	counter := 0
	if _, err := drawNode(graph, t.Root, nil, &counter); err != nil {
		return err
	}
	if err := gv.RenderFilename(graph, format, path); err != nil {
		return errors.Wrapf(err, "rendering %s", path)
	}
	return nil
}

func drawNode(g *cgraph.Graph, n tree.Node, parent *cgraph.Node, counter *int) (*cgraph.Node, error) {
	gn, err := g.CreateNode(fmt.Sprintf("n%d", *counter))
	if err != nil {
		return nil, errors.Wrap(err, "creating graph node")
	}
	*counter++

	if parent != nil {
		if _, err := g.CreateEdge("", parent, gn); err != nil {
			return nil, errors.Wrap(err, "creating graph edge")
		}
	}

	switch node := n.(type) {
	case *tree.Leaf:
		gn.Set("label", leafLabel(node))
		gn.Set("shape", "box")
	case *tree.DecisionNode:
		gn.Set("label", fmt.Sprintf("%s\ngain=%.4f n=%d", node.Question.String(), node.Gain, node.Records))
		if _, err := drawNode(g, node.True, gn, counter); err != nil {
			return nil, err
		}
		if _, err := drawNode(g, node.False, gn, counter); err != nil {
			return nil, err
		}
	}
	return gn, nil
}

func leafLabel(l *tree.Leaf) string {
	if l.Pred.Numeric {
		return fmt.Sprintf("%.4f\nn=%d", l.Pred.Value, len(l.Labels))
	}
	classes := make([]string, 0, len(l.Pred.Dist))
	for c := range l.Pred.Dist {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		parts = append(parts, fmt.Sprintf("%s: %.2f", c, l.Pred.Dist[c]))
	}
	return strings.Join(parts, "\n")
}
