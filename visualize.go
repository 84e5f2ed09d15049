package avl

import (
	"fmt"
	"io"

	"github.com/emicklei/dot"
)

// WriteDOTGraph renders the subtree at root in graphviz format. Nodes are
// labelled "key (height)"; edges are labelled l and r.
func WriteDOTGraph(w io.Writer, root *Node) error {
	_, err := io.WriteString(w, dotGraph(root, nil).String())
	return err
}

// WriteDOTGraphDiff renders root and colors red the nodes and edges missing
// from last, e.g. the graph before a mutation.
func WriteDOTGraphDiff(w io.Writer, root *Node, last *dot.Graph) error {
	_, err := io.WriteString(w, dotGraph(root, last).String())
	return err
}

// DOTGraph returns the graph of the subtree at root.
func DOTGraph(root *Node) *dot.Graph {
	return dotGraph(root, nil)
}

func dotGraph(root *Node, lastGraph *dot.Graph) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)

	var traverse func(node *Node) dot.Node
	traverse = func(node *Node) dot.Node {
		nodeKey := fmt.Sprintf("%d", node.key)
		nodeLabel := fmt.Sprintf("%d (%d)", node.key, node.height)
		n := graph.Node(nodeKey).Label(nodeLabel)
		if lastGraph != nil {
			if _, found := lastGraph.FindNodeById(nodeKey); !found {
				n.Attr("color", "red")
			}
		}

		for _, child := range []struct {
			node  *Node
			label string
		}{{node.left, "l"}, {node.right, "r"}} {
			if child.node == nil {
				continue
			}
			c := traverse(child.node)
			edge := n.Edge(c, child.label)
			if lastGraph != nil {
				if edges := lastGraph.FindEdges(n, c); len(edges) == 0 {
					edge.Attr("color", "red")
				}
			}
		}
		return n
	}

	if root != nil {
		traverse(root)
	}
	return graph
}
