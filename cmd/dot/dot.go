package dot

import (
	"io"
	"os"

	avl "github.com/laud222/AVL-map"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func Command() *cobra.Command {
	var (
		keys    []int64
		deletes []int64
		out     string
	)
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "render a tree as a graphviz digraph",
		Long: `Inserts --keys in order, then deletes --delete in order, and writes the
resulting tree as a DOT graph labelled "key (height)". With --delete the nodes
and edges that changed since the last insert are drawn red.

  avlmap dot --keys 4,2,6,1,3,5,7 --delete 4 | dot -Tsvg > tree.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			tree := avl.NewTree(nil, avl.DefaultTreeOptions())
			for _, k := range keys {
				if _, err := tree.Insert(k); err != nil {
					return err
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer func() {
					if cerr := f.Close(); err == nil && cerr != nil {
						err = errors.Wrap(cerr, out)
					}
				}()
				w = f
			}

			if len(deletes) == 0 {
				return avl.WriteDOTGraph(w, tree.Root())
			}
			before := avl.DOTGraph(tree.Root())
			for _, k := range deletes {
				if _, err := tree.Delete(k); err != nil {
					return err
				}
			}
			return avl.WriteDOTGraphDiff(w, tree.Root(), before)
		},
	}
	cmd.Flags().Int64SliceVar(&keys, "keys", nil, "keys to insert, in order")
	cmd.Flags().Int64SliceVar(&deletes, "delete", nil, "keys to delete after inserting, in order")
	cmd.Flags().StringVar(&out, "out", "", "output file, stdout if empty")
	return cmd
}
