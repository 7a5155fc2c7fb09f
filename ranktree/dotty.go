package ranktree

import (
	"fmt"
	"io"
	"strings"
)

// Dot outputs the slot structure of a tree in Graphviz DOT format (for
// debugging purposes). Nodes are labelled with their slot, the item as
// formatted by label, and the subtree count. If label is nil, items are
// formatted with %v.
func (t *Tree[T]) Dot(w io.Writer, label func(item T) string) error {
	if label == nil {
		label = func(item T) string { return fmt.Sprintf("%v", item) }
	}
	var nodelist, edgelist strings.Builder
	nilid := len(t.slots)
	for i := 1; i < len(t.slots); i++ {
		if !t.has(i) {
			continue
		}
		s := &t.slots[i]
		text := strings.ReplaceAll(label(s.item), `"`, `\"`)
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"#%d\\n%s\\n(%d)\" %s];\n",
			i, i, text, s.count, nodeDotStyles(i == 1))
		for _, child := range []int{2 * i, 2*i + 1} {
			if t.has(child) {
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", i, child)
			} else if t.has(2*i) || t.has(2*i+1) {
				nilid++
				fmt.Fprintf(&nodelist, "\"%d\" %s;\n", nilid, emptyNode())
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", i, nilid)
			}
		}
	}
	_, err := io.WriteString(w, "strict digraph {\n\tnode [fontname=Arial,fontsize=12];\n"+
		nodelist.String()+edgelist.String()+"}\n")
	return err
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.2]"
}

func nodeDotStyles(isroot bool) string {
	s := ",style=filled,shape=box"
	if isroot {
		s += ",fillcolor=\"#a3d7e4\""
	} else {
		s += ",fillcolor=white"
	}
	return s
}
