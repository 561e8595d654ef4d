package corpus

import (
	"fmt"
	"io"

	"github.com/kr/pretty"

	"github.com/binast/binpack/schema"
	"github.com/binast/binpack/tree"
)

// locationView is the trimmed subset of a tree.Location worth a human
// glance: the path-suffix key context plus the type bound and the
// resolved shape, leaving out the full Value payload and parent chain
// pretty.Println would otherwise spell out recursively.
type locationView struct {
	IfaceName  string
	FieldName  string
	ArrayIndex int
	Depth      int
	Bound      []string
	Resolved   string
}

type prettyHandler struct {
	w io.Writer
}

func (h prettyHandler) Visit(loc *tree.Location) (tree.Handler, error) {
	if loc == nil {
		return nil, nil
	}
	bound := make([]string, len(loc.TypeSet))
	for i, ty := range loc.TypeSet {
		bound[i] = ty.String()
	}
	view := locationView{
		IfaceName:  string(loc.IfaceName),
		FieldName:  loc.FieldName,
		ArrayIndex: loc.ArrayIndex,
		Depth:      loc.Depth,
		Bound:      bound,
		Resolved:   loc.Resolved.Ty.String(),
	}
	fmt.Fprintln(h.w, pretty.Sprint(view))
	return h, nil
}

// PrettyPrintWalk walks script against s, writing one kr/pretty-formatted
// line per visited location (its path key, type bound, and resolved
// shape) to w — a debugging view of the visitor, not a serialization
// format.
func PrettyPrintWalk(s *schema.Schema, script Script, w io.Writer) error {
	return tree.Walk(s, script.Root, script.Tree, prettyHandler{w: w})
}
