// Package tree implements the Visitor: a depth-first walk over a value tree
// shaped by a Schema, exposing enough ancestor context at each step for the
// path-suffix and entropy-coding layers to build their own state from.
//
// The begin/end visitation idiom is grounded on the teacher's util.Walk: a
// Visitor's Visit(node) returns the child Visitor to recurse with, and the
// end of a subtree is signaled by calling that child Visitor's Visit(nil).
package tree

import (
	"fmt"

	"github.com/binast/binpack/gtype"
	"github.com/binast/binpack/schema"
)

// Location describes one position visited during a walk: the value found
// there, the TypeSet its schema position was flattened to, and enough of
// the ancestor chain to reconstruct a path suffix.
type Location struct {
	Value    gtype.Value
	TypeSet  gtype.TypeSet
	Resolved gtype.ResolvedType

	// IfaceName is the interface declaration this location's parent node
	// belongs to, empty at the root. FieldName is the declared field
	// within that interface that led here; ArrayIndex is set instead of
	// FieldName when the parent is an array.
	IfaceName gtype.TypeName
	FieldName string
	ArrayIndex int
	IsArrayElem bool

	Parent *Location
	Depth  int
}

// Ancestors returns the chain from this location up to (and including) the
// root, nearest first.
func (l *Location) Ancestors() []*Location {
	var out []*Location
	for cur := l; cur != nil; cur = cur.Parent {
		out = append(out, cur)
	}
	return out
}

// Handler receives Visit calls in depth-first pre/post order: Visit(loc)
// begins a location and returns the Handler to use for its children (nil to
// skip descending); once all children are done, Visit(nil) is called on
// that returned Handler to signal the location has ended.
type Handler interface {
	Visit(loc *Location) (Handler, error)
}

// Walk traverses value, which must satisfy rootTypeSet under s, calling
// handler at every node, field, array element, and leaf encountered.
func Walk(s *schema.Schema, rootTypeSet gtype.TypeSet, value gtype.Value, handler Handler) error {
	root := &Location{
		Value:   value,
		TypeSet: rootTypeSet,
	}
	return walkLocation(s, root, handler)
}

func walkLocation(s *schema.Schema, loc *Location, handler Handler) error {
	resolved, err := gtype.Resolve(loc.TypeSet, loc.Value, s)
	if err != nil {
		return fmt.Errorf("tree: at depth %d: %w", loc.Depth, err)
	}
	loc.Resolved = resolved

	child, err := handler.Visit(loc)
	if err != nil {
		return err
	}
	if child == nil {
		return nil
	}
	defer func() {
		// The end-of-subtree signal itself cannot fail: a Handler that
		// needs to report an error on close should do so eagerly, on
		// the final child Visit, not here.
		child.Visit(nil)
	}()

	switch resolved.Ty.Kind() {
	case gtype.KIface:
		inst := loc.Value.AsInstance()
		fields, err := s.IfaceFields(resolved.Ty.Name())
		if err != nil {
			return fmt.Errorf("tree: interface %s: %w", resolved.Ty.Name(), err)
		}
		for _, f := range fields {
			fv, ok := inst.Field(f.Name)
			if !ok {
				return fmt.Errorf("tree: instance of %s missing field %q", resolved.Ty.Name(), f.Name)
			}
			fts, err := s.Flatten(f.Type)
			if err != nil {
				return err
			}
			childLoc := &Location{
				Value:     fv,
				TypeSet:   fts,
				IfaceName: resolved.Ty.Name(),
				FieldName: f.Name,
				Parent:    loc,
				Depth:     loc.Depth + 1,
			}
			if err := walkLocation(s, childLoc, child); err != nil {
				return err
			}
		}
	case gtype.KArray:
		elemTs, err := s.Flatten(resolved.Ty.Elem())
		if err != nil {
			return err
		}
		for i, ev := range loc.Value.AsArray() {
			childLoc := &Location{
				Value:       ev,
				TypeSet:     elemTs,
				IfaceName:   loc.IfaceName,
				ArrayIndex:  i,
				IsArrayElem: true,
				Parent:      loc,
				Depth:       loc.Depth + 1,
			}
			if err := walkLocation(s, childLoc, child); err != nil {
				return err
			}
		}
	case gtype.KPrimitive, gtype.KIdent, gtype.KEnum:
		// Leaves: no children to recurse into.
	default:
		return fmt.Errorf("tree: unexpected resolved kind %v at depth %d", resolved.Ty.Kind(), loc.Depth)
	}
	return nil
}
