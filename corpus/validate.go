package corpus

import (
	"fmt"

	"github.com/binast/binpack/internal/errlist"
	"github.com/binast/binpack/schema"
	"github.com/binast/binpack/tree"
)

// validateHandler discards every visited location; tree.Walk's own
// schema-resolution errors are what validation is actually checking for.
type validateHandler struct{}

func (validateHandler) Visit(loc *tree.Location) (tree.Handler, error) {
	if loc == nil {
		return nil, nil
	}
	return validateHandler{}, nil
}

// Validate walks every script against s without building or consuming any
// probability table, collecting every ValueDoesNotMatchSchema/
// AmbiguousResolution failure into one errlist.List instead of stopping at
// the first bad file — a standalone dry run useful before committing to a
// full train/encode pass.
func Validate(s *schema.Schema, scripts []Script) errlist.List {
	var errs errlist.List
	for _, script := range scripts {
		if err := tree.Walk(s, script.Root, script.Tree, validateHandler{}); err != nil {
			errs = errlist.Append(errs, fmt.Errorf("%s: %w", script.Name, err))
		}
	}
	return errs
}
