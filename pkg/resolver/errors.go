package resolver

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/types"
)

// CyclicDependencyError reports a requires-cycle found during a walk.
// Cycle starts and ends with the same handle.
type CyclicDependencyError struct {
	Category types.Category
	Cycle    []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle in %s: %s", e.Category, strings.Join(e.Cycle, " -> "))
}

// Unwrap exposes the coded error so errors.IsErrorCode matches
// ErrDependencyCycle
func (e *CyclicDependencyError) Unwrap() error {
	return errors.Newf(errors.ErrDependencyCycle, "dependency cycle in %s", e.Category).
		WithDetails(map[string]interface{}{
			"category": e.Category.String(),
			"cycle":    e.Cycle,
		})
}
