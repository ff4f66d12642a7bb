package runtime

import (
	"github.com/aretw0/espalier/pkg/domain"
)

// EvalConditions evaluates a node's enable gate. A nil condition is always
// enabled; otherwise the result is exactly the truthiness of
// cond(fragment, window, index). The gate runs before any dispatch and has
// no effect on control flow beyond this boolean.
func (e *Engine) EvalConditions(cond domain.ConditionFunc, fragment any, index int) bool {
	if cond == nil {
		return true
	}
	return cond(fragment, e.window, index)
}
