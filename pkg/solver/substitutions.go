package solver

import (
	"fmt"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// SubstitutionTargetError reports a substitution aimed at a variable that is
// not in the flattened system, already fixed at build time, or dimensionally
// incompatible with its declaration.
type SubstitutionTargetError struct {
	Key    gp.Key
	Reason string
}

func (e *SubstitutionTargetError) Error() string {
	return fmt.Sprintf("substitution for %s rejected: %s", e.Key, e.Reason)
}

// ApplySubstitutions validates a substitution table against a flattened
// system and returns the combined pinned-value map (build-time parameters
// plus substitutions), each value converted to its variable's declared unit.
// The system itself is never modified. Every target must exist and be free.
func ApplySubstitutions(sys *model.System, subs gp.Substitutions) (map[gp.Key]unit.Quantity, error) {
	pinned := make(map[gp.Key]unit.Quantity, len(subs))
	for _, v := range sys.Variables {
		if q, fixed := v.Fixed(); fixed {
			pinned[v.Key()] = q
		}
	}
	for k, q := range subs {
		v, ok := sys.Var(k)
		if !ok {
			return nil, &SubstitutionTargetError{Key: k, Reason: "no such variable in the flattened system"}
		}
		if _, fixed := v.Fixed(); fixed {
			return nil, &SubstitutionTargetError{Key: k, Reason: "variable is already fixed at build time"}
		}
		converted, err := q.Convert(v.Unit())
		if err != nil {
			return nil, &SubstitutionTargetError{Key: k, Reason: fmt.Sprintf("value %s is not convertible to %s", q, v.Unit())}
		}
		pinned[k] = converted
	}
	return pinned, nil
}
