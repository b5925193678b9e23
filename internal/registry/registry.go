package registry

import (
	"fmt"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
)

// Kind is a catalog entry: a component type merchants can place on a page.
type Kind struct {
	// ID is the unique kind id (e.g., "banner").
	ID string `json:"id"`

	// Name is the display name shown in the builder palette.
	Name string `json:"name"`

	// Category is the palette grouping label (e.g., "content", "commerce").
	Category string `json:"category"`

	// Schema is the ordered editable-property schema.
	Schema []Property `json:"schema"`

	// Defaults holds one concrete value per schema entry.
	Defaults map[string]any `json:"defaults"`
}

// DefaultParams returns an independent copy of the kind's default
// parameter bag, safe for a new instance to mutate.
func (k Kind) DefaultParams() map[string]any {
	params := make(map[string]any, len(k.Defaults))
	for key, value := range k.Defaults {
		params[key] = value
	}
	return params
}

// ValidateParams checks a parameter bag against the kind's schema and
// returns one message per violation. Advisory: the page model accepts
// any params, and editors decide what to do with the findings.
func (k Kind) ValidateParams(params map[string]any) []string {
	var problems []string

	byName := make(map[string]Property, len(k.Schema))
	for _, prop := range k.Schema {
		byName[prop.Name] = prop
	}

	for key, value := range params {
		prop, ok := byName[key]
		if !ok {
			problems = append(problems, fmt.Sprintf("%q is not a declared property of kind %q", key, k.ID))
			continue
		}

		switch prop.Type {
		case PropertyNumber:
			n, ok := value.(float64)
			if !ok {
				problems = append(problems, fmt.Sprintf("%q expects a number", key))
				continue
			}
			if prop.Min != nil && n < *prop.Min {
				problems = append(problems, fmt.Sprintf("%q is below the minimum %v", key, *prop.Min))
			}
			if prop.Max != nil && n > *prop.Max {
				problems = append(problems, fmt.Sprintf("%q is above the maximum %v", key, *prop.Max))
			}
		case PropertyBoolean:
			if _, ok := value.(bool); !ok {
				problems = append(problems, fmt.Sprintf("%q expects a boolean", key))
			}
		case PropertySelect:
			s, ok := value.(string)
			if !ok {
				problems = append(problems, fmt.Sprintf("%q expects one of its options", key))
				continue
			}
			found := false
			for _, opt := range prop.Options {
				if opt == s {
					found = true
					break
				}
			}
			if !found {
				problems = append(problems, fmt.Sprintf("%q is not an allowed option for %q", s, key))
			}
		default:
			if _, ok := value.(string); !ok {
				problems = append(problems, fmt.Sprintf("%q expects a string", key))
			}
		}
	}

	return problems
}

// validate checks the defaults-schema bijection invariant.
func (k Kind) validate() error {
	if k.ID == "" {
		return errors.New(errors.CodeInvalidKind).
			WithDetail("Kind with empty id")
	}

	seen := make(map[string]bool, len(k.Schema))
	for _, prop := range k.Schema {
		if seen[prop.Name] {
			return errors.New(errors.CodeInvalidKind).
				WithDetail(fmt.Sprintf("Kind %q declares property %q twice", k.ID, prop.Name))
		}
		seen[prop.Name] = true

		if _, ok := k.Defaults[prop.Name]; !ok {
			return errors.New(errors.CodeInvalidKind).
				WithDetail(fmt.Sprintf("Kind %q has no default for property %q", k.ID, prop.Name))
		}
	}

	for key := range k.Defaults {
		if !seen[key] {
			return errors.New(errors.CodeInvalidKind).
				WithDetail(fmt.Sprintf("Kind %q has default %q with no schema entry", k.ID, key))
		}
	}

	return nil
}

// Registry is the static component catalog. It is populated once at
// construction and immutable afterwards.
type Registry struct {
	kinds []Kind
	byID  map[string]Kind
}

// New builds a Registry from the given kinds, validating each one.
func New(kinds ...Kind) (*Registry, error) {
	r := &Registry{
		kinds: make([]Kind, 0, len(kinds)),
		byID:  make(map[string]Kind, len(kinds)),
	}

	for _, k := range kinds {
		if err := k.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[k.ID]; dup {
			return nil, errors.New(errors.CodeInvalidKind).
				WithDetail(fmt.Sprintf("Duplicate kind id %q", k.ID))
		}
		r.kinds = append(r.kinds, k)
		r.byID[k.ID] = k
	}

	return r, nil
}

// MustNew is New for static catalogs; invalid definitions are programmer
// error and panic at startup.
func MustNew(kinds ...Kind) *Registry {
	r, err := New(kinds...)
	if err != nil {
		panic(err)
	}
	return r
}

// List returns all kinds in palette order.
func (r *Registry) List() []Kind {
	out := make([]Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// Get returns the kind with the given id.
func (r *Registry) Get(id string) (Kind, error) {
	k, ok := r.byID[id]
	if !ok {
		return Kind{}, errors.New(errors.CodeUnknownKind).
			WithDetail(fmt.Sprintf("Kind %q is not in the palette", id)).
			WithSuggestion("Run 'appcanvas kinds' to list available kinds")
	}
	return k, nil
}

// Has reports whether a kind with the given id exists.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Resolve maps stored kind metadata back to a current catalog id by
// matching category and display name. Historical instances may reference
// kinds that were since renamed or re-categorized; a name-only match is
// the best effort before giving up.
func (r *Registry) Resolve(category, name string) (Kind, bool) {
	for _, k := range r.kinds {
		if k.Category == category && k.Name == name {
			return k, true
		}
	}
	for _, k := range r.kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}
