// Package registry defines the static component catalog: the fixed
// palette of component kinds a merchant can place on a page, each with an
// ordered editable-property schema and a default parameter bag.
//
// The catalog is compiled in (see the kinds subpackage) and immutable at
// runtime. The registry stores property visibility conditions but never
// evaluates them; that is the builder editor's concern.
package registry
