package registry

// PropertyType identifies the value type of an editable property.
type PropertyType string

const (
	PropertyText       PropertyType = "text"
	PropertyRichText   PropertyType = "richtext"
	PropertyBoolean    PropertyType = "boolean"
	PropertyNumber     PropertyType = "number"
	PropertySelect     PropertyType = "select"
	PropertyColor      PropertyType = "color"
	PropertyImage      PropertyType = "image"
	PropertyDateTime   PropertyType = "datetime"
	PropertyProduct    PropertyType = "product"
	PropertyCollection PropertyType = "collection"
)

// Condition declares when a property is visible in an editor. The
// registry only stores the declaration; evaluation is the editor's job.
type Condition struct {
	// DependsOn names another property in the same schema.
	DependsOn string `json:"dependsOn"`

	// Equals is the value DependsOn must hold for this property to show.
	Equals any `json:"equals"`
}

// Property is one entry in a kind's editable-property schema.
type Property struct {
	// Name is the parameter key this property edits.
	Name string `json:"name"`

	// Label is the human-facing property label.
	Label string `json:"label"`

	// Type is the property's value type.
	Type PropertyType `json:"type"`

	// Min and Max bound number properties. Advisory for editors.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// Options lists the allowed values for select properties.
	Options []string `json:"options,omitempty"`

	// VisibleWhen hides the property unless the condition holds.
	VisibleWhen *Condition `json:"visibleWhen,omitempty"`
}

// Bound returns a *float64 for Min/Max fields.
func Bound(v float64) *float64 {
	return &v
}
