package types

// Spec describes one element: its tag name, its attributes, and the markup that becomes its children.
type Spec struct {
	Name       string
	Attributes Attrs
	Content    string
}
