package markdown

import "gopkg.in/yaml.v3"

// Scalar reports whether the field holds a single value rather than a list or map.
func (f Field) Scalar() bool {
	return f.Kind == yaml.ScalarNode
}

// Int reports whether yaml resolved the value as an integer.
func (f Field) Int() bool {
	return f.Scalar() && f.Tag == "!!int"
}
