package graphql

// EnumType is the result of an introspection query of the form
// __type(name: "...") { enumValues { name } }.
type EnumType struct {
	EnumValues []EnumValue `json:"enumValues"`
}

// EnumValue is one value of an introspected enum.
type EnumValue struct {
	Name string `json:"name"`
}

// Names returns the enum value names in server order.
func (t EnumType) Names() []string {
	out := make([]string, 0, len(t.EnumValues))
	for _, v := range t.EnumValues {
		out = append(out, v.Name)
	}
	return out
}

// EmptyEnum returns an EnumType with no values, the "no data yet" value for
// enum introspection results.
func EmptyEnum() EnumType {
	return EnumType{EnumValues: []EnumValue{}}
}
