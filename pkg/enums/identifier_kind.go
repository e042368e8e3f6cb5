package enums

// IdentifierKind is the kind of login identifier a person typed.
type IdentifierKind string

const (
	IdentifierKindEmail IdentifierKind = "email"
	IdentifierKindPhone IdentifierKind = "phone"
)

// String implements fmt.Stringer.
func (k IdentifierKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known IdentifierKind.
func (k IdentifierKind) IsValid() bool {
	return k == IdentifierKindEmail || k == IdentifierKindPhone
}
