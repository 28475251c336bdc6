// Package entity contains the core business objects of the project.
package entity

// ProviderKind represents the type of a provider account in the directory.
type ProviderKind string

const (
	// KindClinic indicates a clinic account.
	KindClinic ProviderKind = "clinic"
	// KindHospital indicates a hospital account.
	KindHospital ProviderKind = "hospital"
	// KindDoctor indicates a doctor account, linked to an organization.
	KindDoctor ProviderKind = "doctor"
)

// String returns the string representation of the ProviderKind.
func (k ProviderKind) String() string {
	return string(k)
}

// IsValid checks if the ProviderKind is a valid value.
func (k ProviderKind) IsValid() bool {
	switch k {
	case KindClinic, KindHospital, KindDoctor:
		return true
	default:
		return false
	}
}

// IsOrganization reports whether accounts of this kind can own doctors.
func (k ProviderKind) IsOrganization() bool {
	return k == KindClinic || k == KindHospital
}

// KindFromString converts a string to a ProviderKind, reporting validity.
func KindFromString(s string) (ProviderKind, bool) {
	kind := ProviderKind(s)

	return kind, kind.IsValid()
}
