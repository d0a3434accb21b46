package model

import "fmt"

// Registry number prefixes. Every person record carries a human-facing
// registry number: a 3-digit prefix followed by a 7-digit sequence.
// Prefixes match the legacy campus numbering scheme; tables are disjoint
// namespaces so admins and teachers may share a prefix.
const (
	RegistryPrefixAdmin   = "011"
	RegistryPrefixTeacher = "011"
	RegistryPrefixStudent = "022"
	RegistryPrefixParent  = "099"
)

// FormatRegistryNumber renders a registry number from a prefix and sequence
// value, e.g. ("022", 41) → "0220000041".
func FormatRegistryNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s%07d", prefix, seq)
}
