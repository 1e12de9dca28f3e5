package domain

import "strings"

// Profile is the identity-linked contact record. It is created at signup and
// edited through the profile operations; the consistency layer never deletes it.
type Profile struct {
	ID              string   `json:"id"`
	Email           string   `json:"email,omitempty"`
	FirstName       string   `json:"first_name,omitempty"`
	LastName        string   `json:"last_name,omitempty"`
	InstitutionID   string   `json:"institution_id,omitempty"`
	InstitutionName string   `json:"institution_name,omitempty"`
	// MemberRefs is the denormalized Member link list maintained by the record
	// store. Leave-team resolution reads it before falling back to a query.
	MemberRefs []string `json:"member_refs,omitempty"`
}

func (p *Profile) FullName() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}
