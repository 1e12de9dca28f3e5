package transport

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type ProfileUpdateRequest struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	InstitutionID   string `json:"institution_id"`
	InstitutionName string `json:"institution_name"`
}

// Fields returns only the record fields the caller actually set, so the
// merge-style update never clobbers absent values.
func (r ProfileUpdateRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Email != "" {
		fields["email"] = r.Email
	}
	if r.FirstName != "" {
		fields["firstName"] = r.FirstName
	}
	if r.LastName != "" {
		fields["lastName"] = r.LastName
	}
	if r.InstitutionID != "" {
		fields["institutionId"] = r.InstitutionID
	}
	if r.InstitutionName != "" {
		fields["institutionName"] = r.InstitutionName
	}
	return fields
}

type ActiveProgramRequest struct {
	InitiativeID string `json:"initiative_id"`
}

type LeaveTeamRequest struct {
	TeamID string `json:"team_id"`
}

type LeaveParticipationRequest struct {
	ParticipationID string `json:"participation_id"`
	CohortID        string `json:"cohort_id"`
	InitiativeID    string `json:"initiative_id"`
}

type RefreshDataRequest struct {
	Scope string `json:"scope"`
}
