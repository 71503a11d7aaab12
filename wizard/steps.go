// Package wizard drives a check-in session through its ordered steps.
// A Machine owns one session; the Manager persists machines between requests
// and serializes access per session.
package wizard

// Step names a page of the check-in flow.
type Step string

const (
	StepBasicDetails        Step = "basic-details"
	StepCompanyDetails      Step = "company-details"
	StepPhotograph          Step = "photograph"
	StepIdentityProof       Step = "identity-proof"
	StepEquipment           Step = "equipment"
	StepAddMembers          Step = "add-members"
	StepMemberBasicDetails  Step = "member-basic-details"
	StepMemberPhotograph    Step = "member-photograph"
	StepMemberIdentityProof Step = "member-identity-proof"
	StepMemberEquipment     Step = "member-equipment"
	StepNDASigning          Step = "nda-signing"
	StepPlaceToVisit        Step = "place-to-visit"
	StepPrintBadge          Step = "print-badge"
)

var previous = map[Step]Step{
	StepBasicDetails:        StepBasicDetails,
	StepCompanyDetails:      StepBasicDetails,
	StepPhotograph:          StepCompanyDetails,
	StepIdentityProof:       StepPhotograph,
	StepEquipment:           StepIdentityProof,
	StepAddMembers:          StepEquipment,
	StepMemberBasicDetails:  StepAddMembers,
	StepMemberPhotograph:    StepMemberBasicDetails,
	StepMemberIdentityProof: StepMemberPhotograph,
	StepMemberEquipment:     StepMemberIdentityProof,
	StepNDASigning:          StepAddMembers,
	StepPlaceToVisit:        StepNDASigning,
	StepPrintBadge:          StepPlaceToVisit,
}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	_, ok := previous[s]
	return ok
}

// IsMemberStep reports whether s edits an accompanying member.
func (s Step) IsMemberStep() bool {
	switch s {
	case StepMemberBasicDetails, StepMemberPhotograph, StepMemberIdentityProof, StepMemberEquipment:
		return true
	}
	return false
}
