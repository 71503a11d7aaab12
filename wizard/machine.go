package wizard

import (
	"fmt"
	"strings"
	"time"

	"visentry-backend/checkin"
	"visentry-backend/models"
	"visentry-backend/validate"
)

// DateLayout is the day/month/year format used on the NDA form.
const DateLayout = "02/01/2006"

// Snapshot is the persisted form of a machine.
type Snapshot struct {
	SessionID string        `json:"sessionId"`
	Step      Step          `json:"step"`
	State     checkin.State `json:"state"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Machine owns one check-in session and the step it is on.
type Machine struct {
	step    Step
	session *checkin.Session
	now     func() time.Time
}

// New starts a machine on the first step with an empty record.
func New(now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{step: StepBasicDetails, session: checkin.NewSession(), now: now}
}

// Restore rebuilds a machine from a snapshot. Unknown steps fall back to the
// first step.
func Restore(snap Snapshot, now func() time.Time) *Machine {
	m := New(now)
	m.session = checkin.RestoreSession(snap.State)
	if snap.Step.Valid() {
		m.step = snap.Step
	}
	return m
}

func (m *Machine) Snapshot(sessionID string) Snapshot {
	return Snapshot{
		SessionID: sessionID,
		Step:      m.step,
		State:     m.session.State(),
		UpdatedAt: m.now(),
	}
}

func (m *Machine) Step() Step { return m.step }

func (m *Machine) State() checkin.State { return m.session.State() }

// Back moves to the previous page without validating anything.
func (m *Machine) Back() Step {
	m.step = previous[m.step]
	return m.step
}

func (m *Machine) expect(want Step) error {
	if m.step != want {
		return wrongStep(m.step, want)
	}
	return nil
}

func (m *Machine) check(errs validate.Errors) error {
	if errs.OK() {
		return nil
	}
	return &ValidationError{Step: m.step, Fields: errs}
}

func (m *Machine) SubmitBasicDetails(d checkin.BasicDetails) error {
	if err := m.expect(StepBasicDetails); err != nil {
		return err
	}
	if err := m.check(validate.BasicDetails(d)); err != nil {
		return err
	}
	m.session.UpdateBasicDetails(d.Full())
	m.step = StepCompanyDetails
	return nil
}

func (m *Machine) SubmitCompanyDetails(d checkin.CompanyDetails) error {
	if err := m.expect(StepCompanyDetails); err != nil {
		return err
	}
	if err := m.check(validate.CompanyDetails(d)); err != nil {
		return err
	}
	m.session.UpdateCompanyDetails(d.Full())
	m.step = StepPhotograph
	return nil
}

func (m *Machine) SubmitPhotograph(photo *string) error {
	if err := m.expect(StepPhotograph); err != nil {
		return err
	}
	if err := m.check(validate.Photograph(photo)); err != nil {
		return err
	}
	m.session.UpdatePhotograph(photo)
	m.step = StepIdentityProof
	return nil
}

func (m *Machine) SubmitIdentityProof(p *checkin.IdentityProof) error {
	if err := m.expect(StepIdentityProof); err != nil {
		return err
	}
	if err := m.check(validate.IdentityProof(p)); err != nil {
		return err
	}
	m.session.UpdateIdentityProof(p)
	m.step = StepEquipment
	return nil
}

// SubmitEquipment stores the cleaned lists. Equipment is optional.
func (m *Machine) SubmitEquipment(e checkin.Equipment) error {
	if err := m.expect(StepEquipment); err != nil {
		return err
	}
	e = e.Clean()
	if err := m.check(validate.Equipment(e)); err != nil {
		return err
	}
	m.session.UpdateEquipment(e)
	m.step = StepAddMembers
	return nil
}

// AddMember appends a blank member and opens its details page.
func (m *Machine) AddMember() (string, error) {
	if err := m.expect(StepAddMembers); err != nil {
		return "", err
	}
	idx := m.session.AddMember()
	m.step = StepMemberBasicDetails
	return m.session.State().Members[idx].ID, nil
}

// EditMember reopens an existing member's details page.
func (m *Machine) EditMember(id string) error {
	if err := m.expect(StepAddMembers); err != nil {
		return err
	}
	if _, err := m.selectMember(id); err != nil {
		return err
	}
	m.step = StepMemberBasicDetails
	return nil
}

func (m *Machine) RemoveMember(id string) error {
	if err := m.expect(StepAddMembers); err != nil {
		return err
	}
	idx, ok := m.session.State().MemberIndex(id)
	if !ok {
		return checkin.ErrMemberNotFound
	}
	return m.session.RemoveMember(idx)
}

func (m *Machine) selectMember(id string) (int, error) {
	idx, ok := m.session.State().MemberIndex(id)
	if !ok {
		return -1, checkin.ErrMemberNotFound
	}
	if err := m.session.SetCurrentMemberIndex(&idx); err != nil {
		return -1, err
	}
	return idx, nil
}

func (m *Machine) updateMember(want Step, id string, errs func() validate.Errors, patch checkin.MemberPatch, next Step) error {
	if err := m.expect(want); err != nil {
		return err
	}
	idx, err := m.selectMember(id)
	if err != nil {
		return err
	}
	if err := m.check(errs()); err != nil {
		return err
	}
	if err := m.session.UpdateMember(idx, patch); err != nil {
		return err
	}
	m.step = next
	return nil
}

func (m *Machine) SubmitMemberBasicDetails(id string, d checkin.BasicDetails) error {
	p := d.Full()
	return m.updateMember(StepMemberBasicDetails, id,
		func() validate.Errors { return validate.BasicDetails(d) },
		checkin.MemberPatch{BasicDetails: &p},
		StepMemberPhotograph)
}

func (m *Machine) SubmitMemberPhotograph(id string, photo *string) error {
	return m.updateMember(StepMemberPhotograph, id,
		func() validate.Errors { return validate.Photograph(photo) },
		checkin.MemberPatch{Photograph: &photo},
		StepMemberIdentityProof)
}

func (m *Machine) SubmitMemberIdentityProof(id string, p *checkin.IdentityProof) error {
	return m.updateMember(StepMemberIdentityProof, id,
		func() validate.Errors { return validate.IdentityProof(p) },
		checkin.MemberPatch{IdentityProof: &p},
		StepMemberEquipment)
}

func (m *Machine) SubmitMemberEquipment(id string, e checkin.Equipment) error {
	e = e.Clean()
	return m.updateMember(StepMemberEquipment, id,
		func() validate.Errors { return validate.Equipment(e) },
		checkin.MemberPatch{Equipment: &e},
		StepAddMembers)
}

// FinishMembers leaves the member list for the NDA page. Every member must
// have gone through their own details, photograph and identity proof pages.
func (m *Machine) FinishMembers() error {
	if err := m.expect(StepAddMembers); err != nil {
		return err
	}
	if err := m.check(incompleteMembers(m.session.State())); err != nil {
		return err
	}
	if err := m.session.SetCurrentMemberIndex(nil); err != nil {
		return err
	}
	m.step = StepNDASigning
	return nil
}

func incompleteMembers(st checkin.State) validate.Errors {
	errs := validate.Errors{}
	for i, mem := range st.Members {
		if validate.BasicDetails(mem.BasicDetails).OK() &&
			validate.Photograph(mem.Photograph).OK() &&
			validate.IdentityProof(mem.IdentityProof).OK() {
			continue
		}
		errs[fmt.Sprintf("members[%d]", i)] = fmt.Sprintf("Please complete the details of member %d", i+1)
	}
	return errs
}

// NDADefaults returns the form pre-filled from the visitor's details.
func (m *Machine) NDADefaults() checkin.NDA {
	st := m.session.State()
	n := st.NDA
	if blank(n.Name) {
		n.Name = st.BasicDetails.FullName()
	}
	if blank(n.Company) {
		n.Company = st.CompanyDetails.CompanyName
	}
	if blank(n.Address) {
		n.Address = st.CompanyDetails.Address
	}
	if blank(n.Date) {
		n.Date = m.now().Format(DateLayout)
	}
	return n
}

// AcceptNDA validates the signed form, re-checks the upstream sections and
// assigns the visitor id. A missing section moves the machine back to it and
// leaves the agreement unaccepted.
func (m *Machine) AcceptNDA(form checkin.NDA) error {
	if err := m.expect(StepNDASigning); err != nil {
		return err
	}
	defaults := m.NDADefaults()
	if blank(form.Name) {
		form.Name = defaults.Name
	}
	if blank(form.Company) {
		form.Company = defaults.Company
	}
	if blank(form.Address) {
		form.Address = defaults.Address
	}
	if blank(form.Date) {
		form.Date = defaults.Date
	}
	if err := m.check(validate.NDA(form)); err != nil {
		return err
	}
	if err := m.upstreamComplete(); err != nil {
		return err
	}

	id, err := checkin.GenerateVisitorID(m.now())
	if err != nil {
		return err
	}
	accepted := true
	m.session.UpdateNDA(checkin.NDAPatch{
		Signature: form.Signature,
		Date:      &form.Date,
		Name:      &form.Name,
		Company:   &form.Company,
		Address:   &form.Address,
		Accepted:  &accepted,
	})
	m.session.SetID(&id)
	m.step = StepPlaceToVisit
	return nil
}

func (m *Machine) upstreamComplete() error {
	st := m.session.State()
	b := st.BasicDetails
	if blank(b.FirstName) || blank(b.LastName) || blank(b.Email) || blank(b.Phone) {
		return m.redirect(StepBasicDetails, "Please complete the Basic Details section first")
	}
	c := st.CompanyDetails
	if blank(c.CompanyName) || blank(c.Address) || blank(c.Host.Name) || blank(c.PurposeOfVisit) {
		return m.redirect(StepCompanyDetails, "Please complete the Company Details section first")
	}
	if st.Photograph == nil || blank(*st.Photograph) {
		return m.redirect(StepPhotograph, "Please upload a photograph")
	}
	if st.IdentityProof == nil {
		return m.redirect(StepIdentityProof, "Please upload identity proof")
	}
	if !incompleteMembers(st).OK() {
		return m.redirect(StepAddMembers, "Please complete the details of every member")
	}
	return nil
}

func (m *Machine) redirect(step Step, msg string) error {
	m.step = step
	return &IncompleteError{Step: step, Message: msg}
}

func (m *Machine) SubmitPlaceToVisit(p *checkin.PlaceToVisit) error {
	if err := m.expect(StepPlaceToVisit); err != nil {
		return err
	}
	if err := m.check(validate.PlaceToVisit(p)); err != nil {
		return err
	}
	m.session.UpdatePlaceToVisit(p)
	m.step = StepPrintBadge
	return nil
}

// EnterBadge guards the badge page. A visitor who never accepted the
// agreement is sent back to the start; otherwise the machine must already be
// on the badge step.
func (m *Machine) EnterBadge() error {
	if !m.session.State().NDA.Accepted {
		return m.redirect(StepBasicDetails, "Visitor information is incomplete. Please start the check-in process from the beginning.")
	}
	return m.expect(StepPrintBadge)
}

// Finish returns the completed record and resets the session for the next
// visitor.
func (m *Machine) Finish() (checkin.State, error) {
	if err := m.EnterBadge(); err != nil {
		return checkin.State{}, err
	}
	done := m.session.State()
	m.session.Reset()
	m.step = StepBasicDetails
	return done, nil
}

// Approve starts a fresh record from a pre-registered visitor and skips to
// the photograph page.
func (m *Machine) Approve(p models.PendingVisitor) {
	first, last := p.FirstName, p.LastName
	if blank(first) && blank(last) {
		first, last, _ = strings.Cut(strings.TrimSpace(p.Name), " ")
	}
	m.session.Reset()
	m.session.UpdateBasicDetails(checkin.BasicDetails{
		FirstName: first,
		LastName:  last,
		Email:     p.Email,
		Phone:     p.Phone,
	}.Full())
	m.session.UpdateCompanyDetails(checkin.CompanyDetails{
		CompanyName:    p.Company,
		Address:        p.Address,
		Host:           checkin.Host{Name: p.Host},
		PurposeOfVisit: p.Purpose,
	}.Full())
	m.step = StepPhotograph
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
