package checkin

import (
	"errors"

	"github.com/google/uuid"
)

// ErrMemberNotFound is returned when a member index or id is out of range.
var ErrMemberNotFound = errors.New("member not found")

// Patches carry only the fields to change; nil leaves the field untouched.

type BasicDetailsPatch struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

type HostPatch struct {
	Name       *string `json:"name,omitempty"`
	Post       *string `json:"post,omitempty"`
	Department *string `json:"department,omitempty"`
}

type CompanyDetailsPatch struct {
	CompanyName    *string    `json:"companyName,omitempty"`
	Address        *string    `json:"address,omitempty"`
	Host           *HostPatch `json:"host,omitempty"`
	PurposeOfVisit *string    `json:"purposeOfVisit,omitempty"`
}

type NDAPatch struct {
	Signature *string `json:"signature,omitempty"`
	Date      *string `json:"date,omitempty"`
	Name      *string `json:"name,omitempty"`
	Company   *string `json:"company,omitempty"`
	Address   *string `json:"address,omitempty"`
	Accepted  *bool   `json:"accepted,omitempty"`
}

// MemberPatch replaces the member sections that are set.
type MemberPatch struct {
	BasicDetails  *BasicDetailsPatch
	Photograph    **string
	IdentityProof **IdentityProof
	Equipment     *Equipment
}

// Full returns a patch that overwrites every basic detail with d.
func (d BasicDetails) Full() BasicDetailsPatch {
	return BasicDetailsPatch{FirstName: &d.FirstName, LastName: &d.LastName, Email: &d.Email, Phone: &d.Phone}
}

// Full returns a patch that overwrites every company detail with d.
func (d CompanyDetails) Full() CompanyDetailsPatch {
	return CompanyDetailsPatch{
		CompanyName:    &d.CompanyName,
		Address:        &d.Address,
		Host:           &HostPatch{Name: &d.Host.Name, Post: &d.Host.Post, Department: &d.Host.Department},
		PurposeOfVisit: &d.PurposeOfVisit,
	}
}

// Session owns a single check-in record. It performs no validation; callers
// validate before merging.
type Session struct {
	state State
}

func NewSession() *Session {
	return &Session{state: NewState()}
}

// RestoreSession rehydrates a session from a previously saved state.
func RestoreSession(s State) *Session {
	s.Normalize()
	return &Session{state: s}
}

// State returns a copy of the record.
func (s *Session) State() State {
	return s.state.Clone()
}

func (s *Session) UpdateBasicDetails(p BasicDetailsPatch) {
	applyBasic(&s.state.BasicDetails, p)
}

func (s *Session) UpdateCompanyDetails(p CompanyDetailsPatch) {
	c := &s.state.CompanyDetails
	setString(&c.CompanyName, p.CompanyName)
	setString(&c.Address, p.Address)
	setString(&c.PurposeOfVisit, p.PurposeOfVisit)
	if p.Host != nil {
		s.UpdateHost(*p.Host)
	}
}

func (s *Session) UpdateHost(p HostPatch) {
	h := &s.state.CompanyDetails.Host
	setString(&h.Name, p.Name)
	setString(&h.Post, p.Post)
	setString(&h.Department, p.Department)
}

func (s *Session) UpdatePhotograph(v *string) {
	s.state.Photograph = cloneString(v)
}

func (s *Session) UpdateIdentityProof(v *IdentityProof) {
	s.state.IdentityProof = v.clone()
}

func (s *Session) UpdateEquipment(e Equipment) {
	s.state.Equipment = e.clone()
}

func (s *Session) UpdateNDA(p NDAPatch) {
	n := &s.state.NDA
	if p.Signature != nil {
		n.Signature = cloneString(p.Signature)
	}
	setString(&n.Date, p.Date)
	setString(&n.Name, p.Name)
	setString(&n.Company, p.Company)
	setString(&n.Address, p.Address)
	if p.Accepted != nil {
		n.Accepted = *p.Accepted
	}
}

func (s *Session) UpdatePlaceToVisit(v *PlaceToVisit) {
	if v == nil {
		s.state.PlaceToVisit = nil
		return
	}
	p := *v
	s.state.PlaceToVisit = &p
}

// AddMember appends an empty member, makes it current and returns its index.
func (s *Session) AddMember() int {
	s.state.Members = append(s.state.Members, Member{
		ID:        uuid.NewString(),
		Equipment: Equipment{Electrical: []Item{}, Mechanical: []Item{}},
	})
	idx := len(s.state.Members) - 1
	s.state.CurrentMemberIndex = &idx
	return idx
}

func (s *Session) UpdateMember(index int, p MemberPatch) error {
	if index < 0 || index >= len(s.state.Members) {
		return ErrMemberNotFound
	}
	m := &s.state.Members[index]
	if p.BasicDetails != nil {
		applyBasic(&m.BasicDetails, *p.BasicDetails)
	}
	if p.Photograph != nil {
		m.Photograph = cloneString(*p.Photograph)
	}
	if p.IdentityProof != nil {
		m.IdentityProof = (*p.IdentityProof).clone()
	}
	if p.Equipment != nil {
		m.Equipment = p.Equipment.clone()
	}
	return nil
}

// RemoveMember deletes the member at index. The current member keeps its
// identity when another member is removed; removing the current member
// clamps the index to the last member, or clears it when none remain.
func (s *Session) RemoveMember(index int) error {
	if index < 0 || index >= len(s.state.Members) {
		return ErrMemberNotFound
	}
	s.state.Members = append(s.state.Members[:index], s.state.Members[index+1:]...)

	cur := s.state.CurrentMemberIndex
	if cur == nil {
		return nil
	}
	next := *cur
	if index < next {
		next--
	}
	switch {
	case len(s.state.Members) == 0:
		s.state.CurrentMemberIndex = nil
	case next >= len(s.state.Members):
		last := len(s.state.Members) - 1
		s.state.CurrentMemberIndex = &last
	default:
		s.state.CurrentMemberIndex = &next
	}
	return nil
}

// SetCurrentMemberIndex selects the member under edit; nil clears it.
func (s *Session) SetCurrentMemberIndex(index *int) error {
	if index == nil {
		s.state.CurrentMemberIndex = nil
		return nil
	}
	if *index < 0 || *index >= len(s.state.Members) {
		return ErrMemberNotFound
	}
	idx := *index
	s.state.CurrentMemberIndex = &idx
	return nil
}

func (s *Session) SetID(id *string) {
	s.state.ID = cloneString(id)
}

// Reset replaces the record with the initial empty shape.
func (s *Session) Reset() {
	s.state = NewState()
}

func applyBasic(b *BasicDetails, p BasicDetailsPatch) {
	setString(&b.FirstName, p.FirstName)
	setString(&b.LastName, p.LastName)
	setString(&b.Email, p.Email)
	setString(&b.Phone, p.Phone)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
