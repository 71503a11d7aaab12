package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visentry-backend/capture"
	"visentry-backend/checkin"
	"visentry-backend/models"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func janeDoe() checkin.BasicDetails {
	return checkin.BasicDetails{FirstName: "Jane", LastName: "Doe", Email: "jane.doe@example.com", Phone: "555-123-4567"}
}

func acme() checkin.CompanyDetails {
	return checkin.CompanyDetails{
		CompanyName:    "Acme Corp",
		Address:        "12 Industrial Way",
		Host:           checkin.Host{Name: "Arthur Pendragon", Post: "Manager"},
		PurposeOfVisit: "Supplier audit",
	}
}

func photo() *string {
	s := capture.DataURI("image/jpeg", []byte{0xff, 0xd8, 0xff})
	return &s
}

func signature() *string {
	s := capture.DataURI("image/png", []byte{0x89, 0x50})
	return &s
}

// walkToNDA drives a fresh machine up to the NDA page.
func walkToNDA(t *testing.T) *Machine {
	t.Helper()
	m := New(clock)
	require.NoError(t, m.SubmitBasicDetails(janeDoe()))
	require.NoError(t, m.SubmitCompanyDetails(acme()))
	require.NoError(t, m.SubmitPhotograph(photo()))
	proof := checkin.NumberProof(checkin.IDTypePAN, "ABCDE1234F")
	require.NoError(t, m.SubmitIdentityProof(&proof))
	require.NoError(t, m.SubmitEquipment(checkin.Equipment{
		Electrical: []checkin.Item{{Name: "Laptop", Quantity: 1}, {Name: "", Quantity: 2}},
	}))
	require.NoError(t, m.FinishMembers())
	require.Equal(t, StepNDASigning, m.Step())
	return m
}

func TestMachine_JaneDoeHappyPath(t *testing.T) {
	m := walkToNDA(t)

	require.NoError(t, m.AcceptNDA(checkin.NDA{Signature: signature()}))
	assert.Equal(t, StepPlaceToVisit, m.Step())

	st := m.State()
	require.NotNil(t, st.ID)
	assert.Regexp(t, `^VIS-\d+-[A-Z0-9]{7}$`, *st.ID)
	assert.True(t, st.NDA.Accepted)
	assert.Equal(t, "Jane Doe", st.NDA.Name)
	assert.Equal(t, "Acme Corp", st.NDA.Company)
	assert.Equal(t, "12 Industrial Way", st.NDA.Address)
	assert.Equal(t, "14/03/2025", st.NDA.Date)
	assert.Equal(t, []checkin.Item{{Name: "Laptop", Quantity: 1}}, st.Equipment.Electrical)

	office := checkin.PlaceOffice
	require.NoError(t, m.SubmitPlaceToVisit(&office))
	assert.Equal(t, StepPrintBadge, m.Step())

	done, err := m.Finish()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", done.BasicDetails.FullName())
	assert.Equal(t, StepBasicDetails, m.Step())
	assert.Equal(t, checkin.NewState(), m.State())
}

func TestMachine_InvalidEmailBlocksNext(t *testing.T) {
	m := New(clock)
	d := janeDoe()
	d.Email = "jane.doe@example"

	err := m.SubmitBasicDetails(d)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepBasicDetails, verr.Step)
	assert.Equal(t, "Invalid email address", verr.Fields["email"])
	assert.Len(t, verr.Fields, 1)
	assert.Equal(t, StepBasicDetails, m.Step())
	assert.Empty(t, m.State().BasicDetails.Email)
}

func TestMachine_WrongStep(t *testing.T) {
	m := New(clock)
	err := m.SubmitPhotograph(photo())
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestMachine_BackIsUnconditional(t *testing.T) {
	m := New(clock)
	assert.Equal(t, StepBasicDetails, m.Back())

	require.NoError(t, m.SubmitBasicDetails(janeDoe()))
	assert.Equal(t, StepBasicDetails, m.Back())
	assert.Equal(t, "Jane", m.State().BasicDetails.FirstName)
}

func TestMachine_AcceptNDA_MissingSectionRedirects(t *testing.T) {
	tests := []struct {
		name  string
		clear func(s *checkin.Session)
		want  Step
	}{
		{"basic details", func(s *checkin.Session) { s.UpdateBasicDetails(checkin.BasicDetails{}.Full()) }, StepBasicDetails},
		{"company details", func(s *checkin.Session) { s.UpdateCompanyDetails(checkin.CompanyDetails{}.Full()) }, StepCompanyDetails},
		{"photograph", func(s *checkin.Session) { s.UpdatePhotograph(nil) }, StepPhotograph},
		{"identity proof", func(s *checkin.Session) { s.UpdateIdentityProof(nil) }, StepIdentityProof},
		{"blank member", func(s *checkin.Session) { s.AddMember() }, StepAddMembers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := walkToNDA(t)
			tt.clear(m.session)

			err := m.AcceptNDA(checkin.NDA{Signature: signature()})
			var inc *IncompleteError
			require.ErrorAs(t, err, &inc)
			assert.ErrorIs(t, err, ErrIncomplete)
			assert.Equal(t, tt.want, inc.Step)
			assert.Equal(t, tt.want, m.Step())

			st := m.State()
			assert.False(t, st.NDA.Accepted)
			assert.Nil(t, st.ID)
		})
	}
}

func TestMachine_AcceptNDA_MissingSignature(t *testing.T) {
	m := walkToNDA(t)
	err := m.AcceptNDA(checkin.NDA{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Signature is required", verr.Fields["signature"])
	assert.Equal(t, StepNDASigning, m.Step())
	assert.False(t, m.State().NDA.Accepted)
}

func TestMachine_EnterBadgeWithoutNDARedirects(t *testing.T) {
	m := New(clock)
	require.NoError(t, m.SubmitBasicDetails(janeDoe()))

	err := m.EnterBadge()
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, StepBasicDetails, m.Step())

	_, err = m.Finish()
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestMachine_BadgeRequiresPlaceToVisit(t *testing.T) {
	m := walkToNDA(t)
	require.NoError(t, m.AcceptNDA(checkin.NDA{Signature: signature()}))
	require.Equal(t, StepPlaceToVisit, m.Step())

	assert.ErrorIs(t, m.EnterBadge(), ErrWrongStep)
	assert.Equal(t, StepPlaceToVisit, m.Step())

	_, err := m.Finish()
	assert.ErrorIs(t, err, ErrWrongStep)
	assert.Equal(t, StepPlaceToVisit, m.Step())
	assert.Nil(t, m.State().PlaceToVisit)
	assert.True(t, m.State().NDA.Accepted)
}

func TestMachine_FinishMembersRejectsBlankMember(t *testing.T) {
	m := New(clock)
	require.NoError(t, m.SubmitBasicDetails(janeDoe()))
	require.NoError(t, m.SubmitCompanyDetails(acme()))
	require.NoError(t, m.SubmitPhotograph(photo()))
	pic := checkin.PictureProof(photo())
	require.NoError(t, m.SubmitIdentityProof(&pic))
	require.NoError(t, m.SubmitEquipment(checkin.Equipment{}))

	id, err := m.AddMember()
	require.NoError(t, err)
	m.Back()

	err = m.FinishMembers()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"members[0]": "Please complete the details of member 1"}, map[string]string(verr.Fields))
	assert.Equal(t, StepAddMembers, m.Step())

	require.NoError(t, m.RemoveMember(id))
	require.NoError(t, m.FinishMembers())
	assert.Equal(t, StepNDASigning, m.Step())
}

func TestMachine_MemberFlow(t *testing.T) {
	m := New(clock)
	require.NoError(t, m.SubmitBasicDetails(janeDoe()))
	require.NoError(t, m.SubmitCompanyDetails(acme()))
	require.NoError(t, m.SubmitPhotograph(photo()))
	pic := checkin.PictureProof(photo())
	require.NoError(t, m.SubmitIdentityProof(&pic))
	require.NoError(t, m.SubmitEquipment(checkin.Equipment{}))

	id, err := m.AddMember()
	require.NoError(t, err)
	assert.Equal(t, StepMemberBasicDetails, m.Step())

	member := checkin.BasicDetails{FirstName: "John", LastName: "Roe", Email: "john@example.com", Phone: "5550001111"}
	require.NoError(t, m.SubmitMemberBasicDetails(id, member))
	require.NoError(t, m.SubmitMemberPhotograph(id, photo()))
	proof := checkin.NumberProof(checkin.IDTypeVisa, "V-1")
	require.NoError(t, m.SubmitMemberIdentityProof(id, &proof))
	require.NoError(t, m.SubmitMemberEquipment(id, checkin.Equipment{Mechanical: []checkin.Item{{Name: "Wrench", Quantity: 0}}}))
	assert.Equal(t, StepAddMembers, m.Step())

	st := m.State()
	require.Len(t, st.Members, 1)
	assert.Equal(t, member, st.Members[0].BasicDetails)
	assert.Equal(t, []checkin.Item{{Name: "Wrench", Quantity: 1}}, st.Members[0].Equipment.Mechanical)

	second, err := m.AddMember()
	require.NoError(t, err)
	m.Back()
	require.NoError(t, m.RemoveMember(second))
	assert.ErrorIs(t, m.RemoveMember(second), checkin.ErrMemberNotFound)
	assert.ErrorIs(t, m.EditMember("nope"), checkin.ErrMemberNotFound)

	require.NoError(t, m.FinishMembers())
	assert.Nil(t, m.State().CurrentMemberIndex)
}

func TestMachine_Approve(t *testing.T) {
	m := New(clock)
	require.NoError(t, m.SubmitBasicDetails(janeDoe()))

	m.Approve(models.PendingVisitor{
		ID:        "PEND-001",
		Name:      "Mark Twain",
		FirstName: "Mark",
		LastName:  "Twain",
		Email:     "mark.twain@example.com",
		Phone:     "(555) 123-4567",
		Company:   "Publishing House",
		Address:   "351 W 5th St",
		Host:      "Arthur Pendragon",
		Purpose:   "Book signing",
	})

	assert.Equal(t, StepPhotograph, m.Step())
	st := m.State()
	assert.Equal(t, "Mark Twain", st.BasicDetails.FullName())
	assert.Equal(t, "Arthur Pendragon", st.CompanyDetails.Host.Name)
	assert.Equal(t, "Book signing", st.CompanyDetails.PurposeOfVisit)
}

func TestMachine_ApproveSplitsName(t *testing.T) {
	m := New(clock)
	m.Approve(models.PendingVisitor{Name: "Nikola Tesla"})
	assert.Equal(t, "Nikola", m.State().BasicDetails.FirstName)
	assert.Equal(t, "Tesla", m.State().BasicDetails.LastName)
}

func TestRestore_UnknownStepFallsBack(t *testing.T) {
	m := Restore(Snapshot{Step: "nowhere", State: checkin.NewState()}, clock)
	assert.Equal(t, StepBasicDetails, m.Step())
}
