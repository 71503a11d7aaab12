package checkin

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSession_UpdateBasicDetails_MergesSetFields(t *testing.T) {
	s := NewSession()
	s.UpdateBasicDetails(BasicDetailsPatch{FirstName: strPtr("Ada"), Email: strPtr("ada@example.com")})
	s.UpdateBasicDetails(BasicDetailsPatch{LastName: strPtr("Lovelace")})

	got := s.State().BasicDetails
	assert.Equal(t, BasicDetails{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, got)
	assert.Equal(t, "Ada Lovelace", got.FullName())
}

func TestSession_UpdateCompanyDetails_MergesHost(t *testing.T) {
	s := NewSession()
	s.UpdateCompanyDetails(CompanyDetails{
		CompanyName:    "Acme",
		Address:        "1 Road",
		Host:           Host{Name: "Grace", Post: "Engineer", Department: "R&D"},
		PurposeOfVisit: "Audit",
	}.Full())
	s.UpdateHost(HostPatch{Post: strPtr("Director")})

	got := s.State().CompanyDetails
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, Host{Name: "Grace", Post: "Director", Department: "R&D"}, got.Host)
}

func TestSession_AddMember_AppendsAndSelects(t *testing.T) {
	s := NewSession()
	for i := 0; i < 3; i++ {
		idx := s.AddMember()
		assert.Equal(t, i, idx)
	}

	st := s.State()
	require.Len(t, st.Members, 3)
	require.NotNil(t, st.CurrentMemberIndex)
	assert.Equal(t, 2, *st.CurrentMemberIndex)

	ids := map[string]bool{}
	for _, m := range st.Members {
		assert.NotEmpty(t, m.ID)
		assert.NotNil(t, m.Equipment.Electrical)
		ids[m.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestSession_UpdateMember_OutOfRange(t *testing.T) {
	s := NewSession()
	err := s.UpdateMember(0, MemberPatch{})
	assert.ErrorIs(t, err, ErrMemberNotFound)

	s.AddMember()
	photo := strPtr("data:image/jpeg;base64,AAAA")
	require.NoError(t, s.UpdateMember(0, MemberPatch{Photograph: &photo}))
	assert.Equal(t, photo, s.State().Members[0].Photograph)
}

func TestSession_RemoveMember_KeepsCurrentIdentity(t *testing.T) {
	s := NewSession()
	s.AddMember()
	s.AddMember()
	s.AddMember()
	one := 1
	require.NoError(t, s.SetCurrentMemberIndex(&one))
	current := s.State().Members[1].ID

	require.NoError(t, s.RemoveMember(0))

	st := s.State()
	require.Len(t, st.Members, 2)
	member, ok := st.CurrentMember()
	require.True(t, ok)
	assert.Equal(t, current, member.ID)
}

func TestSession_RemoveMember_ClampsIndex(t *testing.T) {
	s := NewSession()
	s.AddMember()
	s.AddMember()

	require.NoError(t, s.RemoveMember(1))
	st := s.State()
	require.NotNil(t, st.CurrentMemberIndex)
	assert.Equal(t, 0, *st.CurrentMemberIndex)

	require.NoError(t, s.RemoveMember(0))
	st = s.State()
	assert.Empty(t, st.Members)
	assert.Nil(t, st.CurrentMemberIndex)

	assert.ErrorIs(t, s.RemoveMember(0), ErrMemberNotFound)
}

func TestSession_SetCurrentMemberIndex_Bounds(t *testing.T) {
	s := NewSession()
	five := 5
	assert.ErrorIs(t, s.SetCurrentMemberIndex(&five), ErrMemberNotFound)
	assert.NoError(t, s.SetCurrentMemberIndex(nil))
}

func TestSession_Reset_ReturnsInitialShape(t *testing.T) {
	s := NewSession()
	s.UpdateBasicDetails(BasicDetails{FirstName: "A", LastName: "B", Email: "a@b.co", Phone: "1234567890"}.Full())
	s.AddMember()
	s.SetID(strPtr("VIS-1-ABCDEFG"))
	accepted := true
	s.UpdateNDA(NDAPatch{Accepted: &accepted})

	s.Reset()
	assert.Equal(t, NewState(), s.State())
}

func TestSession_State_IsACopy(t *testing.T) {
	s := NewSession()
	s.UpdateEquipment(Equipment{Electrical: []Item{{Name: "Laptop", Quantity: 1}}, Mechanical: []Item{}})

	st := s.State()
	st.Equipment.Electrical[0].Name = "changed"
	assert.Equal(t, "Laptop", s.State().Equipment.Electrical[0].Name)
}

func TestEquipment_Clean(t *testing.T) {
	e := Equipment{
		Electrical: []Item{{Name: "  Laptop ", Quantity: 0}, {Name: " ", Quantity: 3}},
		Mechanical: nil,
	}
	got := e.Clean()
	assert.Equal(t, []Item{{Name: "Laptop", Quantity: 1}}, got.Electrical)
	assert.Equal(t, []Item{}, got.Mechanical)
}

func TestIdentityProof_JSON(t *testing.T) {
	tests := []struct {
		name  string
		proof IdentityProof
		json  string
	}{
		{"picture", PictureProof(strPtr("data:image/jpeg;base64,AA")), `{"type":"picture","data":"data:image/jpeg;base64,AA"}`},
		{"number", NumberProof(IDTypePAN, "ABCDE1234F"), `{"type":"number","idType":"pan-card","idNumber":"ABCDE1234F"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.proof)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(b))

			var back IdentityProof
			require.NoError(t, json.Unmarshal(b, &back))
			assert.Equal(t, tt.proof, back)
		})
	}
}

func TestIdentityProof_UnmarshalRejectsUnknown(t *testing.T) {
	var p IdentityProof
	assert.Error(t, json.Unmarshal([]byte(`{"type":"retina"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"type":"number","idType":"passport","idNumber":"1"}`), &p))
}

func TestIdentityProof_Accessors(t *testing.T) {
	p := NumberProof(IDTypeVisa, "V1")
	_, ok := p.Picture()
	assert.False(t, ok)
	idType, num, ok := p.Number()
	assert.True(t, ok)
	assert.Equal(t, IDTypeVisa, idType)
	assert.Equal(t, "V1", num)

	label := MatchProof(p,
		func(*string) string { return "picture" },
		func(kind IDType, n string) string { return string(kind) + ":" + n },
	)
	assert.Equal(t, "visa:V1", label)
}

func TestState_JSONRoundTrip(t *testing.T) {
	s := NewSession()
	s.UpdateBasicDetails(BasicDetails{FirstName: "Ada", LastName: "L", Email: "a@b.co", Phone: "5551234567"}.Full())
	proof := NumberProof(IDTypeAadhaar, "1234")
	s.UpdateIdentityProof(&proof)
	s.AddMember()
	place := PlaceShopFloor
	s.UpdatePlaceToVisit(&place)

	b, err := json.Marshal(s.State())
	require.NoError(t, err)

	var back State
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, s.State(), RestoreSession(back).State())
}

func TestGenerateVisitorID_Format(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	pattern := regexp.MustCompile(`^VIS-1700000000123-[A-Z0-9]{7}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := GenerateVisitorID(now)
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestIdentityProof_MarshalThroughState(t *testing.T) {
	st := NewState()
	proof := NumberProof(IDTypeVisa, "V-1")
	st.IdentityProof = &proof

	b, err := json.Marshal(st)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"identityProof":{"type":"number","idType":"visa","idNumber":"V-1"}`)

	var zero IdentityProof
	b, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"picture","data":null}`, string(b))
}
