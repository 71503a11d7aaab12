// Package checkin holds the in-progress visitor record of a check-in session
// and the merge operations applied to it by each wizard step.
package checkin

import (
	"slices"
	"strings"
)

// BasicDetails identifies a visitor.
type BasicDetails struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// FullName joins first and last name.
func (b BasicDetails) FullName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

// Host is the employee being visited.
type Host struct {
	Name       string `json:"name"`
	Post       string `json:"post"`
	Department string `json:"department"`
}

type CompanyDetails struct {
	CompanyName    string `json:"companyName"`
	Address        string `json:"address"`
	Host           Host   `json:"host"`
	PurposeOfVisit string `json:"purposeOfVisit"`
}

// Item is a single piece of equipment brought on site.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Equipment struct {
	Electrical []Item `json:"electrical"`
	Mechanical []Item `json:"mechanical"`
}

// Clean drops entries without a name and clamps quantities to at least one.
func (e Equipment) Clean() Equipment {
	return Equipment{
		Electrical: cleanItems(e.Electrical),
		Mechanical: cleanItems(e.Mechanical),
	}
}

func cleanItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		it.Name = name
		out = append(out, it)
	}
	return out
}

// Member is an accompanying visitor attached to the primary visitor.
type Member struct {
	ID            string         `json:"id"`
	BasicDetails  BasicDetails   `json:"basicDetails"`
	Photograph    *string        `json:"photograph"`
	IdentityProof *IdentityProof `json:"identityProof"`
	Equipment     Equipment      `json:"equipment"`
}

type NDA struct {
	Signature *string `json:"signature"`
	Date      string  `json:"date"`
	Name      string  `json:"name"`
	Company   string  `json:"company"`
	Address   string  `json:"address"`
	Accepted  bool    `json:"accepted"`
}

// PlaceToVisit is the area of the site the visitor is admitted to.
type PlaceToVisit string

const (
	PlaceOffice    PlaceToVisit = "Office"
	PlaceShopFloor PlaceToVisit = "Shop floor"
)

// Valid reports whether p is one of the known areas.
func (p PlaceToVisit) Valid() bool {
	return p == PlaceOffice || p == PlaceShopFloor
}

// State is the whole in-progress check-in record.
type State struct {
	BasicDetails       BasicDetails   `json:"basicDetails"`
	CompanyDetails     CompanyDetails `json:"companyDetails"`
	Photograph         *string        `json:"photograph"`
	IdentityProof      *IdentityProof `json:"identityProof"`
	Equipment          Equipment      `json:"equipment"`
	Members            []Member       `json:"members"`
	CurrentMemberIndex *int           `json:"currentMemberIndex"`
	NDA                NDA            `json:"nda"`
	PlaceToVisit       *PlaceToVisit  `json:"placeToVisit"`
	ID                 *string        `json:"id"`
}

// NewState returns the empty initial shape.
func NewState() State {
	return State{
		Equipment: Equipment{Electrical: []Item{}, Mechanical: []Item{}},
		Members:   []Member{},
	}
}

// MemberIndex returns the position of the member with the given id.
func (s State) MemberIndex(id string) (int, bool) {
	i := slices.IndexFunc(s.Members, func(m Member) bool { return m.ID == id })
	return i, i >= 0
}

// CurrentMember returns the member under edit, if the index is in range.
func (s State) CurrentMember() (Member, bool) {
	if s.CurrentMemberIndex == nil {
		return Member{}, false
	}
	i := *s.CurrentMemberIndex
	if i < 0 || i >= len(s.Members) {
		return Member{}, false
	}
	return s.Members[i], true
}

// Normalize replaces absent collections with empty ones so that a state
// decoded from storage compares equal to one built in memory.
func (s *State) Normalize() {
	s.Equipment = s.Equipment.normalized()
	if s.Members == nil {
		s.Members = []Member{}
	}
	for i := range s.Members {
		s.Members[i].Equipment = s.Members[i].Equipment.normalized()
	}
}

func (e Equipment) normalized() Equipment {
	if e.Electrical == nil {
		e.Electrical = []Item{}
	}
	if e.Mechanical == nil {
		e.Mechanical = []Item{}
	}
	return e
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.Photograph = cloneString(s.Photograph)
	out.IdentityProof = s.IdentityProof.clone()
	out.Equipment = s.Equipment.clone()
	out.Members = make([]Member, len(s.Members))
	for i, m := range s.Members {
		out.Members[i] = m.clone()
	}
	if s.CurrentMemberIndex != nil {
		idx := *s.CurrentMemberIndex
		out.CurrentMemberIndex = &idx
	}
	out.NDA.Signature = cloneString(s.NDA.Signature)
	if s.PlaceToVisit != nil {
		p := *s.PlaceToVisit
		out.PlaceToVisit = &p
	}
	out.ID = cloneString(s.ID)
	return out
}

func (m Member) clone() Member {
	out := m
	out.Photograph = cloneString(m.Photograph)
	out.IdentityProof = m.IdentityProof.clone()
	out.Equipment = m.Equipment.clone()
	return out
}

func (e Equipment) clone() Equipment {
	return Equipment{
		Electrical: append([]Item{}, e.Electrical...),
		Mechanical: append([]Item{}, e.Mechanical...),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
