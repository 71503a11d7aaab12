package models

// Request bodies of the check-in wizard. Field checks that carry user facing
// messages happen in the validate package; binding tags only guard shape.

type BasicDetailsRequest struct {
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Email     string `json:"email" binding:"max=254"`
	Phone     string `json:"phone" binding:"max=32"`
}

type HostRequest struct {
	Name       string `json:"name" binding:"max=100"`
	Post       string `json:"post" binding:"max=100"`
	Department string `json:"department" binding:"max=100"`
}

type CompanyDetailsRequest struct {
	CompanyName    string      `json:"companyName" binding:"max=200"`
	Address        string      `json:"address" binding:"max=500"`
	Host           HostRequest `json:"host"`
	PurposeOfVisit string      `json:"purposeOfVisit" binding:"max=500"`
}

type PhotographRequest struct {
	Photograph *string `json:"photograph"`
}

type IdentityProofRequest struct {
	Type     string  `json:"type" binding:"required,oneof=picture number"`
	Data     *string `json:"data"`
	IDType   string  `json:"idType" binding:"omitempty,idtype"`
	IDNumber string  `json:"idNumber" binding:"max=64"`
}

type ItemRequest struct {
	Name     string `json:"name" binding:"max=100"`
	Quantity int    `json:"quantity"`
}

type EquipmentRequest struct {
	Electrical []ItemRequest `json:"electrical" binding:"dive"`
	Mechanical []ItemRequest `json:"mechanical" binding:"dive"`
}

// NDARequest carries the signed form. Blank name, company, address and date
// are filled from the visitor's details.
type NDARequest struct {
	Signature *string `json:"signature"`
	Date      string  `json:"date"`
	Name      string  `json:"name"`
	Company   string  `json:"company"`
	Address   string  `json:"address"`
}

type PlaceToVisitRequest struct {
	PlaceToVisit string `json:"placeToVisit" binding:"omitempty,placetovisit"`
}
