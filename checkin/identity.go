package checkin

import (
	"encoding/json"
	"fmt"
)

// ProofKind discriminates the two identity proof representations.
type ProofKind string

const (
	ProofPicture ProofKind = "picture"
	ProofNumber  ProofKind = "number"
)

// IDType is the kind of document whose number was recorded.
type IDType string

const (
	IDTypeNone           IDType = ""
	IDTypeAadhaar        IDType = "aadhaar-card"
	IDTypePAN            IDType = "pan-card"
	IDTypeVisa           IDType = "visa"
	IDTypeDrivingLicense IDType = "driving-license"
)

// Valid reports whether t is one of the accepted document types or empty.
func (t IDType) Valid() bool {
	switch t {
	case IDTypeNone, IDTypeAadhaar, IDTypePAN, IDTypeVisa, IDTypeDrivingLicense:
		return true
	}
	return false
}

// IdentityProof is either a captured picture of the document or the
// document's type and number. Only the payload of the active kind is kept.
type IdentityProof struct {
	kind     ProofKind
	picture  *string
	idType   IDType
	idNumber string
}

// PictureProof builds the picture variant.
func PictureProof(data *string) IdentityProof {
	return IdentityProof{kind: ProofPicture, picture: cloneString(data)}
}

// NumberProof builds the document-number variant.
func NumberProof(idType IDType, idNumber string) IdentityProof {
	return IdentityProof{kind: ProofNumber, idType: idType, idNumber: idNumber}
}

func (p IdentityProof) Kind() ProofKind { return p.kind }

// Picture returns the captured image when p is the picture variant.
func (p IdentityProof) Picture() (*string, bool) {
	if p.kind != ProofPicture {
		return nil, false
	}
	return cloneString(p.picture), true
}

// Number returns the document type and number when p is the number variant.
func (p IdentityProof) Number() (IDType, string, bool) {
	if p.kind != ProofNumber {
		return IDTypeNone, "", false
	}
	return p.idType, p.idNumber, true
}

// MatchProof dispatches on the variant of p. Every caller handles both shapes.
func MatchProof[T any](p IdentityProof, picture func(data *string) T, number func(idType IDType, idNumber string) T) T {
	switch p.kind {
	case ProofNumber:
		return number(p.idType, p.idNumber)
	default:
		return picture(cloneString(p.picture))
	}
}

func (p *IdentityProof) clone() *IdentityProof {
	if p == nil {
		return nil
	}
	out := *p
	out.picture = cloneString(p.picture)
	return &out
}

type pictureWire struct {
	Type ProofKind `json:"type"`
	Data *string   `json:"data"`
}

type numberWire struct {
	Type     ProofKind `json:"type"`
	IDType   IDType    `json:"idType"`
	IDNumber string    `json:"idNumber"`
}

func (p IdentityProof) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case ProofNumber:
		return json.Marshal(numberWire{Type: ProofNumber, IDType: p.idType, IDNumber: p.idNumber})
	default:
		return json.Marshal(pictureWire{Type: ProofPicture, Data: p.picture})
	}
}

func (p *IdentityProof) UnmarshalJSON(b []byte) error {
	var head struct {
		Type ProofKind `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	switch head.Type {
	case ProofPicture:
		var w pictureWire
		if err := json.Unmarshal(b, &w); err != nil {
			return err
		}
		*p = PictureProof(w.Data)
	case ProofNumber:
		var w numberWire
		if err := json.Unmarshal(b, &w); err != nil {
			return err
		}
		if !w.IDType.Valid() {
			return fmt.Errorf("identity proof: unknown id type %q", w.IDType)
		}
		*p = NumberProof(w.IDType, w.IDNumber)
	default:
		return fmt.Errorf("identity proof: unknown type %q", head.Type)
	}
	return nil
}
