// Package validate holds the per-step form checks of the check-in wizard.
// Each function returns a field to message map; an empty map means valid.
package validate

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"visentry-backend/capture"
	"visentry-backend/checkin"
)

// Errors maps a field name to a human readable message.
type Errors map[string]string

// OK reports whether no field failed.
func (e Errors) OK() bool { return len(e) == 0 }

func (e Errors) Error() string {
	keys := slices.Sorted(maps.Keys(e))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPhoneDigits = 10

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func BasicDetails(d checkin.BasicDetails) Errors {
	errs := Errors{}
	if blank(d.FirstName) {
		errs["firstName"] = "First name is required"
	}
	if blank(d.LastName) {
		errs["lastName"] = "Last name is required"
	}
	switch {
	case blank(d.Email):
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(d.Email):
		errs["email"] = "Invalid email address"
	}
	switch {
	case blank(d.Phone):
		errs["phone"] = "Phone number is required"
	case countDigits(d.Phone) < minPhoneDigits:
		errs["phone"] = "Phone number must be at least 10 digits"
	}
	return errs
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// CompanyDetails requires the host's name; post and department are optional.
func CompanyDetails(d checkin.CompanyDetails) Errors {
	errs := Errors{}
	if blank(d.CompanyName) {
		errs["companyName"] = "Company name is required"
	}
	if blank(d.Address) {
		errs["address"] = "Company address is required"
	}
	if blank(d.Host.Name) {
		errs["host.name"] = "Host name is required"
	}
	if blank(d.PurposeOfVisit) {
		errs["purposeOfVisit"] = "Purpose of visit is required"
	}
	return errs
}

func Photograph(p *string) Errors {
	if p == nil || blank(*p) {
		return Errors{"photograph": "Please capture a photograph before proceeding."}
	}
	if !capture.IsImage(*p) {
		return Errors{"photograph": "Photograph must be an image data URI"}
	}
	return Errors{}
}

func IdentityProof(p *checkin.IdentityProof) Errors {
	const msg = "Please complete the identity proof details before proceeding."
	if p == nil {
		return Errors{"identityProof": msg}
	}
	return checkin.MatchProof(*p,
		func(data *string) Errors {
			if data == nil || blank(*data) {
				return Errors{"identityProof": msg}
			}
			if !capture.IsImage(*data) {
				return Errors{"identityProof": "Identity proof must be an image data URI"}
			}
			return Errors{}
		},
		func(idType checkin.IDType, idNumber string) Errors {
			errs := Errors{}
			if idType == checkin.IDTypeNone || !idType.Valid() {
				errs["idType"] = "ID type is required"
			}
			if blank(idNumber) {
				errs["idNumber"] = "ID number is required"
			}
			return errs
		},
	)
}

// Equipment rejects named items with a quantity below one.
func Equipment(e checkin.Equipment) Errors {
	errs := Errors{}
	check := func(group string, items []checkin.Item) {
		for i, it := range items {
			if blank(it.Name) {
				continue
			}
			if it.Quantity < 1 {
				errs[fmt.Sprintf("%s[%d].quantity", group, i)] = "Quantity must be at least 1"
			}
		}
	}
	check("electrical", e.Electrical)
	check("mechanical", e.Mechanical)
	return errs
}

func NDA(n checkin.NDA) Errors {
	errs := Errors{}
	if blank(n.Name) {
		errs["name"] = "Name is required"
	}
	if blank(n.Company) {
		errs["company"] = "Company is required"
	}
	if blank(n.Address) {
		errs["address"] = "Address is required"
	}
	if blank(n.Date) {
		errs["date"] = "Date is required"
	}
	if n.Signature == nil || blank(*n.Signature) {
		errs["signature"] = "Signature is required"
	}
	return errs
}

func PlaceToVisit(p *checkin.PlaceToVisit) Errors {
	if p == nil || !p.Valid() {
		return Errors{"placeToVisit": "Please select an area to proceed."}
	}
	return Errors{}
}

func NDAContent(content string) Errors {
	if blank(content) {
		return Errors{"content": "NDA content cannot be empty."}
	}
	return Errors{}
}
