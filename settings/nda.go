// Package settings holds the editable NDA agreement text.
package settings

import (
	"strings"
	"sync"
	"time"

	"visentry-backend/models"
	"visentry-backend/validate"
)

const DefaultNDA = `Preamble and Scope: I, the undersigned visitor, acknowledge that I am entering the premises of [Company Name] for the approved purpose of [e.g., scheduled meeting, maintenance, interview, delivery] on this date. I understand that my access is temporary and strictly limited to the areas required for my authorized visit, and I agree to be escorted by a designated Company employee at all times, unless otherwise instructed by Security.

Commitment to Safety and Conduct: I commit to fully complying with all [Company Name] rules and regulations, particularly those related to safety, security, and professional conduct. This includes adherence to emergency procedures, wearing the visitor badge prominently, and refraining from entering any restricted or clearly marked areas. I will operate any equipment or tools in a safe manner and report any hazards immediately.

Confidentiality and Proprietary Information: I acknowledge that I may be exposed to Confidential Information, including, but not limited to, trade secrets, financial data, product roadmaps, and personnel information. By signing this agreement, I agree that I will not disclose, copy, use, or otherwise reveal any such Confidential Information during or after my visit, except as required for the authorized purpose of my visit and with prior written consent from [Company Name]. All materials, discussions, and observations made during my time on the premises remain the exclusive property of the Company.

Electronic Devices and Photography: I understand and agree that the use of cameras, video recorders, or any similar recording equipment is strictly prohibited within the facility without explicit management approval. I consent to having my electronic devices (such as mobile phones or laptops) inspected, if requested, prior to entering or exiting sensitive areas, to ensure the security of proprietary information.

Acknowledgment of Terms: I certify that I have read, understood, and voluntarily agree to comply with all terms set forth in this Visitor Acknowledgment and Non-Disclosure Agreement. I understand that failure to comply with these terms may result in immediate removal from the premises and potential legal action.`

type NDAStore struct {
	mu        sync.RWMutex
	content   string
	updatedAt *time.Time
}

func NewNDAStore() *NDAStore {
	return &NDAStore{content: DefaultNDA}
}

func (s *NDAStore) Get() models.NDASettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.NDASettings{Content: s.content, UpdatedAt: s.updatedAt}
}

// Set replaces the agreement text. Blank text is rejected.
func (s *NDAStore) Set(content string, at time.Time) (models.NDASettings, validate.Errors) {
	if errs := validate.NDAContent(content); !errs.OK() {
		return models.NDASettings{}, errs
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = strings.TrimSpace(content)
	s.updatedAt = &at
	return models.NDASettings{Content: s.content, UpdatedAt: s.updatedAt}, nil
}
