package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"visentry-backend/badge"
	"visentry-backend/checkin"
	"visentry-backend/logger"
	"visentry-backend/models"
	"visentry-backend/roster"
	"visentry-backend/settings"
	"visentry-backend/wizard"
)

// landingPage is where the client goes once a badge has been printed.
const landingPage = "/requests"

type CheckinHandler struct {
	sessions *wizard.Manager
	roster   *roster.Register
	nda      *settings.NDAStore
	now      func() time.Time
}

func NewCheckinHandler(sessions *wizard.Manager, reg *roster.Register, nda *settings.NDAStore, now func() time.Time) *CheckinHandler {
	if now == nil {
		now = time.Now
	}
	return &CheckinHandler{sessions: sessions, roster: reg, nda: nda, now: now}
}

// update runs fn on the session named by :sid and writes the snapshot, or
// the error together with the snapshot the session moved to.
func (h *CheckinHandler) update(c *gin.Context, fn func(*wizard.Machine) error) {
	snap, err := h.sessions.Update(c.Request.Context(), c.Param("sid"), fn)
	if err != nil {
		respondError(c, err, withSession(snap))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// withSession attaches the session a failed step left behind, so clients can
// follow redirects.
func withSession(snap wizard.Snapshot) gin.H {
	if snap.SessionID == "" {
		return nil
	}
	return gin.H{"session": snap}
}

func (h *CheckinHandler) Create(c *gin.Context) {
	snap, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

func (h *CheckinHandler) Get(c *gin.Context) {
	snap, err := h.sessions.Get(c.Request.Context(), c.Param("sid"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *CheckinHandler) Discard(c *gin.Context) {
	if err := h.sessions.Discard(c.Request.Context(), c.Param("sid")); err != nil {
		respondError(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CheckinHandler) Back(c *gin.Context) {
	h.update(c, func(m *wizard.Machine) error {
		m.Back()
		return nil
	})
}

func (h *CheckinHandler) BasicDetails(c *gin.Context) {
	var req models.BasicDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.update(c, func(m *wizard.Machine) error {
		return m.SubmitBasicDetails(toBasicDetails(req))
	})
}

func (h *CheckinHandler) CompanyDetails(c *gin.Context) {
	var req models.CompanyDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.update(c, func(m *wizard.Machine) error {
		return m.SubmitCompanyDetails(toCompanyDetails(req))
	})
}

func (h *CheckinHandler) Photograph(c *gin.Context) {
	var req models.PhotographRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.update(c, func(m *wizard.Machine) error {
		return m.SubmitPhotograph(req.Photograph)
	})
}

func (h *CheckinHandler) IdentityProof(c *gin.Context) {
	var req models.IdentityProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	proof := toIdentityProof(req)
	h.update(c, func(m *wizard.Machine) error {
		return m.SubmitIdentityProof(&proof)
	})
}

func (h *CheckinHandler) Equipment(c *gin.Context) {
	var req models.EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.update(c, func(m *wizard.Machine) error {
		return m.SubmitEquipment(toEquipment(req))
	})
}

func (h *CheckinHandler) AddMember(c *gin.Context) {
	var memberID string
	snap, err := h.sessions.Update(c.Request.Context(), c.Param("sid"), func(m *wizard.Machine) error {
		id, err := m.AddMember()
		memberID = id
		return err
	})
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"memberId": memberID, "session": snap})
}

func (h *CheckinHandler) EditMember(c *gin.Context) {
	h.update(c, func(m *wizard.Machine) error {
		return m.EditMember(c.Param("mid"))
	})
}

func (h *CheckinHandler) RemoveMember(c *gin.Context) {
	h.update(c, func(m *wizard.Machine) error {
		return m.RemoveMember(c.Param("mid"))
	})
}

func (h *CheckinHandler) MemberBasicDetails(c *gin.Context) {
	var req models.BasicDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.update(c, func(m *wizard.Machine) error {
		return m.SubmitMemberBasicDetails(c.Param("mid"), toBasicDetails(req))
	})
}

func (h *CheckinHandler) MemberPhotograph(c *gin.Context) {
	var req models.PhotographRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.update(c, func(m *wizard.Machine) error {
		return m.SubmitMemberPhotograph(c.Param("mid"), req.Photograph)
	})
}

func (h *CheckinHandler) MemberIdentityProof(c *gin.Context) {
	var req models.IdentityProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	proof := toIdentityProof(req)
	h.update(c, func(m *wizard.Machine) error {
		return m.SubmitMemberIdentityProof(c.Param("mid"), &proof)
	})
}

func (h *CheckinHandler) MemberEquipment(c *gin.Context) {
	var req models.EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.update(c, func(m *wizard.Machine) error {
		return m.SubmitMemberEquipment(c.Param("mid"), toEquipment(req))
	})
}

func (h *CheckinHandler) FinishMembers(c *gin.Context) {
	h.update(c, func(m *wizard.Machine) error {
		return m.FinishMembers()
	})
}

// NDAForm returns the agreement text with the form pre-filled from the
// visitor's details.
func (h *CheckinHandler) NDAForm(c *gin.Context) {
	snap, err := h.sessions.Get(c.Request.Context(), c.Param("sid"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	form := wizard.Restore(snap, h.now).NDADefaults()
	c.JSON(http.StatusOK, gin.H{"content": h.nda.Get().Content, "form": form})
}

func (h *CheckinHandler) AcceptNDA(c *gin.Context) {
	var req models.NDARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.update(c, func(m *wizard.Machine) error {
		return m.AcceptNDA(checkin.NDA{
			Signature: req.Signature,
			Date:      req.Date,
			Name:      req.Name,
			Company:   req.Company,
			Address:   req.Address,
		})
	})
}

func (h *CheckinHandler) PlaceToVisit(c *gin.Context) {
	var req models.PlaceToVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	var place *checkin.PlaceToVisit
	if req.PlaceToVisit != "" {
		p := checkin.PlaceToVisit(req.PlaceToVisit)
		place = &p
	}
	h.update(c, func(m *wizard.Machine) error {
		return m.SubmitPlaceToVisit(place)
	})
}

// Badge returns the visitor pass as JSON, or as a printable page with
// ?format=html.
func (h *CheckinHandler) Badge(c *gin.Context) {
	b, ok := h.badge(c)
	if !ok {
		return
	}
	if c.Query("format") != "html" {
		c.JSON(http.StatusOK, b)
		return
	}
	var buf bytes.Buffer
	if err := badge.RenderHTML(&buf, b); err != nil {
		respondError(c, err, nil)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *CheckinHandler) BadgeQR(c *gin.Context) {
	b, ok := h.badge(c)
	if !ok {
		return
	}
	png, err := badge.QRCode(b, badge.QRSize)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// badge reads the session without changing it. When the guard fails the
// redirect it causes is persisted.
func (h *CheckinHandler) badge(c *gin.Context) (badge.Badge, bool) {
	ctx := c.Request.Context()
	sid := c.Param("sid")
	snap, err := h.sessions.Get(ctx, sid)
	if err != nil {
		respondError(c, err, nil)
		return badge.Badge{}, false
	}
	if err := wizard.Restore(snap, h.now).EnterBadge(); err != nil {
		next, updErr := h.sessions.Update(ctx, sid, func(m *wizard.Machine) error {
			return m.EnterBadge()
		})
		if updErr != nil {
			err = updErr
		}
		respondError(c, err, withSession(next))
		return badge.Badge{}, false
	}
	b, err := badge.New(snap.State)
	if err != nil {
		respondError(c, err, nil)
		return badge.Badge{}, false
	}
	return b, true
}

// Finish admits the visitor and their members to the gate register and
// resets the session for the next visitor.
func (h *CheckinHandler) Finish(c *gin.Context) {
	var done checkin.State
	snap, err := h.sessions.Update(c.Request.Context(), c.Param("sid"), func(m *wizard.Machine) error {
		st, err := m.Finish()
		done = st
		return err
	})
	if err != nil {
		respondError(c, err, withSession(snap))
		return
	}
	admitted, err := h.roster.Add(done, h.now())
	if err != nil {
		respondError(c, err, nil)
		return
	}
	logger.FromContext(c).Info("visitor checked in",
		zap.String("visitor_id", *done.ID),
		zap.Int("admitted", len(admitted)))
	c.JSON(http.StatusOK, gin.H{
		"visitor":  done,
		"admitted": admitted,
		"session":  snap,
		"redirect": landingPage,
	})
}

func toBasicDetails(r models.BasicDetailsRequest) checkin.BasicDetails {
	return checkin.BasicDetails{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Phone: r.Phone}
}

func toCompanyDetails(r models.CompanyDetailsRequest) checkin.CompanyDetails {
	return checkin.CompanyDetails{
		CompanyName:    r.CompanyName,
		Address:        r.Address,
		Host:           checkin.Host{Name: r.Host.Name, Post: r.Host.Post, Department: r.Host.Department},
		PurposeOfVisit: r.PurposeOfVisit,
	}
}

func toIdentityProof(r models.IdentityProofRequest) checkin.IdentityProof {
	if checkin.ProofKind(r.Type) == checkin.ProofPicture {
		return checkin.PictureProof(r.Data)
	}
	return checkin.NumberProof(checkin.IDType(r.IDType), r.IDNumber)
}

func toEquipment(r models.EquipmentRequest) checkin.Equipment {
	items := func(in []models.ItemRequest) []checkin.Item {
		out := make([]checkin.Item, 0, len(in))
		for _, it := range in {
			out = append(out, checkin.Item{Name: it.Name, Quantity: it.Quantity})
		}
		return out
	}
	return checkin.Equipment{Electrical: items(r.Electrical), Mechanical: items(r.Mechanical)}
}
