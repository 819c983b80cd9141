package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AnjaliSharma2212/portfolio-app/internal/contact"
	"github.com/AnjaliSharma2212/portfolio-app/internal/session"
)

const sessionCookie = "contact_session"

// contactView is what contact.html renders.
type contactView struct {
	Form    contact.FormData
	State   string
	Busy    bool
	Success bool
	Notice  string
	Error   string
	Info    ContactInfo
}

func (s *server) contactView(sess contact.Session) contactView {
	return contactView{
		Form:    sess.Form,
		State:   sess.State.String(),
		Busy:    sess.Busy(),
		Success: sess.Acknowledge,
		Notice:  sess.Notice,
		Info:    s.content.Contact,
	}
}

// invalidView re-renders a rejected form as typed, on top of the session's
// current state.
func (s *server) invalidView(id string, form contact.FormData, msg string) contactView {
	sess, err := s.flow.Session(id)
	if err != nil {
		s.log.Error("loading contact session", zap.Error(err))
	}
	view := s.contactView(sess)
	view.Form = form
	view.Error = msg
	return view
}

// sessionID returns the visitor's contact session, issuing a cookie on
// first contact or when the cookie holds something we did not hand out.
func (s *server) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && session.ValidID(id) {
		return id
	}
	id := session.NewID()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(s.cfg.SessionTTL.Seconds()), "/", "", s.cfg.SecureCookies, true)
	return id
}

func (s *server) handleContactForm(c *gin.Context) {
	sess, err := s.flow.Session(s.sessionID(c))
	if err != nil {
		s.log.Error("loading contact session", zap.Error(err))
	}
	c.HTML(http.StatusOK, "contact.html", s.contactView(sess))
}

// submit runs one attempt. The relay call is detached from the request so a
// visitor closing the tab does not cancel a message already on its way.
func (s *server) submit(c *gin.Context, id string, form contact.FormData) (contact.Session, error) {
	return s.flow.Submit(context.WithoutCancel(c.Request.Context()), id, form)
}

func (s *server) handleContactSubmit(c *gin.Context) {
	id := s.sessionID(c)

	var form contact.FormData
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "contact.html", s.invalidView(id, form, "Could not read the form."))
		return
	}
	if err := form.Validate(); err != nil {
		c.HTML(http.StatusBadRequest, "contact.html", s.invalidView(id, form, "Please fill in every field."))
		return
	}

	sess, err := s.submit(c, id, form)
	view := s.contactView(sess)
	switch {
	case err == nil:
		c.HTML(http.StatusOK, "contact.html", view)
	case errors.Is(err, contact.ErrSubmissionInFlight), errors.Is(err, contact.ErrAcknowledgmentPending):
		c.HTML(http.StatusConflict, "contact.html", view)
	case errors.Is(err, contact.ErrSubmissionFailed):
		// 200 so HTMX swaps the fragment in and the visitor sees the notice.
		c.HTML(http.StatusOK, "contact.html", view)
	default:
		s.log.Error("contact submission", zap.String("session", id), zap.Error(err))
		view.Notice = contact.FailureNotice
		c.HTML(http.StatusInternalServerError, "contact.html", view)
	}
}

func (s *server) handleContactEdit(c *gin.Context) {
	var form contact.FormData
	if err := c.ShouldBind(&form); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	sess, err := s.flow.Edit(s.sessionID(c), form)
	if errors.Is(err, contact.ErrSubmissionInFlight) || errors.Is(err, contact.ErrAcknowledgmentPending) {
		c.HTML(http.StatusConflict, "contact.html", s.contactView(sess))
		return
	}
	if err != nil {
		s.log.Error("saving contact draft", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) handleContactDismiss(c *gin.Context) {
	sess, err := s.flow.Dismiss(s.sessionID(c))
	if err != nil {
		s.log.Error("dismissing acknowledgment", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.HTML(http.StatusOK, "contact.html", s.contactView(sess))
}

type contactResponse struct {
	State   string           `json:"state"`
	Message string           `json:"message,omitempty"`
	Form    contact.FormData `json:"form"`
}

func (s *server) handleContactStateJSON(c *gin.Context) {
	sess, err := s.flow.Session(s.sessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, contactResponse{State: "unknown", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, contactResponse{State: sess.State.String(), Message: sess.Notice, Form: sess.Form})
}

func (s *server) handleContactSubmitJSON(c *gin.Context) {
	id := s.sessionID(c)

	var form contact.FormData
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, contactResponse{State: contact.StateIdle.String(), Message: "invalid JSON body"})
		return
	}
	if err := form.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, contactResponse{State: contact.StateIdle.String(), Message: err.Error(), Form: form})
		return
	}

	sess, err := s.submit(c, id, form)
	resp := contactResponse{State: sess.State.String(), Form: sess.Form}
	switch {
	case err == nil:
		resp.Message = "Thank you for reaching out. I'll get back to you soon."
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, contact.ErrSubmissionInFlight), errors.Is(err, contact.ErrAcknowledgmentPending):
		resp.Message = err.Error()
		c.JSON(http.StatusConflict, resp)
	case errors.Is(err, contact.ErrSubmissionFailed):
		resp.Message = contact.FailureNotice
		c.JSON(http.StatusBadGateway, resp)
	default:
		s.log.Error("contact submission", zap.String("session", id), zap.Error(err))
		resp.Message = contact.FailureNotice
		c.JSON(http.StatusInternalServerError, resp)
	}
}

func (s *server) handleContactDismissJSON(c *gin.Context) {
	sess, err := s.flow.Dismiss(s.sessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, contactResponse{State: "unknown", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, contactResponse{State: sess.State.String(), Form: sess.Form})
}
