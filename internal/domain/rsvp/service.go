package rsvp

import (
	"context"
	"errors"
	"log"

	"aniversario/internal/client"
	"aniversario/internal/session"
)

// Confirmer is the remote side of a confirmation.
type Confirmer interface {
	ConfirmPresence(ctx context.Context, req client.ConfirmRequest) (*client.ConfirmResult, error)
}

// Service drives the per-session confirmation forms.
type Service struct {
	forms *session.Store[Form]
	api   Confirmer
}

func NewService(forms *session.Store[Form], api Confirmer) *Service {
	return &Service{forms: forms, api: api}
}

// View returns the current form of a session.
func (s *Service) View(sessionID string) View {
	var view View
	_ = s.forms.Update(sessionID, func(f *Form) error {
		view = f.View()
		return nil
	})
	return view
}

func (s *Service) AddCompanion(sessionID string) (View, error) {
	return s.apply(sessionID, (*Form).AddCompanion)
}

func (s *Service) RemoveCompanion(sessionID string, index int) (View, error) {
	return s.apply(sessionID, func(f *Form) error {
		return f.RemoveCompanion(index)
	})
}

func (s *Service) SetPrimary(sessionID, value string) View {
	view, _ := s.apply(sessionID, func(f *Form) error {
		f.SetPrimary(value)
		return nil
	})
	return view
}

func (s *Service) SetCompanion(sessionID string, index int, value string) (View, error) {
	return s.apply(sessionID, func(f *Form) error {
		return f.SetCompanion(index, value)
	})
}

func (s *Service) OpenHint(sessionID string) View {
	view, _ := s.apply(sessionID, func(f *Form) error {
		f.OpenHint()
		return nil
	})
	return view
}

func (s *Service) CloseHint(sessionID string) View {
	view, _ := s.apply(sessionID, func(f *Form) error {
		f.CloseHint()
		return nil
	})
	return view
}

func (s *Service) DismissMessage(sessionID string) View {
	view, _ := s.apply(sessionID, func(f *Form) error {
		f.DismissMessage()
		return nil
	})
	return view
}

// Submit validates the session's form and, when it is valid, sends it to
// the remote API. The session lock is not held during the network call, so
// a second Submit arriving meanwhile sees the in-flight flag and is refused.
func (s *Service) Submit(ctx context.Context, sessionID string) (View, error) {
	var req client.ConfirmRequest
	view, err := s.apply(sessionID, func(f *Form) error {
		var err error
		req, err = f.BeginSubmit()
		return err
	})
	if err != nil {
		return view, err
	}

	log.Printf("rsvp_submit session=%s companions=%d", sessionID, len(req.Companions))
	res, callErr := s.api.ConfirmPresence(ctx, req)

	return s.apply(sessionID, func(f *Form) error {
		if callErr != nil {
			log.Printf("rsvp_submit_failed session=%s error=%v", sessionID, callErr)
			return f.FailSubmit()
		}
		if !res.OK() {
			log.Printf("rsvp_submit_rejected session=%s status=%d message=%q", sessionID, res.StatusCode, res.Body.Message)
		}
		return f.CompleteSubmit(res)
	})
}

func (s *Service) apply(sessionID string, fn func(*Form) error) (View, error) {
	var view View
	err := s.forms.Update(sessionID, func(f *Form) error {
		err := fn(f)
		view = f.View()
		return err
	})
	if err != nil && !isExpected(err) {
		log.Printf("rsvp_error session=%s error=%v", sessionID, err)
	}
	return view, err
}

func isExpected(err error) bool {
	return errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrTooManyCompanions) ||
		errors.Is(err, ErrCompanionNotFound) ||
		errors.Is(err, ErrSubmissionInFlight) ||
		errors.Is(err, ErrAlreadyConfirmed)
}
