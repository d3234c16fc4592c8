package rsvp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"aniversario/internal/client"
)

// State is the position of a form in its submission cycle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
)

// Failure explains why the last submission returned the form to idle.
type Failure string

const (
	FailureNone        Failure = ""
	FailureInvalid     Failure = "invalid"
	FailureRejected    Failure = "rejected"
	FailureUnreachable Failure = "unreachable"
)

// Form is the confirmation controller state for one visitor. It is a plain
// value: every operation is a method that moves it from one state to the
// next, and the page renders whatever View returns.
type Form struct {
	State           State
	Failure         Failure
	Primary         string
	PrimaryError    string
	Companions      GuestList
	Message         string
	Loading         bool
	Focus           string
	Announcement    string
	Confirmed       []string
	GiftSuggestions json.RawMessage
	Confetti        bool
	HintOpen        bool

	submitting bool
	sent       []string
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{State: StateIdle}
}

// AddCompanion appends an empty companion row and focuses it.
func (f *Form) AddCompanion() error {
	list, field, err := f.Companions.Add()
	if err != nil {
		f.Announcement = MsgMaxCompanions
		return err
	}
	f.Companions = list
	f.Focus = field.FieldID()
	f.Announcement = fmt.Sprintf(msgCompanionAdded, field.Index)
	return nil
}

// RemoveCompanion drops the row at index and moves focus to the new last
// companion, or to the primary field when none remain. Rows are frozen
// while a submission is in flight, since its answer is mapped by position.
func (f *Form) RemoveCompanion(index int) error {
	if f.submitting {
		return ErrSubmissionInFlight
	}
	list, err := f.Companions.Remove(index)
	if err != nil {
		return err
	}
	f.Companions = list
	if n := len(list); n > 0 {
		f.Focus = list[n-1].FieldID()
	} else {
		f.Focus = PrimaryFieldID
	}
	f.Announcement = fmt.Sprintf(msgCompanionRemoved, index)
	return nil
}

// SetPrimary records an edit of the primary name.
func (f *Form) SetPrimary(value string) {
	f.Primary = value
	f.PrimaryError = ""
	f.Message = ""
}

// SetCompanion records an edit of the companion at index.
func (f *Form) SetCompanion(index int, value string) error {
	if f.submitting {
		return ErrSubmissionInFlight
	}
	return f.Companions.Set(index, value)
}

// Validate runs the local checks without touching the form.
func (f *Form) Validate() ValidationResult {
	return Validate(f.Primary, f.companionValues())
}

// CanAddCompanion reports whether another companion row fits.
func (f *Form) CanAddCompanion() bool {
	return len(f.Companions) < MaxCompanions
}

// InFlight reports whether a submission is waiting on the remote API.
func (f *Form) InFlight() bool {
	return f.submitting
}

// BeginSubmit validates the form. On success it locks the form for
// submission and returns the payload to send; on failure it renders the
// field errors and focuses the first invalid field.
func (f *Form) BeginSubmit() (client.ConfirmRequest, error) {
	if f.submitting {
		return client.ConfirmRequest{}, ErrSubmissionInFlight
	}
	if f.State == StateSuccess {
		return client.ConfirmRequest{}, ErrAlreadyConfirmed
	}

	f.State = StateValidating
	f.clearErrors()
	f.Message = ""

	result := f.Validate()
	if !result.Valid {
		f.applyValidation(result)
		f.Focus = result.FirstInvalidField()
		f.State = StateIdle
		f.Failure = FailureInvalid
		return client.ConfirmRequest{}, ErrValidationFailed
	}

	primary := trimmed(f.Primary)
	companions := f.companionValues()

	f.State = StateSubmitting
	f.Failure = FailureNone
	f.Loading = true
	f.submitting = true
	f.sent = append([]string{primary}, companions...)

	req := client.ConfirmRequest{Name: primary}
	if len(companions) > 0 {
		req.Companions = companions
	}
	return req, nil
}

// CompleteSubmit applies the remote answer to a submission started with
// BeginSubmit.
func (f *Form) CompleteSubmit(res *client.ConfirmResult) error {
	if !f.submitting {
		return ErrNotSubmitting
	}
	f.submitting = false
	f.Loading = false

	if res.OK() {
		f.State = StateSuccess
		f.Failure = FailureNone
		f.Confetti = true
		f.HintOpen = true
		f.GiftSuggestions = res.Body.GiftSuggestions
		f.Confirmed = append([]string(nil), f.sent...)
		return nil
	}

	f.State = StateIdle
	f.Failure = FailureRejected
	f.applyRejection(res)
	return nil
}

// FailSubmit handles a submission whose request never got an answer.
func (f *Form) FailSubmit() error {
	if !f.submitting {
		return ErrNotSubmitting
	}
	f.submitting = false
	f.Loading = false
	f.State = StateIdle
	f.Failure = FailureUnreachable
	f.Message = MsgConnectionFailed
	return nil
}

// OpenHint shows the gift hint popup.
func (f *Form) OpenHint() {
	f.HintOpen = true
}

// CloseHint hides the gift hint popup.
func (f *Form) CloseHint() {
	f.HintOpen = false
}

// DismissMessage hides the banner.
func (f *Form) DismissMessage() {
	f.Message = ""
}

func (f *Form) applyRejection(res *client.ConfirmResult) {
	body := res.Body
	switch {
	case body.BlockedName:
		if res.StatusCode == http.StatusForbidden {
			f.PrimaryError = body.Message
		}
		for i, blocked := range body.BlockedCompanions {
			if blocked {
				f.setCompanionError(i, body.Message)
			}
		}
	case body.Duplicates != nil:
		f.applyFlags(body.Duplicates, MsgAlreadyConfirmed)
	case body.EmptyFields != nil:
		f.applyFlags(body.EmptyFields, MsgFillAllFields)
	default:
		if body.Message != "" {
			f.Message = body.Message
		} else {
			f.Message = MsgConfirmFailed
		}
	}
}

func (f *Form) applyFlags(flags *client.FieldFlags, msg string) {
	if flags.Name {
		f.PrimaryError = msg
	}
	for i := range f.Companions {
		if flags.Flagged(i) {
			f.Companions[i].Error = msg
		}
	}
}

func (f *Form) applyValidation(result ValidationResult) {
	f.PrimaryError = result.Errors.Primary
	for i, msg := range result.Errors.Companions {
		f.setCompanionError(i, msg)
	}
}

func (f *Form) setCompanionError(pos int, msg string) {
	if pos >= 0 && pos < len(f.Companions) {
		f.Companions[pos].Error = msg
	}
}

func (f *Form) clearErrors() {
	f.PrimaryError = ""
	for i := range f.Companions {
		f.Companions[i].Error = ""
	}
}

func (f *Form) companionValues() []string {
	return f.Companions.Values()
}
