package rsvp

import "errors"

var (
	ErrTooManyCompanions  = errors.New("companion limit reached")
	ErrCompanionNotFound  = errors.New("companion not found")
	ErrValidationFailed   = errors.New("confirmation form is invalid")
	ErrSubmissionInFlight = errors.New("a confirmation is already being submitted")
	ErrNotSubmitting      = errors.New("no confirmation is being submitted")
	ErrAlreadyConfirmed   = errors.New("presence already confirmed in this session")
)

// Messages shown next to fields and in the banner.
const (
	MsgFillAllFields    = "Preencha todos os campos"
	MsgNotInvited       = "Essa pessoa não foi convidada"
	MsgDuplicateInForm  = "Nome duplicado no formulário"
	MsgAlreadyConfirmed = "Presença já confirmada"
	MsgConfirmFailed    = "Erro ao confirmar presença"
	MsgConnectionFailed = "Erro ao conectar com o servidor. Tente novamente."
	MsgMaxCompanions    = "Máximo de 3 acompanhantes atingido"
	msgCompanionAdded   = "Campo de acompanhante %d adicionado"
	msgCompanionRemoved = "Acompanhante %d removido"
)
