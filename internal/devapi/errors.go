package devapi

import "errors"

var (
	ErrAlreadyConfirmed = errors.New("name already confirmed")
	ErrInvalidImageData = errors.New("image data is not valid base64")
	ErrNotJPEG          = errors.New("image data is not a jpeg")
	ErrPhotoTooLarge    = errors.New("photo exceeds maximum allowed size")
	ErrEmptyPhoto       = errors.New("photo is empty")
)

// Messages returned to the page.
const (
	MsgConfirmed       = "Presença confirmada com sucesso!"
	MsgPhotoStored     = "Foto enviada com sucesso!"
	MsgInvalidJSON     = "Requisição inválida"
	MsgInvalidPhoto    = "Imagem inválida"
	MsgPhotoTooLarge   = "Imagem muito grande"
	MsgInternal        = "Erro interno do servidor"
	MsgSomeoneBlocked  = "Essa pessoa não foi convidada"
	MsgAlreadyInList   = "Presença já confirmada"
	MsgFillAllFields   = "Preencha todos os campos"
	MsgDuplicateInForm = "Nome duplicado no formulário"
)
