package photo

import "errors"

var (
	ErrNotImage     = errors.New("selected file is not an image")
	ErrEmptyFile    = errors.New("selected file is empty")
	ErrFileTooLarge = errors.New("selected file exceeds the upload limit")
	ErrDecode       = errors.New("image could not be decoded")
	ErrNotReady     = errors.New("compression has not finished")
	ErrSendInFlight = errors.New("a photo is already being sent")
	ErrNotSending   = errors.New("no photo is being sent")
	ErrWrongView    = errors.New("operation not available in the current view")
	ErrStaleResult  = errors.New("compression result belongs to a replaced file")
)

// Messages shown on the photo page.
const (
	MsgInvalidImage     = "Por favor, selecione uma imagem válida."
	MsgDecodeFailed     = "Erro ao carregar imagem"
	MsgWaitCompression  = "Aguarde a compressão da imagem."
	MsgCompressing      = "Comprimindo..."
	MsgCompressError    = "Erro"
	MsgSendFailed       = "Erro ao enviar foto"
	MsgConnectionFailed = "Erro ao conectar com o servidor. Verifique sua internet."
	DefaultFileName     = "foto.jpg"
)
