package photo

import (
	"strings"

	"github.com/dustin/go-humanize"

	"aniversario/internal/client"
)

// View is the section of the photo page currently shown.
type View string

const (
	ViewOptions    View = "options"
	ViewSelecting  View = "selecting"
	ViewPreviewing View = "previewing"
	ViewSending    View = "sending"
	ViewSuccess    View = "success"
	ViewError      View = "error"
)

// SourceFile is the image picked by the visitor, as received.
type SourceFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// State is the upload controller for one visitor. Each method is one
// transition; the generation counter ties asynchronous compression results
// to the file they were started for.
type State struct {
	View           View
	File           *SourceFile
	Generation     uint64
	Preview        string
	OriginalSize   string
	CompressedSize string
	Compressed     *Compressed
	Compressing    bool
	CompressError  string
	ErrorMessage   string
	Loading        bool

	sending bool
}

// NewState returns a controller on the options view.
func NewState() *State {
	return &State{View: ViewOptions}
}

// ShowOptions moves from the landing cards to the picker.
func (s *State) ShowOptions() error {
	if s.View != ViewOptions {
		return ErrWrongView
	}
	s.View = ViewSelecting
	return nil
}

// SelectFile accepts a new source image and returns the generation the
// caller must hand back to ApplyCompression. Selecting while a previous
// file is still compressing supersedes it.
func (s *State) SelectFile(file SourceFile) (uint64, error) {
	if s.sending {
		return 0, ErrSendInFlight
	}
	if s.View != ViewSelecting && s.View != ViewPreviewing {
		return 0, ErrWrongView
	}
	if !strings.HasPrefix(strings.ToLower(file.ContentType), "image/") {
		return 0, ErrNotImage
	}
	if len(file.Data) == 0 {
		return 0, ErrEmptyFile
	}
	if file.Size <= 0 {
		file.Size = int64(len(file.Data))
	}

	s.Generation++
	s.File = &file
	s.View = ViewPreviewing
	s.Preview = DataURL(file.ContentType, file.Data)
	s.OriginalSize = FormatSize(file.Size)
	s.CompressedSize = MsgCompressing
	s.Compressed = nil
	s.Compressing = true
	s.CompressError = ""
	s.ErrorMessage = ""
	return s.Generation, nil
}

// ApplyCompression stores the outcome of the compression started for gen.
// Results for an older generation are dropped with ErrStaleResult.
func (s *State) ApplyCompression(gen uint64, result *Compressed, err error) error {
	if gen != s.Generation || s.File == nil {
		return ErrStaleResult
	}
	s.Compressing = false
	if err != nil {
		s.Compressed = nil
		s.CompressedSize = MsgCompressError
		s.CompressError = MsgDecodeFailed
		return nil
	}
	s.Compressed = result
	s.CompressedSize = FormatSize(result.EstimatedSize)
	return nil
}

// Ready reports whether a compressed image is available to send.
func (s *State) Ready() bool {
	return s.Compressed != nil
}

// BeginSend locks the controller for sending and returns the payload.
func (s *State) BeginSend() (client.UploadRequest, error) {
	if s.sending {
		return client.UploadRequest{}, ErrSendInFlight
	}
	if s.Compressed == nil {
		return client.UploadRequest{}, ErrNotReady
	}

	name := DefaultFileName
	if s.File != nil && s.File.Name != "" {
		name = s.File.Name
	}

	s.sending = true
	s.Loading = true
	s.View = ViewSending
	return client.UploadRequest{
		ImageData: s.Compressed.DataURL,
		FileName:  name,
		MimeType:  JPEGMimeType,
	}, nil
}

// SendSucceeded shows the success view and forgets the sent file.
func (s *State) SendSucceeded() error {
	if !s.sending {
		return ErrNotSending
	}
	s.sending = false
	s.Loading = false
	s.Reset()
	s.View = ViewSuccess
	return nil
}

// SendFailed shows the error view with msg.
func (s *State) SendFailed(msg string) error {
	if !s.sending {
		return ErrNotSending
	}
	if msg == "" {
		msg = MsgSendFailed
	}
	s.sending = false
	s.Loading = false
	s.View = ViewError
	s.ErrorMessage = msg
	return nil
}

// Cancel drops the previewed file and returns to the picker.
func (s *State) Cancel() error {
	if s.View != ViewPreviewing {
		return ErrWrongView
	}
	s.Reset()
	s.View = ViewSelecting
	return nil
}

// Back returns to the landing cards from anywhere except an active send.
func (s *State) Back() error {
	if s.sending {
		return ErrSendInFlight
	}
	s.Reset()
	s.View = ViewOptions
	return nil
}

// SendAnother returns from the success view to the picker.
func (s *State) SendAnother() error {
	if s.View != ViewSuccess {
		return ErrWrongView
	}
	s.View = ViewSelecting
	return nil
}

// Retry returns from the error view to the picker.
func (s *State) Retry() error {
	if s.View != ViewError {
		return ErrWrongView
	}
	s.Reset()
	s.View = ViewSelecting
	return nil
}

// Reset clears the selection, compressed data, preview and size displays.
// The generation moves forward so compressions still running are ignored.
func (s *State) Reset() {
	s.Generation++
	s.File = nil
	s.Preview = ""
	s.OriginalSize = ""
	s.CompressedSize = ""
	s.Compressed = nil
	s.Compressing = false
	s.CompressError = ""
	s.ErrorMessage = ""
}

// FormatSize renders a byte count for the size displays.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}
