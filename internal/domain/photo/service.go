package photo

import (
	"context"
	"errors"
	"log"
	"sync"

	"golang.org/x/sync/semaphore"

	"aniversario/internal/client"
	"aniversario/internal/session"
)

// Uploader is the remote side of a photo upload.
type Uploader interface {
	UploadPhoto(ctx context.Context, req client.UploadRequest) (*client.UploadResult, error)
}

// Notifier receives the outcome of background compressions.
type Notifier interface {
	Notify(sessionID string, event *Event)
}

// DefaultMaxCompressions is how many images are decoded at once.
const DefaultMaxCompressions = 4

// CompressFunc turns source bytes into an upload-ready image.
type CompressFunc func(ctx context.Context, data []byte, size int64) (*Compressed, error)

// Service drives the per-session upload controllers. Compression runs in the
// background; Close waits for it.
type Service struct {
	states   *session.Store[State]
	api      Uploader
	notifier Notifier
	compress CompressFunc
	slots    *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewService(states *session.Store[State], api Uploader, notifier Notifier) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		states:   states,
		api:      api,
		notifier: notifier,
		compress: Compress,
		slots:    semaphore.NewWeighted(DefaultMaxCompressions),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// WithCompressor swaps the compression routine.
func (s *Service) WithCompressor(fn CompressFunc) *Service {
	s.compress = fn
	return s
}

// WithMaxCompressions bounds how many compressions run at the same time.
// Selections beyond the limit wait for a free slot.
func (s *Service) WithMaxCompressions(n int) *Service {
	if n > 0 {
		s.slots = semaphore.NewWeighted(int64(n))
	}
	return s
}

// Wait blocks until every background compression has been applied.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Close aborts running compressions and waits for them to return.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Service) View(sessionID string) ViewModel {
	vm, _ := s.apply(sessionID, func(*State) error { return nil })
	return vm
}

func (s *Service) ShowOptions(sessionID string) (ViewModel, error) {
	return s.apply(sessionID, (*State).ShowOptions)
}

func (s *Service) Cancel(sessionID string) (ViewModel, error) {
	return s.apply(sessionID, (*State).Cancel)
}

func (s *Service) Back(sessionID string) (ViewModel, error) {
	return s.apply(sessionID, (*State).Back)
}

func (s *Service) SendAnother(sessionID string) (ViewModel, error) {
	return s.apply(sessionID, (*State).SendAnother)
}

func (s *Service) Retry(sessionID string) (ViewModel, error) {
	return s.apply(sessionID, (*State).Retry)
}

// SelectFile stores file as the session's selection and starts compressing
// it in the background. The returned view is in the compressing state.
func (s *Service) SelectFile(sessionID string, file SourceFile) (ViewModel, error) {
	var gen uint64
	vm, err := s.apply(sessionID, func(st *State) error {
		var err error
		gen, err = st.SelectFile(file)
		return err
	})
	if err != nil {
		return vm, err
	}

	log.Printf("photo_selected session=%s file=%q type=%s size=%d generation=%d", sessionID, file.Name, file.ContentType, file.Size, gen)

	s.wg.Add(1)
	go s.compressInBackground(sessionID, gen, file.Data, file.Size)
	return vm, nil
}

func (s *Service) compressInBackground(sessionID string, gen uint64, data []byte, size int64) {
	defer s.wg.Done()

	if err := s.slots.Acquire(s.ctx, 1); err != nil {
		return
	}
	result, compressErr := s.compress(s.ctx, data, size)
	s.slots.Release(1)
	if errors.Is(compressErr, context.Canceled) {
		return
	}

	vm, err := s.apply(sessionID, func(st *State) error {
		return st.ApplyCompression(gen, result, compressErr)
	})
	if errors.Is(err, ErrStaleResult) {
		log.Printf("photo_compression_stale session=%s generation=%d", sessionID, gen)
		return
	}

	event := &Event{Type: EventCompressionReady, Payload: &vm}
	if compressErr != nil {
		log.Printf("photo_compression_failed session=%s generation=%d error=%v", sessionID, gen, compressErr)
		event.Type = EventCompressionFailed
	} else {
		log.Printf("photo_compressed session=%s generation=%d original=%d compressed=%d quality=%.1f",
			sessionID, gen, size, result.EstimatedSize, result.Quality)
	}
	if s.notifier != nil {
		s.notifier.Notify(sessionID, event)
	}
}

// Send uploads the compressed image of the session.
func (s *Service) Send(ctx context.Context, sessionID string) (ViewModel, error) {
	var req client.UploadRequest
	vm, err := s.apply(sessionID, func(st *State) error {
		var err error
		req, err = st.BeginSend()
		return err
	})
	if err != nil {
		return vm, err
	}

	res, callErr := s.api.UploadPhoto(ctx, req)

	return s.apply(sessionID, func(st *State) error {
		switch {
		case callErr != nil:
			log.Printf("photo_send_failed session=%s error=%v", sessionID, callErr)
			return st.SendFailed(MsgConnectionFailed)
		case !res.OK():
			log.Printf("photo_send_rejected session=%s status=%d message=%q", sessionID, res.StatusCode, res.Body.Message)
			return st.SendFailed(res.Body.Message)
		default:
			log.Printf("photo_sent session=%s file=%q", sessionID, req.FileName)
			return st.SendSucceeded()
		}
	})
}

func (s *Service) apply(sessionID string, fn func(*State) error) (ViewModel, error) {
	var vm ViewModel
	err := s.states.Update(sessionID, func(st *State) error {
		err := fn(st)
		vm = st.ViewModel()
		return err
	})
	return vm, err
}
