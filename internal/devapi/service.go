package devapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"aniversario/internal/client"
	"aniversario/internal/domain/rsvp"
)

const (
	DefaultMaxPhotoBytes = 10 * 1024 * 1024
	DefaultUploadsDir    = "./uploads"
)

// Service answers the two remote endpoints the invitation page talks to.
type Service struct {
	repo          Repository
	uploadsDir    string
	maxPhotoBytes int64
	gifts         json.RawMessage
}

func NewService(repo Repository, uploadsDir string, maxPhotoBytes int64, gifts []string) *Service {
	if uploadsDir == "" {
		uploadsDir = DefaultUploadsDir
	}
	if maxPhotoBytes <= 0 {
		maxPhotoBytes = DefaultMaxPhotoBytes
	}
	var raw json.RawMessage
	if len(gifts) > 0 {
		raw, _ = json.Marshal(gifts)
	}
	return &Service{repo: repo, uploadsDir: uploadsDir, maxPhotoBytes: maxPhotoBytes, gifts: raw}
}

// Confirm checks a confirmation in the same order the page expects its
// rejections: empty fields, blocked names, duplicates, then stores it.
// The returned status is the HTTP status to answer with.
func (s *Service) Confirm(ctx context.Context, req *ConfirmRequest) (int, client.ConfirmResponse, error) {
	primary := strings.TrimSpace(req.Name)
	companions := make([]string, len(req.Companions))
	for i, c := range req.Companions {
		companions[i] = strings.TrimSpace(c)
	}

	if flags, ok := emptyFields(primary, companions); ok {
		return http.StatusBadRequest, client.ConfirmResponse{Message: MsgFillAllFields, EmptyFields: flags}, nil
	}

	if primaryBlocked, blocked, hit := blockedNames(primary, companions); hit {
		status := http.StatusUnprocessableEntity
		if primaryBlocked {
			status = http.StatusForbidden
		}
		return status, client.ConfirmResponse{
			Message:           MsgSomeoneBlocked,
			BlockedName:       true,
			BlockedCompanions: blocked,
		}, nil
	}

	all := append([]string{primary}, companions...)
	if positions := rsvp.DuplicatePositions(all); len(positions) > 0 {
		return http.StatusConflict, client.ConfirmResponse{
			Message:    MsgDuplicateInForm,
			Duplicates: flagPositions(positions, len(companions)),
		}, nil
	}

	normalized := make([]string, len(all))
	for i, n := range all {
		normalized[i] = rsvp.Normalize(n)
	}

	resp, err := s.rejectConfirmed(ctx, normalized, len(companions))
	if err != nil {
		return http.StatusInternalServerError, client.ConfirmResponse{Message: MsgInternal}, err
	}
	if resp != nil {
		return http.StatusConflict, *resp, nil
	}

	groupID := uuid.NewString()
	now := time.Now()
	rows := make([]*Confirmation, len(all))
	for i, name := range all {
		rows[i] = &Confirmation{
			ID:             uuid.NewString(),
			Name:           name,
			NormalizedName: normalized[i],
			GroupID:        groupID,
			IsCompanion:    i > 0,
			CreatedAt:      now,
		}
	}

	if err := s.repo.CreateConfirmations(ctx, rows); err != nil {
		if errors.Is(err, ErrAlreadyConfirmed) {
			// Lost a race with a concurrent confirmation of the same name.
			resp, qerr := s.rejectConfirmed(ctx, normalized, len(companions))
			if qerr == nil && resp != nil {
				return http.StatusConflict, *resp, nil
			}
			return http.StatusConflict, client.ConfirmResponse{Message: MsgAlreadyInList}, nil
		}
		return http.StatusInternalServerError, client.ConfirmResponse{Message: MsgInternal}, fmt.Errorf("failed to save confirmation: %w", err)
	}

	log.Printf("devapi_confirmed group=%s names=%d", groupID, len(rows))
	return http.StatusCreated, client.ConfirmResponse{
		Success:         true,
		Message:         MsgConfirmed,
		GiftSuggestions: s.gifts,
	}, nil
}

// ListConfirmations returns every stored attendee in confirmation order.
func (s *Service) ListConfirmations(ctx context.Context) ([]*Confirmation, error) {
	return s.repo.ListConfirmations(ctx)
}

func (s *Service) rejectConfirmed(ctx context.Context, normalized []string, companions int) (*client.ConfirmResponse, error) {
	existing, err := s.repo.ConfirmedNames(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to look up confirmations: %w", err)
	}
	if len(existing) == 0 {
		return nil, nil
	}
	var positions []int
	for i, n := range normalized {
		if existing[n] {
			positions = append(positions, i)
		}
	}
	return &client.ConfirmResponse{
		Message:    MsgAlreadyInList,
		Duplicates: flagPositions(positions, companions),
	}, nil
}

// Upload decodes a compressed photo, checks it really is a JPEG and writes
// it under uploadsDir/YYYY/MM/DD.
func (s *Service) Upload(ctx context.Context, req *UploadRequest) (*Photo, error) {
	data, err := decodeImageData(req.ImageData)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyPhoto
	}
	if int64(len(data)) > s.maxPhotoBytes {
		return nil, ErrPhotoTooLarge
	}
	if !mimetype.Detect(data).Is("image/jpeg") {
		return nil, ErrNotJPEG
	}

	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.uploadsDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	id := uuid.New().String()
	filename := fmt.Sprintf("%s_%s.jpg", id, sanitizeName(req.FileName))
	absPath := filepath.Join(absDir, filename)
	if err := os.WriteFile(absPath, data, 0644); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	original := req.FileName
	if original == "" {
		original = "foto.jpg"
	}
	photo := &Photo{
		ID:           id,
		OriginalName: original,
		FilePath:     filepath.ToSlash(filepath.Join(relDir, filename)),
		MimeType:     "image/jpeg",
		Size:         int64(len(data)),
		CreatedAt:    now,
	}
	if err := s.repo.CreatePhoto(ctx, photo); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to save photo record: %w", err)
	}

	log.Printf("devapi_photo_stored id=%s path=%s size=%d", photo.ID, photo.FilePath, photo.Size)
	return photo, nil
}

func emptyFields(primary string, companions []string) (*client.FieldFlags, bool) {
	flags := &client.FieldFlags{Name: primary == ""}
	hit := flags.Name
	if len(companions) > 0 {
		flags.Companions = make([]bool, len(companions))
		for i, c := range companions {
			if c == "" {
				flags.Companions[i] = true
				hit = true
			}
		}
	}
	return flags, hit
}

func blockedNames(primary string, companions []string) (primaryBlocked bool, blocked []bool, hit bool) {
	primaryBlocked = rsvp.IsBlocked(primary)
	hit = primaryBlocked
	if len(companions) > 0 {
		blocked = make([]bool, len(companions))
		for i, c := range companions {
			if rsvp.IsBlocked(c) {
				blocked[i] = true
				hit = true
			}
		}
	}
	return primaryBlocked, blocked, hit
}

// flagPositions converts positions over [primary, companions...] into flags.
func flagPositions(positions []int, companions int) *client.FieldFlags {
	flags := &client.FieldFlags{}
	if companions > 0 {
		flags.Companions = make([]bool, companions)
	}
	for _, p := range positions {
		if p == 0 {
			flags.Name = true
			continue
		}
		flags.Companions[p-1] = true
	}
	return flags
}

// decodeImageData accepts either a data URL or bare base64.
func decodeImageData(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma == -1 || !strings.HasSuffix(s[:comma], ";base64") {
			return nil, ErrInvalidImageData
		}
		s = s[comma+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageData, err)
	}
	return data, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" || name == "." || name == "_" {
		return "foto"
	}
	return name
}
