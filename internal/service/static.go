package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wb-service/portal/backend/internal/models"
	"github.com/wb-service/portal/backend/internal/storage"
	"gorm.io/gorm"
)

// FileType is the category an upload is filed under
type FileType string

const (
	FileDocument FileType = "document"
	FileImage    FileType = "image"
	FileVideo    FileType = "video"
	FileAudio    FileType = "audio"
)

// DefaultMaxUploadBytes is the upload ceiling when none is configured
const DefaultMaxUploadBytes = 50 * 1000 * 1000

type allowedContent struct {
	major    string
	subtypes []string
}

var allowedContentTypes = map[FileType]allowedContent{
	FileDocument: {major: "application", subtypes: []string{
		"pdf",
		"vnd.openxmlformats-officedocument.wordprocessingml.document",
		"vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"vnd.openxmlformats-officedocument.presentationml.presentation",
	}},
	FileImage: {major: "image", subtypes: []string{"webp", "jpg", "jpeg", "png"}},
	FileVideo: {major: "video", subtypes: []string{"mp4"}},
	FileAudio: {major: "audio", subtypes: []string{"mp3", "mpeg"}},
}

// Upload is an incoming file with its form fields
type Upload struct {
	CreatedBy   int64
	Type        string
	Name        string
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// StoredFile is an open file ready to be streamed to a client
type StoredFile struct {
	// DownloadName is empty when the upload had no usable name
	DownloadName string
	MimeType     string
	Content      io.ReadCloser
}

// StaticService stores uploaded files and their metadata
type StaticService struct {
	db        *gorm.DB
	store     storage.Store
	writes    storage.Submitter
	maxUpload int64
	log       zerolog.Logger
}

// Ensure StaticService implements IStaticService
var _ IStaticService = (*StaticService)(nil)

// NewStaticService creates a new StaticService. File bytes are written
// through writes after the metadata row is committed.
func NewStaticService(db *gorm.DB, store storage.Store, writes storage.Submitter, maxUpload int64, logger zerolog.Logger) *StaticService {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	return &StaticService{
		db:        db,
		store:     store,
		writes:    writes,
		maxUpload: maxUpload,
		log:       logger.With().Str("service", "static").Logger(),
	}
}

// Validate checks the file type and content type and returns the file
// extension to store the upload under.
func (s *StaticService) Validate(fileType, contentType string) (string, error) {
	allowed, ok := allowedContentTypes[FileType(fileType)]
	if !ok {
		return "", WrongParameters("type")
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	for _, sub := range allowed.subtypes {
		if ct == allowed.major+"/"+sub {
			return storage.ExtensionFor(ct), nil
		}
	}
	return "", IncorrectFileType(allowed.subtypes)
}

// Upload validates the file, commits its metadata row and hands the
// bytes to the background writer. It returns the new file id.
func (s *StaticService) Upload(ctx context.Context, in Upload) (int64, error) {
	ext, err := s.Validate(in.Type, in.ContentType)
	if err != nil {
		return 0, err
	}
	if in.Size > s.maxUpload {
		return 0, TooLarge()
	}

	data, err := io.ReadAll(io.LimitReader(in.Content, s.maxUpload+1))
	if err != nil {
		return 0, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxUpload {
		return 0, TooLarge()
	}

	name := displayName(in.Name, in.Filename)
	key := fmt.Sprintf("%s/%s.%s", in.Type, uuid.NewString(), ext)
	row := models.File{
		Path:      key,
		CreatedBy: in.CreatedBy,
	}
	if name != "" {
		row.Name = &name
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}

	contentType := storage.MimeTypeFor(ext)
	s.writes.Submit("store "+key, func(ctx context.Context) error {
		return s.store.Put(ctx, key, data, contentType)
	})

	s.log.Info().Int64("file_id", row.ID).Str("key", key).Int("bytes", len(data)).Msg("file uploaded")
	return row.ID, nil
}

// displayName prefers the explicit name, then the filename without its last extension
func displayName(name, filename string) string {
	if name != "" {
		return name
	}
	if i := strings.LastIndexByte(filename, '.'); i > 0 {
		return filename[:i]
	}
	return filename
}

// Get opens the file with the given id
func (s *StaticService) Get(ctx context.Context, id int64) (*StoredFile, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, NotFound("file")
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(row.Path), "."))
	content, err := s.store.Open(ctx, row.Path)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, NotFound("file")
	}
	if err != nil {
		return nil, err
	}

	file := &StoredFile{
		MimeType: storage.MimeTypeFor(ext),
		Content:  content,
	}
	if row.Name != nil {
		file.DownloadName = *row.Name + "." + ext
	}
	return file, nil
}

// CanDelete reports whether clientID created the file
func (s *StaticService) CanDelete(ctx context.Context, id, clientID int64) (bool, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return false, err
	}
	if row == nil {
		return false, NotFound("file")
	}
	return row.CreatedBy == clientID, nil
}

// Delete removes the stored object, tolerating its absence, then the
// metadata row. Deleting an unknown id is a no-op.
func (s *StaticService) Delete(ctx context.Context, id int64) error {
	row, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}
	if err := s.store.Remove(ctx, row.Path); err != nil {
		s.log.Warn().Err(err).Int64("file_id", id).Msg("stored object not removed")
	}
	if err := s.db.WithContext(ctx).Delete(&models.File{}, id).Error; err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (s *StaticService) find(ctx context.Context, id int64) (*models.File, error) {
	var files []models.File
	if err := s.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&files).Error; err != nil {
		return nil, fmt.Errorf("load file %d: %w", id, err)
	}
	if len(files) == 0 {
		return nil, nil
	}
	return &files[0], nil
}
