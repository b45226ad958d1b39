package file

import (
	"fmt"
	"strings"
)

// MimeType represents supported media file types
type MimeType string

const (
	MimeTypePNG     MimeType = "png"
	MimeTypeJPEG    MimeType = "jpeg"
	MimeTypeGIF     MimeType = "gif"
	MimeTypeWebP    MimeType = "webp"
	MimeTypeMP4     MimeType = "mp4"
	MimeType3GP     MimeType = "3gp"
	MimeTypeMP3     MimeType = "mp3"
	MimeTypeOGG     MimeType = "ogg"
	MimeTypeAAC     MimeType = "aac"
	MimeTypeAMR     MimeType = "amr"
	MimeTypePDF     MimeType = "pdf"
	MimeTypeText    MimeType = "txt"
	MimeTypeCSV     MimeType = "csv"
	MimeTypeDOCX    MimeType = "docx"
	MimeTypeXLSX    MimeType = "xlsx"
	MimeTypeUnknown MimeType = "bin"
)

// FromContentType maps a Cloud API mime_type string onto a MimeType.
// WhatsApp sometimes appends codec parameters ("audio/ogg; codecs=opus").
func FromContentType(contentType string) (MimeType, error) {
	base := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	switch base {
	case "image/png":
		return MimeTypePNG, nil
	case "image/jpeg", "image/jpg":
		return MimeTypeJPEG, nil
	case "image/gif":
		return MimeTypeGIF, nil
	case "image/webp":
		return MimeTypeWebP, nil
	case "video/mp4":
		return MimeTypeMP4, nil
	case "video/3gpp":
		return MimeType3GP, nil
	case "audio/mpeg", "audio/mp3":
		return MimeTypeMP3, nil
	case "audio/ogg":
		return MimeTypeOGG, nil
	case "audio/aac":
		return MimeTypeAAC, nil
	case "audio/amr":
		return MimeTypeAMR, nil
	case "application/pdf":
		return MimeTypePDF, nil
	case "text/plain":
		return MimeTypeText, nil
	case "text/csv":
		return MimeTypeCSV, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return MimeTypeDOCX, nil
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return MimeTypeXLSX, nil
	default:
		return MimeTypeUnknown, fmt.Errorf("unknown content type %s", contentType)
	}
}

type FolderInfo struct {
	FolderPath string
}

type FileInfo struct {
	FileStore string
	FilePath  string
	FileName  string
	MimeType  MimeType
	Size      int64
}
