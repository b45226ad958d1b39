package file

import (
	"context"
	"fmt"
	"io"
)

type FileStore interface {
	ListFiles(ctx context.Context, folder FolderInfo) ([]FileInfo, error)
	UploadFile(ctx context.Context, fileName string, fileType MimeType, folder FolderInfo, data io.Reader) (FileInfo, error)
	DownloadFile(ctx context.Context, file FileInfo) (io.Reader, func(), error)
	DeleteFile(ctx context.Context, file FileInfo) error
}

func NewFileStore(storeType, root string) (FileStore, error) {
	switch storeType {
	case "local":
		return NewLocalFileStore(root), nil
	default:
		return nil, fmt.Errorf("unsupported file store type: %s", storeType)
	}
}
