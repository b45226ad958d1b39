package whatsapp

import (
	"context"
	"fmt"
	"time"

	"meridianit/inbox-project/pkgs/conf"
	"meridianit/inbox-project/pkgs/file"

	"github.com/go-resty/resty/v2"
	"github.com/juju/errors"
	"github.com/rs/zerolog/log"
)

// MediaFetcher downloads inbound media from the Graph API into the file
// store. Optional: the webhook works without it and stores media IDs only.
type MediaFetcher struct {
	rest    *resty.Client
	version string
	store   file.FileStore
}

func NewMediaFetcher(cfg conf.WhatsappConfig, store file.FileStore) *MediaFetcher {
	rest := resty.New().
		SetBaseURL(cfg.GraphBaseURL).
		SetTimeout(30 * time.Second).
		SetAuthToken(cfg.AccessToken)

	return &MediaFetcher{
		rest:    rest,
		version: cfg.GraphVersion,
		store:   store,
	}
}

// Fetch resolves the media ID to a short-lived download URL, pulls the bytes
// and saves them under the whatsapp folder of the file store.
func (f *MediaFetcher) Fetch(ctx context.Context, mediaID string) (*file.FileInfo, error) {
	var meta MediaURLResponse
	resp, err := f.rest.R().
		SetContext(ctx).
		SetResult(&meta).
		Get(fmt.Sprintf("/%s/%s", f.version, mediaID))
	if err != nil {
		return nil, errors.Annotatef(err, "failed to resolve media url for %s", mediaID)
	}
	if resp.IsError() {
		return nil, errors.Errorf("media url lookup for %s failed with status %d: %s", mediaID, resp.StatusCode(), resp.String())
	}

	// The download URL is absolute and outside the Graph base URL.
	dl, err := f.rest.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(meta.URL)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to download media %s", mediaID)
	}
	body := dl.RawBody()
	defer body.Close()
	if dl.IsError() {
		return nil, errors.Errorf("media download for %s failed with status %d", mediaID, dl.StatusCode())
	}

	mimeType, err := file.FromContentType(meta.MimeType)
	if err != nil {
		log.Warn().Str("media_id", mediaID).Str("mime_type", meta.MimeType).Msg("unknown media mime type")
		mimeType = file.MimeTypeUnknown
	}

	filename := fmt.Sprintf("whatsapp-%s-%s.%s", mediaID, time.Now().Format("20060102-150405"), string(mimeType))
	saved, err := f.store.UploadFile(ctx, filename, mimeType, file.FolderInfo{FolderPath: "whatsapp"}, body)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to save media %s", mediaID)
	}

	log.Info().Str("media_id", mediaID).Str("path", saved.FilePath).Int64("size", saved.Size).Msg("media downloaded")
	return &saved, nil
}
