package places

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"log"
	"net/http"

	_ "image/gif"
	_ "image/png"

	"travelog/models"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// AcquirePhotos fetches photo binaries for the given references in order,
// stopping at the configured cap, and persists each one immediately. A fetch
// failure only skips that reference; a storage or DB failure aborts and is
// returned to the caller (who rolls the place back). The returned photos
// already carry their generated identifiers.
func (s *Service) AcquirePhotos(ctx context.Context, references []string, place *models.Place) ([]models.Photo, error) {
	photos := make([]models.Photo, 0, s.MaxPhotos)
	for _, reference := range references {
		if len(photos) >= s.MaxPhotos {
			break
		}
		data, err := s.Client.FetchPhoto(ctx, place.PlaceID, reference, s.PhotoMaxWidth)
		if err != nil {
			log.Printf("Skipping photo %s of place %s: %v", reference, place.PlaceID, err)
			continue
		}
		payload, mimeType, width, height := preparePhotoPayload(data, s.PhotoMaxWidth)
		photo := models.Photo{
			PhotoID:  uuid.NewString(),
			PlaceID:  place.ID,
			Size:     int64(len(payload)),
			MimeType: mimeType,
			Width:    width,
			Height:   height,
		}
		if _, err = s.Storage.Save(photo.GetPath(), bytes.NewReader(payload)); err != nil {
			return photos, err
		}
		if err = s.DB.Create(&photo).Error; err != nil {
			if deleteErr := s.Storage.Delete(photo.GetPath()); deleteErr != nil {
				log.Printf("Cannot delete orphaned payload %s: %v", photo.GetPath(), deleteErr)
			}
			return photos, err
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

// preparePhotoPayload downscales payloads wider than maxWidth and reports
// the stored mime type and dimensions. Payloads that do not decode as images
// are stored untouched.
func preparePhotoPayload(data []byte, maxWidth int) ([]byte, string, uint16, uint16) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, http.DetectContentType(data), 0, 0
	}
	size := img.Bounds().Size()
	if maxWidth > 0 && size.X > maxWidth {
		scaled := resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)
		buf := bytes.Buffer{}
		if err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 90}); err == nil {
			scaledSize := scaled.Bounds().Size()
			return buf.Bytes(), "image/jpeg", uint16(scaledSize.X), uint16(scaledSize.Y)
		}
	}
	return data, http.DetectContentType(data), uint16(size.X), uint16(size.Y)
}
