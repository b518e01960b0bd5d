package handlers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	"folio/internal/models"
	"folio/internal/render"
)

const (
	// maxUploadSize is the maximum allowed size per uploaded file (25 MB).
	maxUploadSize = 25 << 20

	// maxUploadBatch caps the number of files accepted in one request.
	maxUploadBatch = 20

	// thumbMaxWidth is the maximum thumbnail width in pixels.
	thumbMaxWidth = 400

	// thumbQuality is the JPEG quality for generated thumbnails.
	thumbQuality = 80

	// maxImagePixels caps the number of pixels to prevent memory bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	maxImagePixels = 100_000_000
)

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"video/mp4":     true,
	"video/webm":    true,
}

// thumbableTypes are image types that support thumbnail generation.
// GIF is excluded to preserve animation; SVG is vector.
var thumbableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// uploadResult reports the outcome of one file in an upload batch.
type uploadResult struct {
	Name  string
	Error string
}

// MediaPage renders the media library with the upload form.
func (a *Admin) MediaPage(w http.ResponseWriter, r *http.Request) {
	a.renderMediaPage(w, r, nil)
}

func (a *Admin) renderMediaPage(w http.ResponseWriter, r *http.Request, results []uploadResult) {
	data := map[string]any{
		"Items": []models.Media{},
		"URLs":  map[uuid.UUID]string{},
	}
	if results != nil {
		data["Results"] = results
	}

	if a.storageClient == nil {
		data["NoStorage"] = true
	} else {
		items, err := a.mediaStore.List()
		if err != nil {
			slog.Error("media list failed", "error", err)
		}
		urls := make(map[uuid.UUID]string, len(items))
		for _, m := range items {
			urls[m.ID] = a.storageClient.FileURL(m.S3Key)
		}
		data["Items"] = items
		data["URLs"] = urls
	}

	a.renderer.Page(w, r, "media", &render.PageData{
		Title:   "Media",
		Section: "media",
		Data:    data,
	})
}

// MediaUpload handles a multipart batch upload. Every file is validated
// before anything touches the network: a file with a disallowed type or
// an oversized payload is reported in the per-file results without
// aborting the rest of the batch.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		http.Error(w, "Object storage is not configured.", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(maxUploadBatch)*maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Upload too large.", http.StatusRequestEntityTooLarge)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		a.renderMediaPage(w, r, []uploadResult{{Name: "upload", Error: "no files provided"}})
		return
	}
	if len(files) > maxUploadBatch {
		files = files[:maxUploadBatch]
	}

	results := make([]uploadResult, 0, len(files))
	for _, header := range files {
		res := uploadResult{Name: header.Filename}
		if err := a.uploadOne(r, header); err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
	}

	a.renderMediaPage(w, r, results)
}

// uploadOne validates, stores, and records a single uploaded file.
func (a *Admin) uploadOne(r *http.Request, header *multipart.FileHeader) error {
	if header.Size > maxUploadSize {
		return fmt.Errorf("file too large, maximum is 25 MB")
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read upload: %w", err)
	}
	contentType := http.DetectContentType(sniffBuf[:n])
	contentType = strings.SplitN(contentType, ";", 2)[0]

	// SVG detection: DetectContentType reports text/xml or text/plain.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	if !allowedMediaTypes[contentType] {
		return fmt.Errorf("file type %q is not allowed", contentType)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind upload: %w", err)
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	// Generate a unique storage key.
	now := time.Now()
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	fileID := uuid.New().String()
	s3Key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), fileID, ext)

	ctx := r.Context()
	if err := a.storageClient.Upload(ctx, s3Key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", s3Key)
		return fmt.Errorf("storage upload failed")
	}

	// Generate and upload thumbnail for supported image types.
	var thumbKey *string
	if thumbableTypes[contentType] {
		thumbData, err := generateThumbnail(bytes.NewReader(fileBytes), thumbMaxWidth)
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "key", s3Key)
		} else if thumbData != nil {
			tk := fmt.Sprintf("media/%d/%02d/%s_thumb.jpg", now.Year(), now.Month(), fileID)
			if err := a.storageClient.Upload(ctx, tk, "image/jpeg", bytes.NewReader(thumbData), int64(len(thumbData))); err != nil {
				slog.Warn("thumbnail upload failed", "error", err, "key", tk)
			} else {
				thumbKey = &tk
			}
		}
	}

	media := &models.Media{
		Filename:     fileID + ext,
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    int64(len(fileBytes)),
		S3Key:        s3Key,
		ThumbS3Key:   thumbKey,
	}
	if _, err := a.mediaStore.Create(media); err != nil {
		slog.Error("media db insert failed", "error", err, "key", s3Key)
		return fmt.Errorf("saving file metadata failed")
	}
	return nil
}

// MediaDelete removes a media item from both S3 and the database.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	media, err := a.mediaStore.FindByID(id)
	if err != nil {
		slog.Error("media lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if media == nil {
		http.NotFound(w, r)
		return
	}

	if err := a.mediaStore.Delete(id); err != nil {
		slog.Error("media db delete failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Clean up S3 objects (best-effort, don't fail the request).
	ctx := r.Context()
	if a.storageClient != nil {
		if err := a.storageClient.Delete(ctx, media.S3Key); err != nil {
			slog.Warn("s3 original delete failed", "error", err, "key", media.S3Key)
		}
		if media.ThumbS3Key != nil {
			if err := a.storageClient.Delete(ctx, *media.ThumbS3Key); err != nil {
				slog.Warn("s3 thumbnail delete failed", "error", err, "key", *media.ThumbS3Key)
			}
		}
	}

	a.renderMediaPage(w, r, nil)
}

// generateThumbnail creates a JPEG thumbnail from an image, constrained
// to maxWidth while preserving aspect ratio. Returns nil if the image is
// already smaller than maxWidth.
func generateThumbnail(src io.Reader, maxWidth int) ([]byte, error) {
	// Decode config first to check dimensions without full decode.
	imgCfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Check for image bombs.
	if int64(imgCfg.Width)*int64(imgCfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", imgCfg.Width, imgCfg.Height, maxImagePixels)
	}

	// Skip thumbnail if image is already small enough.
	if imgCfg.Width <= maxWidth {
		return nil, nil
	}

	// Seek back to start for full decode.
	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek: %w", err)
		}
	} else {
		return nil, fmt.Errorf("source does not support seeking")
	}

	// Full decode.
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	// Calculate thumbnail dimensions preserving aspect ratio.
	bounds := img.Bounds()
	ratio := float64(maxWidth) / float64(bounds.Dx())
	newWidth := maxWidth
	newHeight := int(float64(bounds.Dy()) * ratio)

	// Resize using CatmullRom (high quality).
	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	// Encode to JPEG.
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	default:
		return ""
	}
}
