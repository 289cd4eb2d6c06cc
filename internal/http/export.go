package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/highlights-export/internal/importers"
	"github.com/mrlokans/highlights-export/internal/logger"
	"github.com/mrlokans/highlights-export/internal/sources"
	"github.com/mrlokans/highlights-export/internal/utils"
)

const (
	mimeMarkdown = "text/markdown"

	// Form field holding the uploaded source file.
	uploadField = "file"
)

// Accepted upload extensions per input type. An empty extension is allowed
// since devices and browsers do not always keep one.
var allowedExtensions = map[sources.InputType][]string{
	sources.InputKobo:    {".sqlite", ".db", ""},
	sources.InputOReilly: {".json", ""},
}

type ExportController struct {
	pipeline       *importers.Pipeline
	maxUploadBytes int64
	log            logger.Logger
}

func NewExportController(pipeline *importers.Pipeline, maxUploadBytes int64, log logger.Logger) *ExportController {
	if log == nil {
		log = logger.Nop()
	}
	return &ExportController{
		pipeline:       pipeline,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// BookDocument is one rendered book in an export response.
type BookDocument struct {
	Title      string `json:"title"`
	FileName   string `json:"file_name"`
	Highlights int    `json:"highlights"`
	Markdown   string `json:"markdown"`
}

type ExportResponse struct {
	InputType string            `json:"input_type"`
	Summary   importers.Summary `json:"summary"`
	Books     []BookDocument    `json:"books"`
}

// Export converts an uploaded Kobo database or O'Reilly export to Markdown.
//
//	POST /api/export/:type   (multipart form, field "file")
//
// The response is JSON unless ?format=markdown is given or the client
// accepts text/markdown, in which case all books are concatenated.
func (c *ExportController) Export(ctx *gin.Context) {
	inputType, err := sources.ParseInputType(ctx.Param("type"))
	if err != nil {
		respondBadRequest(ctx, "unknown_input_type", err.Error())
		return
	}

	// Create temp directory for the uploaded file
	tempDir, err := os.MkdirTemp("", "highlights-export-*")
	if err != nil {
		respondInternalError(ctx, c.log, err, "create temp dir")
		return
	}
	defer os.RemoveAll(tempDir)

	path, err := c.processUploadedFile(ctx, inputType, tempDir)
	if err != nil {
		var tooLarge *uploadTooLargeError
		if errors.As(err, &tooLarge) {
			respondError(ctx, http.StatusRequestEntityTooLarge, "upload_too_large", err.Error())
			return
		}
		respondBadRequest(ctx, "invalid_upload", err.Error())
		return
	}

	docs, summary, err := c.pipeline.Run(ctx.Request.Context(), inputType, path)
	if err != nil {
		if kind, ok := sources.KindOf(err); ok {
			c.log.Warn("export rejected", "input_type", inputType, "kind", kind, "err", err)
			respondError(ctx, http.StatusUnprocessableEntity, string(kind), userMessage(err, path))
			return
		}
		respondInternalError(ctx, c.log, err, "export")
		return
	}

	if wantsMarkdown(ctx) {
		var sb strings.Builder
		for _, doc := range docs {
			sb.WriteString(doc.Markdown)
		}
		ctx.Data(http.StatusOK, mimeMarkdown+"; charset=utf-8", []byte(sb.String()))
		return
	}

	namer := utils.NewFileNamer()
	books := make([]BookDocument, 0, len(docs))
	for _, doc := range docs {
		books = append(books, BookDocument{
			Title:      doc.Title,
			FileName:   namer.Name(doc.Title),
			Highlights: doc.Highlights,
			Markdown:   doc.Markdown,
		})
	}

	ctx.JSON(http.StatusOK, ExportResponse{
		InputType: string(inputType),
		Summary:   summary,
		Books:     books,
	})
}

type uploadTooLargeError struct {
	limit int64
}

func (e *uploadTooLargeError) Error() string {
	return fmt.Sprintf("file too large (max %d MB)", e.limit>>20)
}

func (c *ExportController) processUploadedFile(ctx *gin.Context, inputType sources.InputType, tempDir string) (string, error) {
	file, header, err := ctx.Request.FormFile(uploadField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return "", &uploadTooLargeError{limit: c.maxUploadBytes}
		}
		return "", fmt.Errorf("file not provided")
	}
	defer file.Close()

	// Check file size
	if header.Size > c.maxUploadBytes {
		return "", &uploadTooLargeError{limit: c.maxUploadBytes}
	}

	// Validate file extension
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extensionAllowed(inputType, ext) {
		return "", fmt.Errorf("invalid file type %q for %s input", ext, inputType)
	}

	destPath := filepath.Join(tempDir, "upload"+ext)
	destFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file")
	}
	defer destFile.Close()

	// Copy with size limit
	written, err := io.Copy(destFile, io.LimitReader(file, c.maxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to save file")
	}
	if written > c.maxUploadBytes {
		return "", &uploadTooLargeError{limit: c.maxUploadBytes}
	}

	return destPath, nil
}

func extensionAllowed(inputType sources.InputType, ext string) bool {
	for _, allowed := range allowedExtensions[inputType] {
		if ext == allowed {
			return true
		}
	}
	return false
}

// userMessage strips the server-side temp path from an error message.
func userMessage(err error, path string) string {
	return strings.ReplaceAll(err.Error(), path, "upload")
}
