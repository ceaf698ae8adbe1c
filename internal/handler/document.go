package handler

import (
	"io"

	"github.com/alibomaye27/yourvoice/internal/extract"
	"github.com/alibomaye27/yourvoice/pkg/model"
	"github.com/alibomaye27/yourvoice/pkg/response"
	"github.com/gin-gonic/gin"
)

// ExtractDocument accepts a resume or cover-letter upload and returns its
// normalized text content. Extraction happens once here, at the boundary, so
// everything downstream works with a single document shape.
func (h *Handler) ExtractDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "no file uploaded")
		return
	}

	docType := c.PostForm("type")
	if docType != "resume" && docType != "cover_letter" {
		response.BadRequest(c, "type must be resume or cover_letter")
		return
	}

	if fileHeader.Size > extract.MaxFileSize {
		response.BadRequest(c, "file too large, maximum size is 5MB")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !extract.AllowedTypes[contentType] {
		response.BadRequest(c, "invalid file format, please upload PDF, DOC, DOCX, TXT or HTML files only")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, "failed to read upload")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, extract.MaxFileSize))
	if err != nil {
		response.InternalError(c, "failed to read upload")
		return
	}

	content, err := extract.FromUpload(data, contentType)
	if err != nil {
		h.Logger.Sugar().Warnw("document extraction failed",
			"file", fileHeader.Filename, "content_type", contentType, "err", err)
		response.ValidationError(c, "could not extract text from the uploaded file")
		return
	}

	doc := &model.DocumentContent{
		Type:    model.DocumentFile,
		Content: content,
		Metadata: &model.DocumentMetadata{
			FileName: fileHeader.Filename,
			FileSize: fileHeader.Size,
			FileType: contentType,
		},
	}
	response.OK(c, gin.H{"documentData": doc})
}
