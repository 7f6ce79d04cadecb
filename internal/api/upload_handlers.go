package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 * 1024 * 1024

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// UploadPackagingFile handles POST /packaging/upload: a multipart "file"
// field goes to the blob bucket and the public link comes back.
func (h *Handler) UploadPackagingFile(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Armazenamento de arquivos não configurado"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo não enviado (campo 'file')."})
		return
	}

	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo excede o limite de 10MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("[UploadPackagingFile] open failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao ler arquivo enviado"})
		return
	}
	defer file.Close()

	// Sniff the real content type instead of trusting the header.
	buffer := make([]byte, 512)
	n, _ := file.Read(buffer)
	contentType := http.DetectContentType(buffer[:n])
	if !allowedUploadTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de arquivo não suportado"})
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		log.Printf("[UploadPackagingFile] seek failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao ler arquivo enviado"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	url, err := h.uploader.Upload(ctx, fileHeader.Filename, contentType, file)
	if err != nil {
		log.Printf("[UploadPackagingFile] upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao enviar arquivo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
