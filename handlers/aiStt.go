package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventkompass/models"
	ai "eventkompass/services/intelligence"
)

const (
	MaxFileSize      = 5 * 1024 * 1024 // 5MB
	defaultAudioMIME = "audio/webm"
)

var audioExtensions = map[string]string{
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".wav":  "audio/wav",
	".mp3":  "audio/mp3",
	".m4a":  "audio/mp4",
}

type STTHandler struct {
	Gateway ai.Gateway
}

func NewSTTHandler(gw ai.Gateway) *STTHandler {
	return &STTHandler{Gateway: gw}
}

// AISTTHandler transcribes the multipart field "audio". Every failure answers
// 200 with ok=false so the recording control simply returns to idle.
func (h *STTHandler) AISTTHandler(c *gin.Context) {
	logger := getLogger(c)
	failed := models.TranscriptionResponse{Text: "", OK: false}

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		logger.Warn("Audio upload missing", zap.Error(err))
		c.JSON(http.StatusOK, failed)
		return
	}
	defer file.Close()

	if header.Size > MaxFileSize {
		logger.Warn("Audio upload too large", zap.Int64("bytes", header.Size))
		c.JSON(http.StatusOK, failed)
		return
	}

	mimeType, ok := audioMIME(header.Header.Get("Content-Type"), header.Filename)
	if !ok {
		logger.Warn("Unsupported audio type",
			zap.String("filename", header.Filename),
			zap.String("contentType", header.Header.Get("Content-Type")))
		c.JSON(http.StatusOK, failed)
		return
	}

	audio, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil || len(audio) == 0 || len(audio) > MaxFileSize {
		logger.Warn("Audio upload unreadable", zap.Int("bytes", len(audio)), zap.Error(err))
		c.JSON(http.StatusOK, failed)
		return
	}

	text, ok := h.Gateway.Transcribe(c.Request.Context(), audio, mimeType)
	if !ok {
		c.JSON(http.StatusOK, failed)
		return
	}
	c.JSON(http.StatusOK, models.TranscriptionResponse{Text: text, OK: true})
}

// audioMIME picks the upload's audio type from its part header or, failing
// that, its file extension.
func audioMIME(contentType, filename string) (string, bool) {
	base := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if strings.HasPrefix(base, "audio/") {
		return contentType, true
	}
	if mimeType, ok := audioExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return mimeType, true
	}
	if base == "" || base == "application/octet-stream" {
		if filepath.Ext(filename) == "" {
			return defaultAudioMIME, true
		}
	}
	return "", false
}
