package handler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"latinvocab/internal/domain"
	"latinvocab/internal/gateway"
	"latinvocab/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// maxImageSize caps downloaded images
const maxImageSize = 20 << 20

// handlePhoto runs the pending scan on a photo
func (h *Handler) handlePhoto(c tele.Context) error {
	photo := c.Message().Photo
	if photo == nil {
		return nil
	}
	return h.scan(c, &photo.File, "image/jpeg")
}

// handleDocument runs the pending scan on an image sent as a file
func (h *Handler) handleDocument(c tele.Context) error {
	doc := c.Message().Document
	if doc == nil || !strings.HasPrefix(doc.MIME, "image/") {
		return c.Send(msgSendPhoto)
	}
	return h.scan(c, &doc.File, doc.MIME)
}

func (h *Handler) scan(c tele.Context, file *tele.File, mimeType string) error {
	userID := c.Sender().ID
	if !h.scanPending(userID) {
		return c.Send(msgNoScanPending, h.menu())
	}

	image, err := h.download(file, mimeType)
	if err != nil {
		h.logger.Error("Failed to download image", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(fmt.Sprintf(msgScanError, err.Error()))
	}
	return h.runScan(c, userID, image)
}

// scanDataURL runs the pending scan on a pasted data URL
func (h *Handler) scanDataURL(c tele.Context, userID int64, text string) error {
	image, err := gateway.ParseDataURL(text)
	if err != nil {
		h.logger.Info("Rejected data url", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(fmt.Sprintf(msgScanError, err.Error()), cancelMarkup())
	}
	return h.runScan(c, userID, image)
}

func (h *Handler) scanPending(userID int64) bool {
	state := h.GetState(userID).State
	return state == domain.StateWaitingVocabPhoto || state == domain.StateWaitingTextPhoto
}

// runScan sends the image to the scan the user asked for
func (h *Handler) runScan(c tele.Context, userID int64, image gateway.Image) error {
	if h.aiService.Busy(userID, service.OpScan) {
		return c.Send(msgScanBusy)
	}

	if err := c.Send(msgAnalyzing); err != nil {
		h.logger.Warn("Failed to send progress message", zap.Error(err))
	}

	if h.GetState(userID).State == domain.StateWaitingVocabPhoto {
		return h.scanVocab(c, userID, image)
	}
	return h.scanText(c, userID, image)
}

func (h *Handler) scanVocab(c tele.Context, userID int64, image gateway.Image) error {
	added, err := h.aiService.ScanVocab(h.ctx, userID, image)
	if err != nil {
		return c.Send(h.scanError(userID, err), cancelMarkup())
	}

	// Stay in scan mode so further pages can follow
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnList, btnMainMenu))
	return c.Send(h.withTotal(userID, formatAdded(added)), markup)
}

func (h *Handler) scanText(c tele.Context, userID int64, image gateway.Image) error {
	text, err := h.aiService.ScanText(h.ctx, userID, image)
	if err != nil {
		return c.Send(h.scanError(userID, err), cancelMarkup())
	}
	if text == "" {
		return c.Send(msgNoTextFound, cancelMarkup())
	}

	h.SetState(userID, &domain.StateData{State: domain.StateIdle, PendingText: text})

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnTranslateScanned, btnClear),
		markup.Row(btnMainMenu),
	)
	return c.Send("📝 Erkannter Text:\n\n"+text, markup)
}

// scanError maps a scan failure to a reply
func (h *Handler) scanError(userID int64, err error) string {
	if errors.Is(err, service.ErrOperationInFlight) {
		return msgScanBusy
	}
	h.logger.Error("Scan failed", zap.Error(err), zap.Int64("user_id", userID))
	return fmt.Sprintf(msgScanError, err.Error())
}

// download fetches a Telegram file into an image
func (h *Handler) download(file *tele.File, mimeType string) (gateway.Image, error) {
	rc, err := h.fetchFile(file)
	if err != nil {
		return gateway.Image{}, fmt.Errorf("download failed: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxImageSize))
	if err != nil {
		return gateway.Image{}, fmt.Errorf("read failed: %w", err)
	}

	image := gateway.NewImage(data, mimeType)
	if err := image.Validate(); err != nil {
		return gateway.Image{}, err
	}
	return image, nil
}
