package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"locallytrip-server/models"
	"locallytrip-server/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// NotificationService writes in-app notification rows and mirrors moderation
// events to a Telegram channel when TELEGRAM_BOT_TOKEN is configured.
type NotificationService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

var notifier *NotificationService

// InitializeNotifier wires the singleton used by route handlers. The Telegram
// side is optional; without a token only in-app rows are written.
func InitializeNotifier() *NotificationService {
	svc := &NotificationService{}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN not set, moderation alerts disabled")
		notifier = svc
		return svc
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Error().Err(err).Msg("could not create telegram bot, moderation alerts disabled")
		notifier = svc
		return svc
	}
	svc.bot = bot

	if chat := os.Getenv("TELEGRAM_MODERATION_CHAT_ID"); chat != "" {
		if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
			svc.chatID = id
		}
	}

	notifier = svc
	return svc
}

func Notifier() *NotificationService {
	if notifier == nil {
		notifier = &NotificationService{}
	}
	return notifier
}

func (s *NotificationService) createRow(userID uint, kind, title, body string, data map[string]interface{}) {
	n := models.Notification{UserID: userID, Type: kind, Title: title, Body: body}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			n.Data = datatypes.JSON(raw)
		}
	}
	if err := storage.DB.Create(&n).Error; err != nil {
		log.Error().Err(err).Uint("userID", userID).Str("type", kind).Msg("failed to store notification")
	}
}

func (s *NotificationService) alertModerators(text string) {
	if s.bot == nil || s.chatID == 0 {
		log.Debug().Str("text", text).Msg("moderation alert skipped (telegram disabled)")
		return
	}
	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := s.bot.Send(msg); err != nil {
		log.Error().Err(err).Msg("failed to send telegram alert")
	}
}

// NotifySubmittedForReview pings the moderation channel when content enters
// the review queue.
func (s *NotificationService) NotifySubmittedForReview(resourceType, title string, id uint) {
	s.alertModerators(fmt.Sprintf("*New %s pending review*\n%s (#%d)", resourceType, title, id))
}

// NotifyModerationResult tells the owner how review went.
func (s *NotificationService) NotifyModerationResult(ownerID uint, resourceType, title string, action Action, reason string) {
	switch action {
	case ActionApprove, ActionReactivate:
		s.createRow(ownerID, "moderation", "Published",
			fmt.Sprintf("Your %s %q is now live.", resourceType, title), nil)
	case ActionReject:
		s.createRow(ownerID, "moderation", "Changes requested",
			fmt.Sprintf("Your %s %q was rejected: %s", resourceType, title, reason),
			map[string]interface{}{"reason": reason})
	case ActionSuspend:
		s.createRow(ownerID, "moderation", "Suspended",
			fmt.Sprintf("Your %s %q was suspended for a policy violation.", resourceType, title), nil)
	}
}

// NotifyBookingCreated tells the host a traveler booked their experience.
func (s *NotificationService) NotifyBookingCreated(hostID uint, experienceTitle string, total float64) {
	s.createRow(hostID, "booking", "New booking",
		fmt.Sprintf("New booking for %q, total %s.", experienceTitle, FormatIDR(total)),
		map[string]interface{}{"total": total})
}

// NotifyBookingCancelled tells the host a booking was withdrawn.
func (s *NotificationService) NotifyBookingCancelled(hostID uint, experienceTitle string) {
	s.createRow(hostID, "booking", "Booking cancelled",
		fmt.Sprintf("A booking for %q was cancelled.", experienceTitle), nil)
}
