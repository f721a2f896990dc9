// Package telegram runs the Telegram front end for the hostel assistant.
//
// Each Telegram chat is one session: the chat id doubles as the opaque
// session identifier handed to the dispatcher, so complaint intakes in
// different chats progress independently.
package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"aryabot/internal/browser"
	"aryabot/internal/complaint"
	"aryabot/internal/dispatcher"
	"aryabot/internal/health"
	"aryabot/internal/summary"
)

// maxPhotosPerReply caps how many catalog photos one query sends.
const maxPhotosPerReply = 5

const welcomeText = "Welcome to the hostel assistant! 🏢\n\n" +
	"Ask me anything about the hostel, or try:\n" +
	"/menu - What's being served right now\n" +
	"/menu monday - A specific day's menu\n" +
	"/week - The full weekly menu card\n" +
	"/cancel - Cancel an in-progress complaint\n\n" +
	"You can also just describe a problem (\"the fan in my room is not working\") " +
	"and I'll help you register a complaint."

// Bot wraps the Telegram API and routes messages through the dispatcher.
type Bot struct {
	api      *tgbotapi.BotAPI
	dispatch *dispatcher.Dispatcher
	monitor  *health.Monitor

	// autofill, when set, is launched in the background after an intake
	// completes. Best effort only.
	autofill func(portalURL string, data browser.FormData)
}

// New creates the bot and authenticates against the Telegram API.
func New(token string, dispatch *dispatcher.Dispatcher, monitor *health.Monitor) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	log.Printf("✓ Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:      api,
		dispatch: dispatch,
		monitor:  monitor,
	}, nil
}

// SetAutofill installs the optional portal pre-fill hook.
func (b *Bot) SetAutofill(fn func(portalURL string, data browser.FormData)) {
	b.autofill = fn
}

// Run consumes Telegram updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.monitor.RecordMessage()
			if update.Message.IsCommand() {
				b.handleCommand(update.Message)
			} else {
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	sessionID := sessionIDForChat(msg.Chat.ID)

	switch msg.Command() {
	case "start", "help":
		b.sendMessage(msg.Chat.ID, welcomeText)

	case "menu":
		b.sendMessage(msg.Chat.ID, b.dispatch.Menu(msg.CommandArguments()))

	case "week":
		b.sendWeekCard(msg.Chat.ID)

	case "cancel":
		b.sendMessage(msg.Chat.ID, b.dispatch.Cancel(sessionID))

	default:
		b.sendMessage(msg.Chat.ID, "Unknown command. Use /help to see what I can do.")
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	sessionID := sessionIDForChat(msg.Chat.ID)
	resp := b.dispatch.Handle(ctx, sessionID, msg.Text)

	b.sendMessage(msg.Chat.ID, resp.Text)

	for i, path := range resp.Photos {
		if i >= maxPhotosPerReply {
			b.sendMessage(msg.Chat.ID, fmt.Sprintf("...and %d more.", len(resp.Photos)-maxPhotosPerReply))
			break
		}
		photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FilePath(path))
		if _, err := b.api.Send(photo); err != nil {
			log.Printf("⚠️  Failed to send photo %s: %v", path, err)
		}
	}

	if resp.IntakeDone && b.autofill != nil && resp.PortalURL != "" {
		data := browser.FormData{
			Email:       resp.Fields[complaint.FieldEmail],
			Name:        resp.Fields[complaint.FieldName],
			Phone:       resp.Fields[complaint.FieldPhone],
			Room:        resp.Fields[complaint.FieldRoom],
			Summary:     resp.ComplaintText,
			Description: resp.ComplaintText,
		}
		go b.autofill(resp.PortalURL, data)
	}
}

// sendWeekCard renders the weekly menu PNG and sends it; falls back to the
// text week menu if rendering fails (e.g. no fonts on the host).
func (b *Bot) sendWeekCard(chatID int64) {
	card, err := summary.RenderWeekTable(b.dispatch.WeekRows())
	if err != nil {
		log.Println("⚠️  Week card rendering failed, sending text instead:", err)
		b.sendMessage(chatID, b.dispatch.Menu("week"))
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "mess_menu.png", Bytes: card})
	photo.Caption = "🗓 Weekly Mess Menu"
	if _, err := b.api.Send(photo); err != nil {
		log.Println("⚠️  Failed to send week card:", err)
		b.sendMessage(chatID, b.dispatch.Menu("week"))
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("⚠️  Failed to send message to chat %d: %v", chatID, err)
	}
}

// sessionIDForChat maps a Telegram chat to its opaque session identifier.
func sessionIDForChat(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}
