// Package telegram exposes the chat assistant over a Telegram webhook.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"mealmind/internal/chat"
	"mealmind/internal/config"
	"mealmind/internal/inventory"
	"mealmind/internal/metrics"
	"mealmind/internal/profile"
	"mealmind/internal/shared"
)

// ChatService answers one chat request with reply text.
type ChatService interface {
	Respond(ctx context.Context, req chat.Request) string
}

// UserDirectory resolves usernames during account linking.
type UserDirectory interface {
	GetByUsername(ctx context.Context, username string) (profile.Profile, error)
}

// ChatLinks maps Telegram chats to application users.
type ChatLinks interface {
	Link(ctx context.Context, chatID int64, userID string) error
	UserFor(ctx context.Context, chatID int64) (string, error)
}

// PantryParser extracts inventory items from free text.
type PantryParser interface {
	Parse(ctx context.Context, text string) (inventory.ParseResult, error)
}

// PantryStore persists inventory items.
type PantryStore interface {
	Add(ctx context.Context, userID string, item inventory.Item) (string, error)
}

// MetricsStore records agent executions and serves the admin usage report.
type MetricsStore interface {
	RecordMeta(meta shared.AgentMeta) error
	GetDailyUsage(days int) ([]metrics.DailyUsage, error)
}

// Bot wires the Telegram API to the chat router.
type Bot struct {
	api     *tgbotapi.BotAPI
	chatSvc ChatService
	users   UserDirectory
	links   ChatLinks
	pantry  PantryParser
	items   PantryStore
	metrics MetricsStore
	cfg     *config.Config
	logger  *zap.Logger
}

// NewBot initializes the Telegram Bot and sets the webhook.
func NewBot(
	cfg *config.Config,
	chatSvc ChatService,
	users UserDirectory,
	links ChatLinks,
	pantry PantryParser,
	items PantryStore,
	store MetricsStore,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("telegram bot authorized", zap.String("account", api.Self.UserName))

	wh, err := tgbotapi.NewWebhook(cfg.Telegram.WebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook URL %s: %w", cfg.Telegram.WebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.Telegram.WebhookURL, err)
	}
	logger.Info("webhook set", zap.String("response", resp.Description))

	return &Bot{
		api:     api,
		chatSvc: chatSvc,
		users:   users,
		links:   links,
		pantry:  pantry,
		items:   items,
		metrics: store,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

// RegisterHandlers registers the webhook handler on the given mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.logger.Warn("failed to parse update", zap.Error(err))
		return
	}
	if update.Message == nil || update.Message.From == nil {
		return
	}

	if allowed := b.cfg.Telegram.AllowUserID; allowed != 0 && update.Message.From.ID != allowed {
		b.logger.Warn("unauthorized telegram access",
			zap.Int64("user_id", update.Message.From.ID),
			zap.String("username", update.Message.From.UserName))
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch {
	case strings.HasPrefix(msg.Text, "/start"):
		b.handleStart(ctx, msg)
	case strings.HasPrefix(msg.Text, "/pantry"):
		b.handlePantry(ctx, msg)
	case msg.Text == "/metrics":
		b.handleMetricsCommand(msg.Chat.ID)
	default:
		b.handleChat(ctx, msg)
	}
}

// handleStart links the chat to an application user: "/start <username>".
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	parts := strings.Fields(msg.Text)
	if len(parts) < 2 {
		b.send(msg.Chat.ID, "👋 Welcome to Meal Mind!\nLink your account with `/start <username>`.")
		return
	}

	p, err := b.users.GetByUsername(ctx, parts[1])
	if err != nil {
		b.send(msg.Chat.ID, fmt.Sprintf("❌ No account found for *%s*.", parts[1]))
		return
	}
	if err := b.links.Link(ctx, msg.Chat.ID, p.UserID); err != nil {
		b.logger.Error("failed to link chat", zap.Error(err))
		b.send(msg.Chat.ID, "❌ Something went wrong linking your account.")
		return
	}
	b.send(msg.Chat.ID, fmt.Sprintf("✅ Linked! Hi *%s*, ask me about your meal plan anytime.", p.Username))
}

func (b *Bot) handleChat(ctx context.Context, msg *tgbotapi.Message) {
	userID, err := b.links.UserFor(ctx, msg.Chat.ID)
	if err != nil {
		if errors.Is(err, ErrNotLinked) {
			b.send(msg.Chat.ID, "Please link your account first with `/start <username>`.")
			return
		}
		b.logger.Error("chat link lookup failed", zap.Error(err))
		b.send(msg.Chat.ID, "❌ Something went wrong. Please try again.")
		return
	}

	statusMsg := tgbotapi.NewMessage(msg.Chat.ID, "🧑‍🍳 *Thinking...*")
	statusMsg.ParseMode = "Markdown"
	sent, err := b.api.Send(statusMsg)
	if err != nil {
		b.logger.Warn("failed to send status reply", zap.Error(err))
		return
	}

	reply := b.chatSvc.Respond(ctx, chat.Request{
		UserID:  userID,
		Message: msg.Text,
	})

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, reply)
	edit.ParseMode = "Markdown"
	if _, err := b.api.Send(edit); err != nil {
		// Markdown from the model can be malformed; retry as plain text.
		plain := tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, reply)
		if _, err := b.api.Send(plain); err != nil {
			b.logger.Warn("failed to deliver reply", zap.Error(err))
		}
	}
}

// handlePantry parses "/pantry <free text>" into structured items and
// stores them on the linked user's inventory.
func (b *Bot) handlePantry(ctx context.Context, msg *tgbotapi.Message) {
	userID, err := b.links.UserFor(ctx, msg.Chat.ID)
	if err != nil {
		if errors.Is(err, ErrNotLinked) {
			b.send(msg.Chat.ID, "Please link your account first with `/start <username>`.")
			return
		}
		b.logger.Error("chat link lookup failed", zap.Error(err))
		b.send(msg.Chat.ID, "❌ Something went wrong. Please try again.")
		return
	}

	text := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/pantry"))
	if text == "" {
		b.send(msg.Chat.ID, "Tell me what you bought, e.g. `/pantry 2kg chicken breast and a dozen eggs`.")
		return
	}

	res, err := b.pantry.Parse(ctx, text)
	if res.Meta.AgentName != "" {
		if recErr := b.metrics.RecordMeta(res.Meta); recErr != nil {
			b.logger.Warn("failed to record metric", zap.Error(recErr))
		}
	}
	if err != nil {
		b.logger.Error("pantry parse failed", zap.Error(err))
		b.send(msg.Chat.ID, "❌ I couldn't make sense of that list. Please try again.")
		return
	}

	stored := b.storePantryItems(ctx, userID, res.Items)
	b.send(msg.Chat.ID, formatPantryReply(stored))
}

// storePantryItems persists items one by one, returning those that made
// it into the inventory.
func (b *Bot) storePantryItems(ctx context.Context, userID string, items []inventory.Item) []inventory.Item {
	stored := make([]inventory.Item, 0, len(items))
	for _, item := range items {
		if _, err := b.items.Add(ctx, userID, item); err != nil {
			b.logger.Warn("failed to store pantry item",
				zap.String("item", item.ItemName), zap.Error(err))
			continue
		}
		stored = append(stored, item)
	}
	return stored
}

func formatPantryReply(items []inventory.Item) string {
	if len(items) == 0 {
		return "I didn't find any items to add. Try listing them one by one."
	}
	var sb strings.Builder
	sb.WriteString("🧺 *Added to your pantry:*\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("• %s — %g %s (%s)\n", item.ItemName, item.Quantity, item.Unit, item.Category))
	}
	return sb.String()
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.metrics.GetDailyUsage(7)
	if err != nil {
		b.send(chatID, "❌ Error fetching metrics.")
		return
	}
	health := metrics.GetSysHealth(b.cfg.Database.Path)
	b.send(chatID, formatUsageReport(usage, health))
}

func formatUsageReport(usage []metrics.DailyUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Database: %s\n", health.DatabaseSize))

	return sb.String()
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("failed to send message", zap.Error(err))
	}
}
