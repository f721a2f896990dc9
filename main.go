package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"aryabot/internal/browser"
	"aryabot/internal/complaint"
	"aryabot/internal/config"
	"aryabot/internal/dispatcher"
	"aryabot/internal/health"
	"aryabot/internal/menu"
	"aryabot/internal/photos"
	"aryabot/internal/rag"
	"aryabot/internal/telegram"
)

func main() {
	log.Println("🚀 Starting hostel assistant...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("❌ Configuration error: ", err)
	}
	log.Println("✓ Configuration loaded")

	// The schedule table is the one thing we refuse to run without.
	log.Println("📋 Loading mess schedule...")
	table, err := menu.LoadCSV(cfg.MenuCSVPath)
	if err != nil {
		log.Fatal("❌ Failed to load mess schedule: ", err)
	}
	resolver := menu.NewResolver(table, cfg.Location)

	log.Println("📷 Preparing photo catalog...")
	catalog := photos.NewCatalog(cfg.PhotosDir)
	if err := catalog.Setup(); err != nil {
		log.Println("⚠️  Photo catalog setup failed, photo queries will be empty:", err)
	}

	log.Println("📋 Initializing complaint intake...")
	store := complaint.NewStore()
	engine := complaint.NewEngine(store, cfg.PortalBaseURL)

	var answerer rag.Answerer
	if client := rag.NewClient(cfg.ChatBackendURL, cfg.HTTPTimeout); client != nil {
		answerer = client
	}

	dispatch := dispatcher.New(engine, resolver, catalog, answerer)

	monitor := health.NewMonitor(store.Count)
	health.StartServer(monitor, chatAdapter{dispatch}, cfg.HealthPort)

	if cfg.DebugMode && cfg.TelegramBotToken == "" {
		log.Println("🐛 Debug mode without a Telegram token; serving HTTP only")
		select {}
	}

	log.Println("💬 Initializing Telegram bot...")
	bot, err := telegram.New(cfg.TelegramBotToken, dispatch, monitor)
	if err != nil {
		log.Fatal("❌ Failed to initialize Telegram bot: ", err)
	}

	if cfg.BrowserAutofill {
		log.Println("🤖 Browser form pre-fill enabled")
		bot.SetAutofill(func(portalURL string, data browser.FormData) {
			browser.Autofill(portalURL, data, cfg.NavigationTimeout)
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("✅ Ready, listening for messages")
	if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("❌ Telegram update loop failed: ", err)
	}
	log.Println("👋 Shutting down")
}

// chatAdapter exposes the dispatcher through the HTTP /chat contract.
type chatAdapter struct {
	dispatch *dispatcher.Dispatcher
}

func (a chatAdapter) HandleChat(ctx context.Context, sessionID, message string) health.ChatReply {
	resp := a.dispatch.Handle(ctx, sessionID, message)
	return health.ChatReply{
		Response:     resp.Text,
		Photos:       resp.Photos,
		ComplaintURL: resp.PortalURL,
	}
}
