// Package bot contains the CLI command that assembles and runs the bot:
// config, database, repositories, use cases, gateway session, background
// services, and the optional status HTTP server.
package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	guildservices "warden/internal/application/guild/services"
	guildusecases "warden/internal/application/guild/usecases"
	moderationservices "warden/internal/application/moderation/services"
	moderationusecases "warden/internal/application/moderation/usecases"
	ticketservices "warden/internal/application/ticket/services"
	ticketusecases "warden/internal/application/ticket/usecases"
	"warden/internal/infrastructure/config"
	"warden/internal/infrastructure/database"
	"warden/internal/infrastructure/discord"
	"warden/internal/infrastructure/migration"
	"warden/internal/infrastructure/repository"
	"warden/internal/infrastructure/services"
	botInterface "warden/internal/interfaces/bot"
	httpRouter "warden/internal/interfaces/http"
	sharedDB "warden/internal/shared/db"
	"warden/internal/shared/goroutine"
	"warden/internal/shared/logger"
)

var skipMigrations bool

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the bot",
		Long:  `Connect to the Discord gateway and serve commands until interrupted.`,
		RunE:  run,
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting warden",
		"guild_id", cfg.Discord.GuildID,
		"prefix", cfg.Discord.Prefix,
	)

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if !skipMigrations {
		if err := migration.Up(database.Get(), log); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	db := database.Get()
	ticketRepo := repository.NewTicketRepository(db)
	messageRepo := repository.NewTicketMessageRepository(db)
	caseRepo := repository.NewModerationRepository(db)
	muteRepo := repository.NewMuteRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	txManager := sharedDB.NewTransactionManager(db)
	ticketIDGen := services.NewTicketIDGenerator(ticketRepo)
	caseIDGen := services.NewCaseIDGenerator(caseRepo)

	resolver := guildservices.NewSettingsResolver(settingsRepo, cfg.Discord)

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create gateway session: %w", err)
	}
	gateway := discord.NewGateway(session, log.Named("gateway"))

	scheduler := moderationservices.NewMuteScheduler(muteRepo, gateway, resolver, log.Named("mutes"))

	staffRoles := cfg.Discord.StaffRoles()
	usecases := botInterface.UseCases{
		OpenTicket: ticketusecases.NewOpenTicketUseCase(
			ticketRepo, ticketIDGen, gateway, resolver, cfg.Tickets.MaxPerUser, staffRoles, log),
		CloseTicket:   ticketusecases.NewCloseTicketUseCase(ticketRepo, gateway, resolver, staffRoles, log),
		ReopenTicket:  ticketusecases.NewReopenTicketUseCase(ticketRepo, gateway, resolver, log),
		Transcript:    ticketusecases.NewTranscriptUseCase(ticketRepo, gateway, log),
		TicketInfo:    ticketusecases.NewTicketInfoUseCase(ticketRepo, log),
		RecordMessage: ticketusecases.NewRecordMessageUseCase(ticketRepo, messageRepo, log),
		Participants:  ticketusecases.NewManageParticipantsUseCase(ticketRepo, gateway, log),

		Warn: moderationusecases.NewWarnUseCase(caseRepo, caseIDGen, gateway, resolver, log),
		Mute: moderationusecases.NewMuteUseCase(
			caseRepo, muteRepo, caseIDGen, gateway, resolver, settingsRepo, scheduler, txManager, log),
		Unmute:   moderationusecases.NewUnmuteUseCase(muteRepo, gateway, resolver, log),
		Kick:     moderationusecases.NewKickUseCase(caseRepo, caseIDGen, gateway, resolver, log),
		Ban:      moderationusecases.NewBanUseCase(caseRepo, caseIDGen, gateway, resolver, log),
		Warnings: moderationusecases.NewListWarningsUseCase(caseRepo, log),
		GetCase:  moderationusecases.NewGetCaseUseCase(caseRepo, log),

		UpdateSettings: guildusecases.NewUpdateSettingsUseCase(settingsRepo, log),
		GetSettings:    guildusecases.NewGetSettingsUseCase(resolver, log),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The scheduler must be running before the gateway opens: a mute handled
	// before Start would arm its timer against a scheduler with no context.
	scheduler.Start(ctx)
	defer scheduler.Stop()
	if err := scheduler.Recover(ctx); err != nil {
		log.Errorw("mute recovery failed", "error", err)
	}

	b := botInterface.New(session, cfg.Discord, usecases, log.Named("bot"))
	if err := b.Start(); err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}
	defer b.Stop()

	sweepUseCase := ticketusecases.NewSweepStaleUseCase(ticketRepo, gateway, cfg.Tickets.AutoCloseDays, log)
	sweeper := ticketservices.NewSweeper(
		sweepUseCase,
		time.Duration(cfg.Tickets.SweepIntervalH)*time.Hour,
		log.Named("sweeper"),
	)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	var srv *http.Server
	if cfg.Server.Enabled {
		gin.SetMode(cfg.Server.Mode)
		gin.DefaultWriter = io.Discard

		router := httpRouter.NewRouter(ticketRepo, caseRepo, log.Named("http"))
		router.SetupRoutes()

		srv = &http.Server{
			Addr:         cfg.Server.GetAddr(),
			Handler:      router.GetEngine(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		goroutine.SafeGo(log, "status-server", func() {
			log.Infow("status server listening", "address", cfg.Server.GetAddr())
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorw("status server failed", "error", err)
			}
		})
	}

	log.Infow("warden is running, press ctrl-c to exit")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down")

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorw("status server shutdown failed", "error", err)
		}
	}

	return nil
}
