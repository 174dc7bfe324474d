package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/diwise/aqi-bot/internal/pkg/application"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("aqi-bot/discord")

type Bot interface {
	Open() error
	Close() error
}

type bot struct {
	ctx     context.Context
	session *discordgo.Session
	app     application.App
	log     zerolog.Logger
}

type SendFunc func(content string) error

// New creates a bot that answers chat commands using app. Session state,
// reconnects and event dispatch are handled by discordgo.
func New(ctx context.Context, token string, app application.App) (Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	b := &bot{
		ctx:     ctx,
		session: session,
		app:     app,
		log:     logging.GetFromContext(ctx),
	}

	session.AddHandler(b.ready)
	session.AddHandler(b.messageCreate)

	return b, nil
}

func (b *bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	return nil
}

func (b *bot) Close() error {
	return b.session.Close()
}

func (b *bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	if r.User == nil {
		return
	}
	b.log.Info().Str("user", r.User.Username).Msg("connected to discord")
}

func (b *bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	var err error

	ctx, span := tracer.Start(b.ctx, "message-create")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	logger := b.log.With().Str("channel_id", m.ChannelID).Logger()
	_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

	err = Respond(ctx, b.app, m.Content, func(content string) error {
		_, err := s.ChannelMessageSend(m.ChannelID, content)
		return err
	})
}

// Respond runs a chat message through app and sends the reply, if any.
func Respond(ctx context.Context, app application.App, content string, send SendFunc) error {
	logger := logging.GetFromContext(ctx)
	logger.Debug().Str("content", content).Msg("message received")

	reply, handled := app.HandleCommand(ctx, content)
	if !handled {
		return nil
	}

	if err := send(reply); err != nil {
		logger.Error().Err(err).Msg("failed to send message")
		return err
	}

	return nil
}
