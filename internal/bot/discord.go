// Package bot connects the command registry to Discord.
package bot

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/codyseavey/archimago/internal/commands"
)

// StatusMessages are shown at random under the bot's name.
var StatusMessages = []string{
	"Brewing magic..",
	"Casting Blink..",
	"Sitting by the bonfire..",
	"Sitting on the Immortal Throne..",
	"Erupting Vesuvius..",
	"Pathfinding..",
	"Navigating the Stormy Seas..",
	"Attending the Royal Wedding..",
}

const (
	// StatusInterval is how often the status message changes.
	StatusInterval = 5 * time.Minute

	messageTimeout = 30 * time.Second
)

// Bot answers chat commands on Discord.
type Bot struct {
	session  *discordgo.Session
	registry *commands.Registry

	mu     sync.Mutex
	status string
	cancel context.CancelFunc
	ctx    context.Context
}

// New creates a bot for the given token. Nothing connects until Start.
func New(token string, registry *commands.Registry) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session:  session,
		registry: registry,
		ctx:      context.Background(),
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessage)
	return b, nil
}

// Start opens the gateway connection and rotates the status message until ctx
// is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	b.ctx = ctx
	b.cancel = cancel
	b.mu.Unlock()

	if err := b.session.Open(); err != nil {
		cancel()
		return fmt.Errorf("failed to connect to discord: %w", err)
	}

	go b.rotateStatus(ctx)
	return nil
}

// Close disconnects from Discord.
func (b *Bot) Close() error {
	log.Println("Closing Archimago..")
	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	b.mu.Unlock()
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	log.Printf("Archimago now running as %s", r.User.Username)
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}

	b.mu.Lock()
	parent := b.ctx
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(parent, messageTimeout)
	defer cancel()

	for _, reply := range b.replies(ctx, m, selfID) {
		if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
			log.Printf("Failed to send reply to channel %s: %v", m.ChannelID, err)
		}
	}
}

// replies answers one message. The bot's own messages and empty messages get
// no reply; messages without a guild are private.
func (b *Bot) replies(ctx context.Context, m *discordgo.MessageCreate, selfID string) []string {
	if m.Message == nil || m.Author == nil || m.Content == "" {
		return nil
	}
	if m.Author.ID == selfID || m.Author.Bot {
		return nil
	}
	return b.registry.HandleMessage(ctx, m.Content, m.GuildID == "")
}

func (b *Bot) rotateStatus(ctx context.Context) {
	ticker := time.NewTicker(StatusInterval)
	defer ticker.Stop()

	for {
		b.updateStatus()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (b *Bot) updateStatus() {
	b.mu.Lock()
	status := nextStatus(b.status, rand.IntN)
	b.status = status
	b.mu.Unlock()

	log.Printf("Changing presence to: %s", status)
	if err := b.session.UpdateCustomStatus(status); err != nil {
		log.Printf("Failed to update presence: %v", err)
	}
}

// nextStatus picks a random status message different from current.
func nextStatus(current string, pick func(n int) int) string {
	if len(StatusMessages) == 1 {
		return StatusMessages[0]
	}
	for {
		status := StatusMessages[pick(len(StatusMessages))]
		if status != current {
			return status
		}
	}
}
