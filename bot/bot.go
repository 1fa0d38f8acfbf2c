// Copyright 2025 re-minder
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot runs the Telegram long-polling loop and routes updates to handlers.
type Bot struct {
	api      *tgbotapi.BotAPI
	config   *Config
	handlers *Handlers
	logger   *slog.Logger

	running bool
	updates tgbotapi.UpdatesChannel
}

// New creates a new bot instance and authenticates against the Telegram API.
func New(config *Config, handlers *Handlers, logger *slog.Logger) (*Bot, error) {
	if config == nil || config.BotToken == "" {
		return nil, ErrBotTokenRequired
	}
	if logger == nil {
		logger = slog.Default()
	}

	api, err := tgbotapi.NewBotAPI(config.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Info("telegram bot authenticated",
		"username", api.Self.UserName,
		"id", api.Self.ID)

	return &Bot{
		api:      api,
		config:   config,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Start begins long polling and processing updates.
func (b *Bot) Start(ctx context.Context) error {
	if b.running {
		return ErrAlreadyRunning
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	b.updates = b.api.GetUpdatesChan(u)
	b.running = true

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started")
	return nil
}

// Stop stops receiving updates.
func (b *Bot) Stop() error {
	if !b.running {
		return ErrNotRunning
	}

	b.running = false
	b.api.StopReceivingUpdates()

	b.logger.Info("telegram bot stopped")
	return nil
}

// IsRunning reports whether the bot is processing updates.
func (b *Bot) IsRunning() bool {
	return b.running
}

func (b *Bot) processUpdates(ctx context.Context) {
	for update := range b.updates {
		if !b.running {
			break
		}

		if err := b.handleUpdate(ctx, update); err != nil {
			b.logger.Error("failed to handle update",
				"updateID", update.UpdateID,
				"err", err)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.InlineQuery != nil {
		return b.handleInlineQuery(ctx, update.InlineQuery)
	}

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(ctx, update.Message)
	}

	return nil
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	cmd := CommandContext{
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		UserID:    msg.From.ID,
		Username:  msg.From.UserName,
		Command:   msg.Command(),
		Args:      strings.Fields(msg.CommandArguments()),
		RawArgs:   msg.CommandArguments(),
	}
	if msg.ReplyToMessage != nil {
		cmd.IsReply = true
		if msg.ReplyToMessage.Video != nil {
			cmd.ReplyVideoFileID = msg.ReplyToMessage.Video.FileID
		}
	}

	b.logger.Debug("command received",
		"chatID", cmd.ChatID,
		"command", cmd.Command,
		"args", cmd.Args)

	var reply string
	var err error
	switch cmd.Command {
	case "start":
		reply, err = b.handlers.Start(ctx, cmd)
	case "remember":
		reply, err = b.handlers.Remember(ctx, cmd)
	case "add_owner":
		reply, err = b.handlers.AddOwner(ctx, cmd)
	case "status":
		reply, err = b.handlers.Status(ctx, cmd)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	if reply == "" {
		return nil
	}

	response := tgbotapi.NewMessage(cmd.ChatID, reply)
	response.ReplyToMessageID = cmd.MessageID
	if _, err := b.api.Send(response); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

func (b *Bot) handleInlineQuery(ctx context.Context, query *tgbotapi.InlineQuery) error {
	text := strings.TrimSpace(query.Query)
	if text == "" {
		return nil
	}

	results, err := b.handlers.InlineResults(ctx, text)
	if err != nil {
		return err
	}

	answer := tgbotapi.InlineConfig{
		InlineQueryID: query.ID,
		Results:       results,
		CacheTime:     0,
		IsPersonal:    true,
	}
	if _, err := b.api.Request(answer); err != nil {
		return fmt.Errorf("failed to answer inline query: %w", err)
	}
	return nil
}
