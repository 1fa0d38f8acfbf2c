package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/re-minder/lobsterMoneyBot/core"
	"github.com/re-minder/lobsterMoneyBot/search"
	"github.com/re-minder/lobsterMoneyBot/storage"
)

const (
	statusPageSize = 50
	inlineMaxHits  = 10
)

// CommandContext carries the metadata of one incoming command.
type CommandContext struct {
	ChatID    int64
	MessageID int
	UserID    int64
	Username  string
	Command   string
	Args      []string
	RawArgs   string

	// ReplyVideoFileID is the file id of the video in the replied-to
	// message, empty when the command is not a reply to a video.
	ReplyVideoFileID string

	// IsReply reports whether the command message replies to another message.
	IsReply bool
}

// Handlers implements the bot commands and the inline query over the store.
// Methods return the reply text to send; an empty reply means the command
// is silently ignored (non-owners on owner commands).
type Handlers struct {
	mappings    storage.MappingRepository
	owners      storage.OwnerRepository
	searcher    *search.Searcher
	botUsername string
	logger      *slog.Logger
}

// NewHandlers creates the command and inline handlers.
func NewHandlers(
	mappings storage.MappingRepository,
	owners storage.OwnerRepository,
	searcher *search.Searcher,
	botUsername string,
	logger *slog.Logger,
) (*Handlers, error) {
	if mappings == nil {
		return nil, ErrMappingRepositoryRequired
	}
	if owners == nil {
		return nil, ErrOwnerRepositoryRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Handlers{
		mappings:    mappings,
		owners:      owners,
		searcher:    searcher,
		botUsername: botUsername,
		logger:      logger,
	}, nil
}

func (h *Handlers) isOwner(ctx context.Context, userID int64) bool {
	if userID <= 0 {
		return false
	}
	ok, err := h.owners.IsOwner(ctx, userID)
	if err != nil {
		h.logger.Error("owner check failed", "userID", userID, "err", err)
		return false
	}
	return ok
}

// Start handles /start with a usage hint for owners and non-owners.
func (h *Handlers) Start(ctx context.Context, cmd CommandContext) (string, error) {
	if h.isOwner(ctx, cmd.UserID) {
		return "You are an owner. To store a video: 1) Send a video, 2) Reply to it with /remember <phrase>.", nil
	}

	username := h.botUsername
	if username == "" {
		username = "<your_bot>"
	}
	return fmt.Sprintf("Use inline: type @%s <phrase> in any chat to get videos.", username), nil
}

// Remember handles /remember <phrase>: owners only, must reply to a video.
func (h *Handlers) Remember(ctx context.Context, cmd CommandContext) (string, error) {
	if !h.isOwner(ctx, cmd.UserID) {
		return "", nil
	}
	if len(cmd.Args) == 0 {
		return "Usage: reply to a video with /remember <phrase>", nil
	}

	phrase := strings.Join(cmd.Args, " ")
	if phrase == "" {
		return "Provide a non-empty phrase.", nil
	}
	if !cmd.IsReply {
		return "Reply to a video with this command.", nil
	}
	if cmd.ReplyVideoFileID == "" {
		return "The replied message does not contain a video.", nil
	}

	record := &core.MappingRecord{
		Phrase:     phrase,
		MediaRef:   cmd.ReplyVideoFileID,
		OwnerID:    cmd.UserID,
		OwnerLabel: cmd.Username,
	}
	if _, err := h.mappings.AddMappings(ctx, record); err != nil {
		h.logger.Error("failed to store mapping", "phrase", phrase, "err", err)
		return "", err
	}

	return fmt.Sprintf("Saved phrase '%s'.", phrase), nil
}

// AddOwner handles /add_owner <user_id>: owners only, idempotent.
func (h *Handlers) AddOwner(ctx context.Context, cmd CommandContext) (string, error) {
	if !h.isOwner(ctx, cmd.UserID) {
		return "", nil
	}
	if len(cmd.Args) == 0 {
		return "Usage: /add_owner <user_id>", nil
	}

	newOwnerID, err := strconv.ParseInt(cmd.Args[0], 10, 64)
	if err != nil {
		return "Invalid user_id", nil
	}

	if err := h.owners.AddOwner(ctx, newOwnerID, ""); err != nil {
		h.logger.Error("failed to add owner", "newOwnerID", newOwnerID, "err", err)
		return "", err
	}

	return fmt.Sprintf("Owner %d added.", newOwnerID), nil
}

// Status handles /status [page]: owners only, 50 mappings per page.
// The page number is clamped to the valid range.
func (h *Handlers) Status(ctx context.Context, cmd CommandContext) (string, error) {
	if !h.isOwner(ctx, cmd.UserID) {
		return "", nil
	}

	page := 1
	if len(cmd.Args) >= 1 {
		if parsed, err := strconv.Atoi(cmd.Args[0]); err == nil {
			page = max(1, parsed)
		}
	}

	total, err := h.mappings.CountMappings(ctx)
	if err != nil {
		h.logger.Error("failed to count mappings", "err", err)
		return "", err
	}
	if total == 0 {
		return "No mappings yet.", nil
	}

	maxPage := max(1, (total+statusPageSize-1)/statusPageSize)
	page = min(page, maxPage)
	offset := (page - 1) * statusPageSize

	items, err := h.mappings.ListMappingsPage(ctx, statusPageSize, offset)
	if err != nil {
		h.logger.Error("failed to list mappings page", "page", page, "err", err)
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Page %d/%d - total %d", page, maxPage, total)
	for _, item := range items {
		owner := item.OwnerLabel
		if owner == "" {
			owner = strconv.FormatInt(item.OwnerID, 10)
		}
		fmt.Fprintf(&sb, "\n%d. '%s' → %s (by %s)", item.Id, item.Phrase, item.MediaRef, owner)
	}
	sb.WriteString("\n\nUse /status <page> to navigate.")

	return sb.String(), nil
}

// InlineResults builds the inline query answer for a non-empty query.
// No matches yields a single hint article; matches become cached-video
// results titled by phrase.
func (h *Handlers) InlineResults(ctx context.Context, query string) ([]interface{}, error) {
	results, err := h.searcher.Search(ctx, query, inlineMaxHits)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		article := tgbotapi.NewInlineQueryResultArticle(
			"noop",
			"No matches",
			fmt.Sprintf("No results for '%s'. Try another phrase.", query),
		)
		article.Description = "No saved videos match this phrase."
		return []interface{}{article}, nil
	}

	answer := make([]interface{}, 0, len(results))
	for _, result := range results {
		record := result.Record
		video := tgbotapi.NewInlineQueryResultCachedVideo(
			strconv.FormatUint(uint64(record.Id), 10),
			record.MediaRef,
			record.Phrase,
		)
		description := record.OwnerLabel
		if description == "" && record.OwnerID != 0 {
			description = strconv.FormatInt(record.OwnerID, 10)
		}
		video.Description = description
		answer = append(answer, video)
	}

	return answer, nil
}
