package bot

import "errors"

var (
	// ErrBotTokenRequired is returned when TELEGRAM_BOT_TOKEN is not set.
	ErrBotTokenRequired = errors.New("TELEGRAM_BOT_TOKEN is required")

	// ErrMappingRepositoryRequired is returned when a mapping repository is not provided.
	ErrMappingRepositoryRequired = errors.New("mapping repository required")

	// ErrOwnerRepositoryRequired is returned when an owner repository is not provided.
	ErrOwnerRepositoryRequired = errors.New("owner repository required")

	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrAlreadyRunning is returned when Start is called on a running bot.
	ErrAlreadyRunning = errors.New("bot is already running")

	// ErrNotRunning is returned when Stop is called on a stopped bot.
	ErrNotRunning = errors.New("bot is not running")
)
