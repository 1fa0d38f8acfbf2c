// Package bot implements the Telegram gateway.
//
// The Bot type runs a long-polling update loop and routes updates to
// command handlers (/start, /remember, /add_owner, /status) and the
// inline query handler. Owner-only commands are silently ignored for
// non-owners. Configuration comes from environment variables; configured
// owners are seeded into the store at startup.
package bot
