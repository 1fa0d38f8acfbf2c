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
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds bot settings loaded from the environment.
type Config struct {
	BotToken    string
	OwnerIDs    []int64
	DBPath      string
	DataDir     string
	BotUsername string
}

// LoadConfig reads configuration from environment variables.
//
//	TELEGRAM_BOT_TOKEN  required
//	OWNER_IDS           comma-separated user ids; malformed entries skipped
//	DATA_DIR            defaults to "data"
//	DB_PATH             defaults to <DATA_DIR>/bot.db
//	BOT_USERNAME        used in the /start hint for non-owners
func LoadConfig() (*Config, error) {
	token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	if token == "" {
		return nil, ErrBotTokenRequired
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "bot.db")
	}

	return &Config{
		BotToken:    token,
		OwnerIDs:    parseOwnerIDs(os.Getenv("OWNER_IDS")),
		DBPath:      dbPath,
		DataDir:     dataDir,
		BotUsername: strings.TrimSpace(os.Getenv("BOT_USERNAME")),
	}, nil
}

// parseOwnerIDs parses a comma-separated list of user ids.
// Empty and malformed entries are skipped.
func parseOwnerIDs(raw string) []int64 {
	if raw == "" {
		return nil
	}

	var ids []int64
	for _, piece := range strings.Split(raw, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		id, err := strconv.ParseInt(piece, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
