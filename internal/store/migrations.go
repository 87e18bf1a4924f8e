package store

// migration is a single versioned schema change.
type migration struct {
	version int
	sql     string
}

// migrations are applied in order; each runs at most once per database.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS feed_cache (
	id INTEGER PRIMARY KEY,
	data TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id INTEGER PRIMARY KEY,
	kind TEXT NOT NULL,
	message TEXT NOT NULL,
	shoutout_id INTEGER NOT NULL DEFAULT 0,
	comment_id INTEGER NOT NULL DEFAULT 0,
	read INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS drafts (
	id TEXT PRIMARY KEY,
	message TEXT NOT NULL,
	recipient_ids TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feed_cache_created_at
	ON feed_cache(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_notifications_created_at
	ON notifications(created_at DESC);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
