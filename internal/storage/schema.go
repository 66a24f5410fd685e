package storage

// schemaStatements is applied in order on startup. Every statement is
// idempotent so migration can run on every boot.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS conversations (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		title           TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'active',
		message_count   INTEGER NOT NULL DEFAULT 0,
		last_message_at TIMESTAMP,
		created_at      TIMESTAMP NOT NULL,
		updated_at      TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id, status)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id              TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL REFERENCES conversations(id),
		role            TEXT NOT NULL,
		content         TEXT NOT NULL,
		token_count     INTEGER NOT NULL DEFAULT 0,
		metadata        TEXT NOT NULL DEFAULT '{}',
		created_at      TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL,
		title             TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		priority          INTEGER NOT NULL DEFAULT 3,
		status            TEXT NOT NULL DEFAULT 'pending',
		estimated_minutes INTEGER NOT NULL DEFAULT 0,
		deadline          TIMESTAMP,
		scheduled_time    TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMP NOT NULL,
		updated_at        TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user_status ON tasks(user_id, status)`,

	`CREATE TABLE IF NOT EXISTS subtasks (
		id                TEXT PRIMARY KEY,
		task_id           TEXT NOT NULL REFERENCES tasks(id),
		title             TEXT NOT NULL,
		estimated_minutes INTEGER NOT NULL DEFAULT 0,
		position          INTEGER NOT NULL DEFAULT 0,
		done              INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_subtasks_task ON subtasks(task_id, position)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id      TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name    TEXT NOT NULL,
		UNIQUE(user_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS task_tags (
		task_id TEXT NOT NULL REFERENCES tasks(id),
		tag_id  TEXT NOT NULL REFERENCES tags(id),
		PRIMARY KEY (task_id, tag_id)
	)`,

	`CREATE TABLE IF NOT EXISTS timetable_classes (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		name       TEXT NOT NULL,
		day        TEXT NOT NULL,
		period     INTEGER NOT NULL DEFAULT 1,
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL,
		room       TEXT NOT NULL DEFAULT '',
		instructor TEXT NOT NULL DEFAULT '',
		color      TEXT NOT NULL DEFAULT '#6366F1',
		icon       TEXT NOT NULL DEFAULT 'book',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_timetable_user_day ON timetable_classes(user_id, day, period)`,

	`CREATE TABLE IF NOT EXISTS knowledge_categories (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		name       TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE(user_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS knowledge_items (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		category_id      TEXT NOT NULL DEFAULT '',
		learning_path_id TEXT NOT NULL DEFAULT '',
		type             TEXT NOT NULL DEFAULT 'note',
		title            TEXT NOT NULL,
		content          TEXT NOT NULL DEFAULT '',
		question         TEXT NOT NULL DEFAULT '',
		answer           TEXT NOT NULL DEFAULT '',
		tags             TEXT NOT NULL DEFAULT '[]',
		view_count       INTEGER NOT NULL DEFAULT 0,
		last_reviewed_at TIMESTAMP,
		archived         INTEGER NOT NULL DEFAULT 0,
		created_at       TIMESTAMP NOT NULL,
		updated_at       TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_knowledge_user ON knowledge_items(user_id, archived)`,
}
