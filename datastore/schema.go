package datastore

import (
	"context"
	"fmt"
)

// tasks.folder_id deliberately has no foreign key: deleting a folder leaves
// its tasks in place, pointing at a folder that no longer exists.

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         VARCHAR(36)  PRIMARY KEY,
		created_at DATETIME     NOT NULL,
		name       VARCHAR(255) NOT NULL,
		email      VARCHAR(255) NOT NULL UNIQUE,
		password   VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS folders (
		id      VARCHAR(36)  PRIMARY KEY,
		name    VARCHAR(255) NOT NULL,
		user_id VARCHAR(36)  NOT NULL,
		INDEX idx_folders_user (user_id),
		FOREIGN KEY (user_id) REFERENCES users (id)
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          VARCHAR(36)  PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		due_date    DATETIME     NOT NULL,
		description TEXT         NOT NULL,
		status      VARCHAR(64)  NOT NULL,
		folder_id   VARCHAR(36)  NOT NULL,
		user_id     VARCHAR(36)  NOT NULL,
		INDEX idx_tasks_user_folder (user_id, folder_id),
		FOREIGN KEY (user_id) REFERENCES users (id)
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         VARCHAR(36)  PRIMARY KEY,
		created_at TIMESTAMPTZ  NOT NULL,
		name       VARCHAR(255) NOT NULL,
		email      VARCHAR(255) NOT NULL UNIQUE,
		password   VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS folders (
		id      VARCHAR(36)  PRIMARY KEY,
		name    VARCHAR(255) NOT NULL,
		user_id VARCHAR(36)  NOT NULL REFERENCES users (id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_folders_user ON folders (user_id)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          VARCHAR(36)  PRIMARY KEY,
		title       VARCHAR(255) NOT NULL,
		due_date    TIMESTAMPTZ  NOT NULL,
		description TEXT         NOT NULL,
		status      VARCHAR(64)  NOT NULL,
		folder_id   VARCHAR(36)  NOT NULL,
		user_id     VARCHAR(36)  NOT NULL REFERENCES users (id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user_folder ON tasks (user_id, folder_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT      PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		name       TEXT      NOT NULL,
		email      TEXT      NOT NULL UNIQUE,
		password   TEXT      NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS folders (
		id      TEXT PRIMARY KEY,
		name    TEXT NOT NULL,
		user_id TEXT NOT NULL REFERENCES users (id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_folders_user ON folders (user_id)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT      PRIMARY KEY,
		title       TEXT      NOT NULL,
		due_date    TIMESTAMP NOT NULL,
		description TEXT      NOT NULL,
		status      TEXT      NOT NULL,
		folder_id   TEXT      NOT NULL,
		user_id     TEXT      NOT NULL REFERENCES users (id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user_folder ON tasks (user_id, folder_id)`,
}

// EnsureSchema creates the users, folders and tasks tables if they are missing.
func (c *Conn) EnsureSchema(ctx context.Context) error {
	var stmts []string
	switch c.dialect {
	case DialectMySQL:
		stmts = mysqlSchema
	case DialectPostgres:
		stmts = postgresSchema
	case DialectSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("no schema for dialect %q", c.dialect)
	}
	for _, stmt := range stmts {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
