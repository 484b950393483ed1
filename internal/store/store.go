package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/stateful/storyblocks/internal/version"
	"github.com/stateful/storyblocks/pkg/document"
)

var ErrNotFound = errors.New("article not found")

// Summary describes a stored article without loading its blocks.
type Summary struct {
	ID         string
	Title      string
	MarkupSize int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ArticleStore keeps articles in a SQLite database.
type ArticleStore struct {
	conn   *sql.DB
	logger *zap.Logger
}

// Open opens, or creates, the database at path.
func Open(path string, logger *zap.Logger) (*ArticleStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create database directory")
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite")
	}
	// SQLite allows a single writer.
	conn.SetMaxOpenConns(1)

	s := &ArticleStore{conn: conn, logger: logger}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to migrate")
	}

	logger.Debug("opened article store", zap.String("path", path))

	return s, nil
}

func (s *ArticleStore) Close() error {
	return s.conn.Close()
}

func (s *ArticleStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			blocks_json TEXT NOT NULL DEFAULT '[]',
			markup TEXT NOT NULL DEFAULT '',
			version TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_updated ON articles(updated_at)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Save inserts the article or replaces the one with the same id. The
// creation time of an existing article is kept. Articles without a
// version are stamped with the running one.
func (s *ArticleStore) Save(ctx context.Context, a *document.Article) error {
	if a.ID == "" {
		return errors.New("article has no id")
	}

	doc := a.Document
	if doc == nil {
		doc = document.NewDocument()
	}
	blocks, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to encode blocks")
	}

	if a.Version == "" {
		a.Version = version.BaseVersion()
	}

	now := time.Now().UTC()
	err = s.conn.QueryRowContext(
		ctx,
		`INSERT INTO articles (id, title, blocks_json, markup, version, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			blocks_json = excluded.blocks_json,
			markup = excluded.markup,
			version = excluded.version,
			updated_at = excluded.updated_at
		RETURNING created_at`,
		a.ID, a.Title, string(blocks), a.Markup, a.Version, now, now,
	).Scan(&a.CreatedAt)
	if err != nil {
		return errors.Wrapf(err, "failed to save article %s", a.ID)
	}
	a.UpdatedAt = now

	s.logger.Debug("saved article", zap.String("id", a.ID), zap.Int("blocks", doc.Len()))

	return nil
}

func (s *ArticleStore) Get(ctx context.Context, id string) (*document.Article, error) {
	var (
		a      document.Article
		blocks string
	)
	err := s.conn.QueryRowContext(
		ctx,
		`SELECT id, title, blocks_json, markup, version, created_at, updated_at FROM articles WHERE id = ?`, id,
	).Scan(&a.ID, &a.Title, &blocks, &a.Markup, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get article %s", id)
	}

	doc, err := document.Parse([]byte(blocks))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode blocks of article %s", id)
	}
	a.Document = doc

	return &a, nil
}

// List returns summaries of all articles, most recently updated first.
func (s *ArticleStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.conn.QueryContext(
		ctx,
		`SELECT id, title, length(CAST(markup AS BLOB)), created_at, updated_at FROM articles ORDER BY updated_at DESC, id ASC`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list articles")
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.MarkupSize, &sum.CreatedAt, &sum.UpdatedAt); err != nil {
			return nil, errors.WithStack(err)
		}
		result = append(result, sum)
	}
	return result, errors.WithStack(rows.Err())
}

func (s *ArticleStore) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return errors.Wrapf(err, "failed to delete article %s", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.Wrapf(ErrNotFound, "id %s", id)
	}
	return nil
}
