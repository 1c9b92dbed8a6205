// Package knowledge provides PostgreSQL storage for ingested benefit-policy
// documents and keyword retrieval over them.
package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultDocumentTTL is how long an ingested policy page stays fresh
// before re-ingestion is needed.
const DefaultDocumentTTL = 7 * 24 * time.Hour

// Store wraps a PostgreSQL connection pool
type Store struct {
	pool *pgxpool.Pool
}

// Document is one ingested policy page.
type Document struct {
	ID        uuid.UUID  `json:"id"`
	State     string     `json:"state"`
	URL       string     `json:"url"`
	Source    string     `json:"source"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	FetchedAt time.Time  `json:"fetched_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertDocument stores a policy document, replacing any prior version for
// the same URL. Assigns an ID when the document has none.
func (s *Store) UpsertDocument(ctx context.Context, doc *Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now()
	}
	if doc.ExpiresAt == nil {
		exp := doc.FetchedAt.Add(DefaultDocumentTTL)
		doc.ExpiresAt = &exp
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO policy_documents (id, state, url, source, title, content, fetched_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (url) DO UPDATE SET
		   state = $2, source = $4, title = $5, content = $6,
		   fetched_at = $7, expires_at = $8`,
		doc.ID, doc.State, doc.URL, doc.Source, doc.Title, doc.Content,
		doc.FetchedAt, doc.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document for %s: %w", doc.URL, err)
	}
	return nil
}

// GetDocumentByURL retrieves a document regardless of freshness.
// Returns nil when none exists.
func (s *Store) GetDocumentByURL(ctx context.Context, url string) (*Document, error) {
	var doc Document
	err := s.pool.QueryRow(ctx,
		`SELECT id, state, url, source, title, content, fetched_at, expires_at
		 FROM policy_documents WHERE url = $1`,
		url,
	).Scan(&doc.ID, &doc.State, &doc.URL, &doc.Source, &doc.Title, &doc.Content, &doc.FetchedAt, &doc.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// GetFreshDocument retrieves a document only if it has not expired.
// Returns nil when absent or stale.
func (s *Store) GetFreshDocument(ctx context.Context, url string) (*Document, error) {
	var doc Document
	err := s.pool.QueryRow(ctx,
		`SELECT id, state, url, source, title, content, fetched_at, expires_at
		 FROM policy_documents
		 WHERE url = $1 AND (expires_at IS NULL OR expires_at > NOW())`,
		url,
	).Scan(&doc.ID, &doc.State, &doc.URL, &doc.Source, &doc.Title, &doc.Content, &doc.FetchedAt, &doc.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get fresh document: %w", err)
	}
	return &doc, nil
}

// ListDocuments retrieves documents for a state, newest first. An empty
// state lists all documents.
func (s *Store) ListDocuments(ctx context.Context, state string, limit int) ([]Document, error) {
	if limit == 0 {
		limit = 50
	}

	query := `SELECT id, state, url, source, title, content, fetched_at, expires_at
		FROM policy_documents WHERE 1=1`
	args := []any{}
	argNum := 1

	if state != "" {
		query += fmt.Sprintf(" AND state = $%d", argNum)
		args = append(args, state)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY fetched_at DESC LIMIT $%d", argNum)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.State, &doc.URL, &doc.Source, &doc.Title, &doc.Content, &doc.FetchedAt, &doc.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// SearchResult is one document matched by a keyword search.
type SearchResult struct {
	Document Document `json:"document"`
	Score    int      `json:"score"`
}

// Search finds documents whose content matches the query keywords,
// restricted to a state when given. Candidates come from an ILIKE scan;
// ranking by keyword occurrence happens in memory.
func (s *Store) Search(ctx context.Context, state, query string, limit int) ([]SearchResult, error) {
	keywords := splitKeywords(query)
	if len(keywords) == 0 {
		return nil, nil
	}
	if limit == 0 {
		limit = 5
	}

	sql := `SELECT id, state, url, source, title, content, fetched_at, expires_at
		FROM policy_documents WHERE content ILIKE $1`
	args := []any{"%" + keywords[0] + "%"}
	argNum := 2

	if state != "" {
		sql += fmt.Sprintf(" AND state = $%d", argNum)
		args = append(args, state)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.State, &doc.URL, &doc.Source, &doc.Title, &doc.Content, &doc.FetchedAt, &doc.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	results := rankDocuments(docs, keywords)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// DeleteExpired removes documents past their expiry and returns how many
// were removed.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := s.pool.Exec(ctx,
		`DELETE FROM policy_documents WHERE expires_at IS NOT NULL AND expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired documents: %w", err)
	}
	return result.RowsAffected(), nil
}

// splitKeywords lowercases a query and drops words too short to rank on.
func splitKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= 3 {
			keywords = append(keywords, f)
		}
	}
	return keywords
}

// rankDocuments scores each document by total keyword occurrences and
// sorts high to low. Documents with zero score are dropped.
func rankDocuments(docs []Document, keywords []string) []SearchResult {
	results := make([]SearchResult, 0, len(docs))
	for _, doc := range docs {
		content := strings.ToLower(doc.Content)
		title := strings.ToLower(doc.Title)

		score := 0
		for _, kw := range keywords {
			score += strings.Count(content, kw)
			// Title hits weigh more than body hits
			score += strings.Count(title, kw) * 5
		}
		if score == 0 {
			continue
		}
		results = append(results, SearchResult{Document: doc, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
