package entries

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"reverie/internal/summarizer"
	"reverie/pkg/crypto"
	"reverie/pkg/pagination"
	"reverie/pkg/query"
	"reverie/pkg/repository"
)

type repo struct {
	db         *sql.DB
	crypto     crypto.System
	summarizer summarizer.System
	logger     *slog.Logger
	pagination pagination.Config
	locks      *entryLocks
}

// New creates an entry repository implementing the System interface.
// The crypto system is applied at this boundary: content and summary are
// encrypted before every write and decrypted after every read.
func New(
	db *sql.DB,
	cryptoSys crypto.System,
	summarizerSys summarizer.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		crypto:     cryptoSys,
		summarizer: summarizerSys,
		logger:     logger.With("system", "entries"),
		pagination: pagination,
		locks:      newEntryLocks(),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// List loads the SQL-filtered collection, decrypts it, applies the
// in-memory search criteria that cannot run against ciphertext, and pages
// the result. Default order is creation time descending.
func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	listSQL, listArgs := qb.Build()
	loaded, err := repository.QueryMany(ctx, r.db, listSQL, listArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}

	if err := r.decryptAll(ctx, loaded); err != nil {
		return nil, err
	}

	fq := FilterQuery{}
	if page.Search != nil {
		fq.Search = *page.Search
	}
	if filters.Tag != nil {
		fq.Tag = *filters.Tag
	}
	matched := FilterEntries(loaded, fq)

	result := pagination.NewPageResult(
		pageSlice(matched, page),
		len(matched),
		page.Page,
		page.PageSize,
	)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Entry, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.decrypt(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Entry, error) {
	content := strings.TrimSpace(cmd.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	category := strings.TrimSpace(cmd.Category)
	if category == "" {
		category = DefaultCategory
	}

	encrypted, err := r.crypto.Encrypt(content)
	if err != nil {
		return nil, fmt.Errorf("encrypt content: %w", err)
	}

	tagsJSON, err := marshalTags(cmd.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}

	q := `
		INSERT INTO entries(id, content, category, mood, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, content, category, mood, tags, summarized, summary,
				  clarifications, dismissed_questions, created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		encrypted,
		category,
		cmd.Mood,
		tagsJSON,
	}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Entry, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanEntry)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	// Skip the decrypt round trip; the plaintext is already in hand.
	e.Content = content

	r.logger.Info("entry created", "id", e.ID, "category", e.Category)
	return &e, nil
}

// Summarize performs the one-time summarization transition. The model is
// called at most once, and on any failure the entry is left byte-for-byte
// unchanged; summary, clarifications, and the summarized flag land in a
// single update when the call succeeds.
func (r *repo) Summarize(ctx context.Context, id uuid.UUID) (*Entry, error) {
	unlock := r.locks.acquire(id)
	defer unlock()

	e, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if e.Summarized {
		return nil, ErrAlreadySummarized
	}

	result, err := r.summarizer.Summarize(ctx, e.Content)
	if err != nil {
		return nil, err
	}

	if err := e.ApplySummary(result.Summary, result.Questions); err != nil {
		return nil, err
	}

	encryptedSummary, err := r.crypto.Encrypt(*e.Summary)
	if err != nil {
		return nil, fmt.Errorf("encrypt summary: %w", err)
	}

	clarificationsJSON, err := marshalClarifications(e.Clarifications)
	if err != nil {
		return nil, fmt.Errorf("marshal clarifications: %w", err)
	}

	q := `
		UPDATE entries
		SET summarized = TRUE, summary = $1, clarifications = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, content, category, mood, tags, summarized, summary,
				  clarifications, dismissed_questions, created_at, updated_at`

	updated, err := r.update(ctx, q, encryptedSummary, clarificationsJSON, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"entry summarized",
		"id", id,
		"clarifications", len(updated.Clarifications),
	)
	return updated, nil
}

func (r *repo) Answer(ctx context.Context, id uuid.UUID, questionID int, answer string) (*Entry, error) {
	unlock := r.locks.acquire(id)
	defer unlock()

	e, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := e.AnswerClarification(questionID, answer); err != nil {
		return nil, err
	}

	clarificationsJSON, err := marshalClarifications(e.Clarifications)
	if err != nil {
		return nil, fmt.Errorf("marshal clarifications: %w", err)
	}

	q := `
		UPDATE entries
		SET clarifications = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, content, category, mood, tags, summarized, summary,
				  clarifications, dismissed_questions, created_at, updated_at`

	updated, err := r.update(ctx, q, clarificationsJSON, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("clarification answered", "id", id, "question", questionID)
	return updated, nil
}

func (r *repo) Dismiss(ctx context.Context, id uuid.UUID, questionID int) (*Entry, error) {
	unlock := r.locks.acquire(id)
	defer unlock()

	e, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := e.DismissClarification(questionID); err != nil {
		return nil, err
	}

	clarificationsJSON, err := marshalClarifications(e.Clarifications)
	if err != nil {
		return nil, fmt.Errorf("marshal clarifications: %w", err)
	}

	dismissedJSON, err := marshalClarifications(e.DismissedQuestions)
	if err != nil {
		return nil, fmt.Errorf("marshal dismissed questions: %w", err)
	}

	q := `
		UPDATE entries
		SET clarifications = $1, dismissed_questions = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, content, category, mood, tags, summarized, summary,
				  clarifications, dismissed_questions, created_at, updated_at`

	updated, err := r.update(ctx, q, clarificationsJSON, dismissedJSON, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("clarification dismissed", "id", id, "question", questionID)
	return updated, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := r.locks.acquire(id)
	defer unlock()

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM entries WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("entry deleted", "id", id)
	return nil
}

func (r *repo) Stats(ctx context.Context) (*Stats, error) {
	listSQL, listArgs := query.NewBuilder(projection, defaultSort).Build()

	loaded, err := repository.QueryMany(ctx, r.db, listSQL, listArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}

	if err := r.decryptAll(ctx, loaded); err != nil {
		return nil, err
	}

	return ComputeStats(loaded, time.Now()), nil
}

func (r *repo) update(ctx context.Context, q string, args ...any) (*Entry, error) {
	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Entry, error) {
		return repository.QueryOne(ctx, tx, q, args, scanEntry)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.decrypt(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repo) decrypt(e *Entry) error {
	content, err := r.crypto.Decrypt(e.Content)
	if err != nil {
		return fmt.Errorf("decrypt entry %s: %w", e.ID, err)
	}
	e.Content = content

	if e.Summary != nil {
		summary, err := r.crypto.Decrypt(*e.Summary)
		if err != nil {
			return fmt.Errorf("decrypt summary %s: %w", e.ID, err)
		}
		e.Summary = &summary
	}

	return nil
}

func (r *repo) decryptAll(ctx context.Context, entries []Entry) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(entries)))

	for i := range entries {
		g.Go(func() error {
			return r.decrypt(&entries[i])
		})
	}

	return g.Wait()
}

func pageSlice(entries []Entry, page pagination.PageRequest) []Entry {
	start := page.Offset()
	if start >= len(entries) {
		return []Entry{}
	}

	end := min(start+page.PageSize, len(entries))
	return entries[start:end]
}

func workerCount(n int) int {
	return max(min(runtime.NumCPU(), n), 1)
}
