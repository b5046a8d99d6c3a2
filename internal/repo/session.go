package repo

import (
	"database/sql"
	"fmt"
	"time"

	"audiorr/internal/domain/consts"
	"audiorr/internal/models"
	"audiorr/internal/utils/logging"

	"github.com/Masterminds/squirrel"
)

// SessionStore holds a pointer to the sql.DB.
type SessionStore struct {
	DB *sql.DB
}

// GetSessionStore returns a session store instance with injected database.
func GetSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{
		DB: db,
	}
}

// GetDB returns the database.
func (ss *SessionStore) GetDB() *sql.DB {
	return ss.DB
}

// AddSession inserts a new session row at the start of a run.
func (ss *SessionStore) AddSession(rec *models.SessionRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("session must have an ID")
	}

	query := squirrel.
		Insert(consts.DBSessions).
		Columns(
			consts.QSessID,
			consts.QSessDir,
			consts.QSessSourceURL,
			consts.QSessKind,
			consts.QSessTotal,
			consts.QSessSucceeded,
			consts.QSessFailed,
			consts.QSessCreatedAt,
		).
		Values(
			rec.ID,
			rec.Dir,
			rec.SourceURL,
			rec.Kind,
			rec.TotalAttempted,
			rec.Succeeded,
			rec.Failed,
			rec.CreatedAt,
		)

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := ss.DB.Exec(sqlStr, args...); err != nil {
		return fmt.Errorf("failed to insert session %q: %w", rec.ID, err)
	}
	return nil
}

// AddVideoResults inserts per-video results for a session.
//
// Results without URLs are skipped with a logged warning; one bad row does
// not abort the batch.
func (ss *SessionStore) AddVideoResults(sessionID string, results []models.VideoResult) (err error) {
	if sessionID == "" {
		return fmt.Errorf("results must belong to a session")
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := ss.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Panic rollback failed for session %q: %v", sessionID, rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Rollback failed for session %q (original error: %v): %v", sessionID, err, rbErr)
			}
		}
	}()

	now := time.Now()

	insertQuery := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s) VALUES (?, ?, ?, ?, ?, ?, ?)",
		consts.DBVideoResults,
		consts.QVidSessionID,
		consts.QVidURL,
		consts.QVidVideoID,
		consts.QVidSuccess,
		consts.QVidOutputPath,
		consts.QVidError,
		consts.QVidCreatedAt,
	)

	for i, r := range results {
		if r.URL == "" {
			logging.W("Result #%d for session %q has no URL, skipping", i, sessionID)
			continue
		}
		if _, err = tx.Exec(insertQuery, sessionID, r.URL, r.VideoID, r.Success, r.OutputPath, r.Err, now); err != nil {
			return fmt.Errorf("failed to insert result %q: %w", r.URL, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FinishSession writes final counts and the finish time for a session.
func (ss *SessionStore) FinishSession(rec *models.SessionRecord) error {
	query := squirrel.
		Update(consts.DBSessions).
		Set(consts.QSessTotal, rec.TotalAttempted).
		Set(consts.QSessSucceeded, rec.Succeeded).
		Set(consts.QSessFailed, rec.Failed).
		Set(consts.QSessFinishedAt, rec.FinishedAt).
		Where(squirrel.Eq{consts.QSessID: rec.ID})

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	res, err := ss.DB.Exec(sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to update session %q: %w", rec.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no session with ID %q", rec.ID)
	}
	return nil
}

// GetSession retrieves a single session row.
func (ss *SessionStore) GetSession(id string) (rec *models.SessionRecord, found bool, err error) {
	query := squirrel.
		Select(
			consts.QSessID,
			consts.QSessDir,
			consts.QSessSourceURL,
			consts.QSessKind,
			consts.QSessTotal,
			consts.QSessSucceeded,
			consts.QSessFailed,
			consts.QSessCreatedAt,
			consts.QSessFinishedAt,
		).
		From(consts.DBSessions).
		Where(squirrel.Eq{consts.QSessID: id})

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build query: %w", err)
	}

	rec = new(models.SessionRecord)
	var finishedAt sql.NullTime

	err = ss.DB.QueryRow(sqlStr, args...).Scan(
		&rec.ID,
		&rec.Dir,
		&rec.SourceURL,
		&rec.Kind,
		&rec.TotalAttempted,
		&rec.Succeeded,
		&rec.Failed,
		&rec.CreatedAt,
		&finishedAt,
	)
	switch {
	case err == sql.ErrNoRows:
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("failed to query session %q: %w", id, err)
	}

	if finishedAt.Valid {
		rec.FinishedAt = finishedAt.Time
	}
	return rec, true, nil
}

// GetSessionResults returns the ordered per-video results for a session.
func (ss *SessionStore) GetSessionResults(id string) ([]models.VideoResult, error) {
	query := squirrel.
		Select(
			consts.QVidURL,
			consts.QVidVideoID,
			consts.QVidSuccess,
			consts.QVidOutputPath,
			consts.QVidError,
		).
		From(consts.DBVideoResults).
		Where(squirrel.Eq{consts.QVidSessionID: id}).
		OrderBy(consts.QVidID + " ASC")

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := ss.DB.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results for session %q: %w", id, err)
	}
	defer rows.Close()

	var results []models.VideoResult
	for rows.Next() {
		var r models.VideoResult
		var videoID, outputPath, errMsg sql.NullString

		if err := rows.Scan(&r.URL, &videoID, &r.Success, &outputPath, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}

		if videoID.Valid {
			r.VideoID = videoID.String
		}
		if outputPath.Valid {
			r.OutputPath = outputPath.String
		}
		if errMsg.Valid {
			r.Err = errMsg.String
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return results, nil
}

// ListSessions returns the most recent sessions, newest first.
func (ss *SessionStore) ListSessions(limit int) ([]models.SessionRecord, error) {
	if limit < 1 {
		limit = 25
	}

	query := squirrel.
		Select(
			consts.QSessID,
			consts.QSessDir,
			consts.QSessSourceURL,
			consts.QSessKind,
			consts.QSessTotal,
			consts.QSessSucceeded,
			consts.QSessFailed,
			consts.QSessCreatedAt,
			consts.QSessFinishedAt,
		).
		From(consts.DBSessions).
		OrderBy(consts.QSessCreatedAt + " DESC").
		Limit(uint64(limit))

	sqlStr, args, err := query.PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := ss.DB.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var recs []models.SessionRecord
	for rows.Next() {
		var rec models.SessionRecord
		var finishedAt sql.NullTime

		if err := rows.Scan(
			&rec.ID,
			&rec.Dir,
			&rec.SourceURL,
			&rec.Kind,
			&rec.TotalAttempted,
			&rec.Succeeded,
			&rec.Failed,
			&rec.CreatedAt,
			&finishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}

		if finishedAt.Valid {
			rec.FinishedAt = finishedAt.Time
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return recs, nil
}
