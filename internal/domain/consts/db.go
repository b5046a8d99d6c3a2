package consts

// Database table names.
const (
	DBSessions     = "sessions"
	DBVideoResults = "video_results"
)

// Session table columns.
const (
	QSessID         = "id"
	QSessDir        = "dir"
	QSessSourceURL  = "source_url"
	QSessKind       = "kind"
	QSessTotal      = "total_attempted"
	QSessSucceeded  = "succeeded"
	QSessFailed     = "failed"
	QSessCreatedAt  = "created_at"
	QSessFinishedAt = "finished_at"
)

// Video result table columns.
const (
	QVidID         = "id"
	QVidSessionID  = "session_id"
	QVidURL        = "url"
	QVidVideoID    = "video_id"
	QVidSuccess    = "success"
	QVidOutputPath = "output_path"
	QVidError      = "error"
	QVidCreatedAt  = "created_at"
)
