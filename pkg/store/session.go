package store

// Session represents the active assessment session state in memory.
// It is owned by exactly one conversation and mutated only by the
// session engine while the per-session lock is held.
type Session struct {
	ID     string `json:"id"` // ChatSessionID
	UserID string `json:"user_id"`

	// Scan state: set once an accepted 3D scan has been persisted.
	HasScan  bool   `json:"has_scan"`
	ScanPath string `json:"scan_path"`

	// Task state: set once a task description has been recorded.
	HasTask        bool   `json:"has_task"`
	TaskRecordPath string `json:"task_record_path"`

	// Video playback directive for the client player.
	VideoVisible bool   `json:"video_visible"`
	VideoSource  string `json:"video_source"`

	// Verdict imagery directive for the client panels; populated
	// alongside the verdict.
	ImageVisible     bool   `json:"image_visible"`
	BigImageSource   string `json:"big_image_source"`
	SmallImageSource string `json:"small_image_source"`

	// Verdict state: Ready flips forward only; Verdict holds the
	// classification once Ready is true.
	VerdictReady bool   `json:"verdict_ready"`
	Verdict      string `json:"verdict"`

	// Metadata for last interaction
	LastQuery string `json:"last_query"`
}

// Snapshot returns a copy for read-only rendering after an event.
func (s *Session) Snapshot() Session {
	return *s
}
