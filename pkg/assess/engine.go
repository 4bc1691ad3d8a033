package assess

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"ergo-assist-be/internal/constant"
	"ergo-assist-be/pkg/metrics"
	"ergo-assist-be/pkg/scan"
	"ergo-assist-be/pkg/storage"
	"ergo-assist-be/pkg/store"
	"ergo-assist-be/pkg/taskdesc"
	"ergo-assist-be/pkg/verdict"
)

// Config carries the environment-supplied knobs for the session engine.
// Safety thresholds are NOT here: they are fixed constants in pkg/verdict.
type Config struct {
	DefaultVideoSource      string // used when "/video" carries no fragment
	MotionAssetBaseDir      string // bare filenames resolve under this
	RecommendedMotionSource string // shown once a verdict is computed
	BigImageSource          string // verdict imagery shown with the result
	SmallImageSource        string
	ScoreFilePath           string // metric score file location
	SubjectIndex            int    // index into array-valued metrics
	ScanKey                 string // fixed storage key stem for uploads
	DemoTrigger             string // substring that triggers the demo reply
	ReEvaluate              bool   // re-run the cross-check after a verdict is ready
	ReplyDelay              time.Duration
	VerdictDelay            time.Duration
}

// Message is one chat entry produced by an event.
type Message struct {
	Role     string
	Kind     string
	Content  string
	Filename string
}

// EventResult reports what a single event did: the messages to append
// (user first, then assistant replies, in order), input-clearing flags
// for the presentation layer, and the verdict outcome when the
// cross-check fired. The session itself is mutated in place.
type EventResult struct {
	Messages    []Message
	ClearText   bool
	ClearUpload bool

	VerdictComputed bool
	Verdict         verdict.Verdict
	Metrics         metrics.MetricSet
}

func (r *EventResult) appendUser(kind, content, filename string) {
	r.Messages = append(r.Messages, Message{
		Role:     constant.ChatMessageRoleUser,
		Kind:     kind,
		Content:  content,
		Filename: filename,
	})
}

func (r *EventResult) appendAssistant(content string) {
	r.Messages = append(r.Messages, Message{
		Role:    constant.ChatMessageRoleAssistant,
		Kind:    constant.ChatMessageKindText,
		Content: content,
	})
}

// Engine is the conversational session state machine. One event is
// processed to completion at a time per session; callers hold the
// per-session lock for the duration of a Handle call.
type Engine struct {
	cfg       Config
	store     storage.Storage
	extractor taskdesc.Extractor
	reader    *metrics.Reader
	logger    *log.Logger
}

func NewEngine(cfg Config, st storage.Storage, extractor taskdesc.Extractor, logger *log.Logger) *Engine {
	return &Engine{
		cfg:       cfg,
		store:     st,
		extractor: extractor,
		reader:    metrics.NewReader(),
		logger:    logger,
	}
}

// NewSession seeds the in-memory state for a fresh assessment session.
func (e *Engine) NewSession(id, userID string) *store.Session {
	return &store.Session{
		ID:          id,
		UserID:      userID,
		VideoSource: e.cfg.DefaultVideoSource,
	}
}

// HandleText processes a message-send event. Empty or whitespace-only
// text is a no-op: nothing is appended and the input field is not
// cleared. The engine never fails an event; failures surface as
// assistant messages and the session snapshot stays valid.
func (e *Engine) HandleText(ctx context.Context, sess *store.Session, text string) *EventResult {
	res := &EventResult{}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return res
	}

	res.appendUser(constant.ChatMessageKindText, trimmed, "")
	res.ClearText = true
	sess.LastQuery = trimmed

	lower := strings.ToLower(trimmed)
	for _, rl := range e.rules() {
		if rl.match(lower) {
			e.logger.Printf("[ENGINE] session=%s rule=%s", sess.ID, rl.name)
			rl.handle(ctx, e, sess, trimmed, res)
			return res
		}
	}

	// Unreachable: the filler rule matches everything.
	return res
}

// HandleUpload processes a file-upload event. Upload widget inputs are
// cleared regardless of outcome.
func (e *Engine) HandleUpload(ctx context.Context, sess *store.Session, filename string, data []byte) *EventResult {
	res := &EventResult{ClearUpload: true}
	res.appendUser(constant.ChatMessageKindFile, filename, filename)

	if !scan.IsAccepted(filename) {
		res.appendAssistant(fmt.Sprintf(constant.ReplyUploadRejectedFmt, scan.ExtensionList()))
		return res
	}

	key := e.cfg.ScanKey + strings.ToLower(path.Ext(filename))
	storedPath, err := e.store.Write(key, data)
	if err != nil {
		e.logger.Printf("[ENGINE] session=%s scan persist failed: %v", sess.ID, err)
		res.appendAssistant(fmt.Sprintf(constant.ReplyUploadFailedFmt, err))
		return res
	}

	sess.HasScan = true
	sess.ScanPath = storedPath

	e.pause(ctx, e.cfg.ReplyDelay)
	res.appendAssistant(fmt.Sprintf(constant.ReplyUploadAckFmt, filename))

	e.crossCheck(ctx, sess, res)
	return res
}

// crossCheck runs the verdict procedure once both the scan and the task
// description are present. A ready verdict is never recomputed unless
// re-evaluation is explicitly enabled; readiness itself never resets.
func (e *Engine) crossCheck(ctx context.Context, sess *store.Session, res *EventResult) {
	if !sess.HasScan || !sess.HasTask {
		return
	}
	if sess.VerdictReady && !e.cfg.ReEvaluate {
		return
	}

	set := e.reader.Read(e.cfg.ScoreFilePath, e.cfg.SubjectIndex)
	v := verdict.Evaluate(set)

	sess.VideoVisible = true
	sess.VideoSource = e.cfg.RecommendedMotionSource
	sess.ImageVisible = true
	sess.BigImageSource = e.cfg.BigImageSource
	sess.SmallImageSource = e.cfg.SmallImageSource

	e.pause(ctx, e.cfg.VerdictDelay)

	switch v {
	case verdict.VerdictIndeterminate:
		res.appendAssistant(constant.ReplyMetricsIncomplete)
	case verdict.VerdictSafe:
		res.appendAssistant(constant.ReplyPostureGuidance)
		res.appendAssistant(constant.ReplyVerdictSafe)
	case verdict.VerdictUnsafe:
		res.appendAssistant(constant.ReplyPostureGuidance)
		res.appendAssistant(constant.ReplyVerdictUnsafe)
	}

	sess.VerdictReady = true
	sess.Verdict = string(v)

	res.VerdictComputed = true
	res.Verdict = v
	res.Metrics = set

	e.logger.Printf("[ENGINE] session=%s verdict=%s", sess.ID, v)
}

// pause waits for the simulated processing delay while honoring
// cancellation. Only this session's handler blocks.
func (e *Engine) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
