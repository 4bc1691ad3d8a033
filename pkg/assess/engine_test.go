package assess

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ergo-assist-be/internal/constant"
	"ergo-assist-be/pkg/storage"
	"ergo-assist-be/pkg/store"
	"ergo-assist-be/pkg/taskdesc"
	"ergo-assist-be/pkg/verdict"
)

const (
	safeScores        = `{"LI": 0.8, "RWL": 11.4, "SSPP_L4L5": 2100}`
	unsafeScores      = `{"LI": 1.6, "RWL": 8.1, "SSPP_L4L5": 4200}`
	incompleteScores  = `{"RWL": 11.4}`
	testDefaultVideo  = "/uploads/motions/default.mp4"
	testMotionBaseDir = "/uploads/motions"
	testRecommended   = "/uploads/motions/recommended.mp4"
	testBigImage      = "/uploads/images/verdict_big.png"
	testSmallImage    = "/uploads/images/verdict_small.png"
)

func newTestEngine(t *testing.T, scores string, reEvaluate bool) (*Engine, *store.Session) {
	t.Helper()

	dir := t.TempDir()
	scorePath := filepath.Join(dir, "scores.json")
	if scores != "" {
		if err := os.WriteFile(scorePath, []byte(scores), 0644); err != nil {
			t.Fatalf("write score file: %v", err)
		}
	}

	st, err := storage.NewLocalStorage(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	e := NewEngine(Config{
		DefaultVideoSource:      testDefaultVideo,
		MotionAssetBaseDir:      testMotionBaseDir,
		RecommendedMotionSource: testRecommended,
		BigImageSource:          testBigImage,
		SmallImageSource:        testSmallImage,
		ScoreFilePath:           scorePath,
		SubjectIndex:            0,
		ScanKey:                 "workspace-scan",
		DemoTrigger:             "key",
		ReEvaluate:              reEvaluate,
	}, st, taskdesc.NewStubExtractor(st, "task-record.json"), log.New(io.Discard, "", 0))

	return e, e.NewSession("sess-1", "user-1")
}

func lastAssistant(t *testing.T, res *EventResult) string {
	t.Helper()
	for i := len(res.Messages) - 1; i >= 0; i-- {
		if res.Messages[i].Role == constant.ChatMessageRoleAssistant {
			return res.Messages[i].Content
		}
	}
	t.Fatal("no assistant message in result")
	return ""
}

func TestHandleTextEmptyIsNoOp(t *testing.T) {
	e, sess := newTestEngine(t, safeScores, false)

	for _, text := range []string{"", "   ", "\n\t"} {
		res := e.HandleText(context.Background(), sess, text)
		if len(res.Messages) != 0 {
			t.Errorf("HandleText(%q) appended %d messages, want 0", text, len(res.Messages))
		}
		if res.ClearText {
			t.Errorf("HandleText(%q) cleared the input, want untouched", text)
		}
	}
}

func TestHandleTextFillerFallback(t *testing.T) {
	e, sess := newTestEngine(t, safeScores, false)

	res := e.HandleText(context.Background(), sess, "tell me a joke")
	if got := lastAssistant(t, res); got != constant.ReplyFiller {
		t.Errorf("fallback reply = %q, want %q", got, constant.ReplyFiller)
	}
	if !res.ClearText {
		t.Error("text input not cleared")
	}
	if sess.LastQuery != "tell me a joke" {
		t.Errorf("LastQuery = %q", sess.LastQuery)
	}
}

func TestPlayVideoResolvesSource(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no fragment uses default", "/video", testDefaultVideo},
		{"bare filename under motion dir", "/video myclip.mp4", testMotionBaseDir + "/myclip.mp4"},
		{"absolute path verbatim", "/video /uploads/other/clip.mp4", "/uploads/other/clip.mp4"},
		{"relative path normalized", "/video assets/clip.mp4", "/assets/clip.mp4"},
		{"http url verbatim", "/video http://cdn.example.com/clip.mp4", "http://cdn.example.com/clip.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, sess := newTestEngine(t, safeScores, false)
			res := e.HandleText(context.Background(), sess, tt.text)

			if !sess.VideoVisible {
				t.Error("video not visible after /video")
			}
			if sess.VideoSource != tt.want {
				t.Errorf("VideoSource = %q, want %q", sess.VideoSource, tt.want)
			}
			if got := lastAssistant(t, res); got != "Playing: "+tt.want {
				t.Errorf("reply = %q", got)
			}
		})
	}
}

func TestVideoCommandRequiresTokenBoundary(t *testing.T) {
	e, sess := newTestEngine(t, safeScores, false)

	res := e.HandleText(context.Background(), sess, "/videofoo.mp4")
	if sess.VideoVisible {
		t.Error("glued command token treated as playback directive")
	}
	if sess.VideoSource != testDefaultVideo {
		t.Errorf("VideoSource = %q, want default untouched", sess.VideoSource)
	}
	if got := lastAssistant(t, res); got != constant.ReplyFiller {
		t.Errorf("reply = %q, want filler", got)
	}
}

func TestHideVideoPreservesSource(t *testing.T) {
	e, sess := newTestEngine(t, safeScores, false)

	e.HandleText(context.Background(), sess, "/video myclip.mp4")
	src := sess.VideoSource

	res := e.HandleText(context.Background(), sess, "please hide video now")
	if sess.VideoVisible {
		t.Error("video still visible")
	}
	if sess.VideoSource != src {
		t.Errorf("VideoSource changed to %q, want %q preserved", sess.VideoSource, src)
	}
	if got := lastAssistant(t, res); got != constant.ReplyVideoHidden {
		t.Errorf("reply = %q", got)
	}
}

func TestUploadScanAccepted(t *testing.T) {
	e, sess := newTestEngine(t, safeScores, false)

	res := e.HandleUpload(context.Background(), sess, "scan.glb", []byte("mesh"))
	if !res.ClearUpload {
		t.Error("upload input not cleared")
	}
	if !sess.HasScan {
		t.Error("HasScan not set")
	}
	if sess.ScanPath == "" {
		t.Error("ScanPath empty")
	}
	if res.VerdictComputed {
		t.Error("verdict computed without a task description")
	}
	if got := lastAssistant(t, res); !strings.Contains(got, "scan.glb") {
		t.Errorf("ack reply = %q, want filename echoed", got)
	}
}

func TestUploadRejectedLeavesStateUntouched(t *testing.T) {
	e, sess := newTestEngine(t, safeScores, false)

	res := e.HandleUpload(context.Background(), sess, "document.pdf", []byte("%PDF"))
	if !res.ClearUpload {
		t.Error("upload input must clear even on rejection")
	}
	if sess.HasScan {
		t.Error("HasScan set for rejected file")
	}
	got := lastAssistant(t, res)
	if !strings.Contains(got, ".glb") || !strings.Contains(got, ".obj") {
		t.Errorf("rejection reply = %q, want accepted format list", got)
	}
}

func TestCrossCheckSafeVerdict(t *testing.T) {
	e, sess := newTestEngine(t, safeScores, false)
	ctx := context.Background()

	e.HandleUpload(ctx, sess, "scan.glb", []byte("mesh"))
	res := e.HandleText(ctx, sess, "task description: lift a 10kg box")

	if !res.VerdictComputed {
		t.Fatal("cross-check did not fire with scan + task present")
	}
	if res.Verdict != verdict.VerdictSafe {
		t.Errorf("verdict = %v, want safe", res.Verdict)
	}
	if !sess.VerdictReady || sess.Verdict != string(verdict.VerdictSafe) {
		t.Errorf("session verdict state = ready:%v %q", sess.VerdictReady, sess.Verdict)
	}
	if !sess.VideoVisible || sess.VideoSource != testRecommended {
		t.Errorf("recommended motion not shown: visible=%v src=%q", sess.VideoVisible, sess.VideoSource)
	}
	if !sess.ImageVisible || sess.BigImageSource != testBigImage || sess.SmallImageSource != testSmallImage {
		t.Errorf("verdict imagery not shown: visible=%v big=%q small=%q",
			sess.ImageVisible, sess.BigImageSource, sess.SmallImageSource)
	}
	if got := lastAssistant(t, res); got != constant.ReplyVerdictSafe {
		t.Errorf("final reply = %q", got)
	}
}

func TestCrossCheckUnsafeVerdict(t *testing.T) {
	e, sess := newTestEngine(t, unsafeScores, false)
	ctx := context.Background()

	e.HandleText(ctx, sess, "task description: lift a heavy crate")
	res := e.HandleUpload(ctx, sess, "scan.obj", []byte("mesh"))

	if !res.VerdictComputed {
		t.Fatal("cross-check did not fire on the completing upload")
	}
	if res.Verdict != verdict.VerdictUnsafe {
		t.Errorf("verdict = %v, want unsafe", res.Verdict)
	}
	if got := lastAssistant(t, res); got != constant.ReplyVerdictUnsafe {
		t.Errorf("final reply = %q", got)
	}
}

func TestCrossCheckIndeterminateMetrics(t *testing.T) {
	e, sess := newTestEngine(t, incompleteScores, false)
	ctx := context.Background()

	e.HandleUpload(ctx, sess, "scan.glb", []byte("mesh"))
	res := e.HandleText(ctx, sess, "task description: lift a box")

	if !res.VerdictComputed {
		t.Fatal("cross-check did not fire")
	}
	if res.Verdict != verdict.VerdictIndeterminate {
		t.Errorf("verdict = %v, want indeterminate", res.Verdict)
	}
	if got := lastAssistant(t, res); got != constant.ReplyMetricsIncomplete {
		t.Errorf("reply = %q", got)
	}
}

func TestVerdictNotRecomputedByDefault(t *testing.T) {
	e, sess := newTestEngine(t, safeScores, false)
	ctx := context.Background()

	e.HandleUpload(ctx, sess, "scan.glb", []byte("mesh"))
	e.HandleText(ctx, sess, "task description: lift a box")

	res := e.HandleUpload(ctx, sess, "scan2.glb", []byte("mesh-v2"))
	if res.VerdictComputed {
		t.Error("verdict recomputed with re-evaluation disabled")
	}
	if !sess.VerdictReady {
		t.Error("VerdictReady reset")
	}
}

func TestVerdictRecomputedWhenReEvaluateEnabled(t *testing.T) {
	e, sess := newTestEngine(t, safeScores, true)
	ctx := context.Background()

	e.HandleUpload(ctx, sess, "scan.glb", []byte("mesh"))
	e.HandleText(ctx, sess, "task description: lift a box")

	res := e.HandleUpload(ctx, sess, "scan2.glb", []byte("mesh-v2"))
	if !res.VerdictComputed {
		t.Error("verdict not recomputed with re-evaluation enabled")
	}
}

func TestWhatIfAndDemoReplies(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"lower weight", "what if I lower the weight?", constant.ReplyLowerWeightWhatIf},
		{"increase height", "could you increase the height", constant.ReplyIncreaseHeightWhatIf},
		{"demo trigger", "here is my api key for the demo", constant.ReplyDemoTrigger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, sess := newTestEngine(t, safeScores, false)
			res := e.HandleText(context.Background(), sess, tt.text)
			if got := lastAssistant(t, res); got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaskDescriptionRecordsAndEchoes(t *testing.T) {
	e, sess := newTestEngine(t, safeScores, false)

	res := e.HandleText(context.Background(), sess, "task description: lift a 10kg box")
	if !sess.HasTask {
		t.Error("HasTask not set")
	}
	if sess.TaskRecordPath == "" {
		t.Error("TaskRecordPath empty")
	}

	var echoed bool
	for _, m := range res.Messages {
		if m.Role == constant.ChatMessageRoleAssistant && strings.HasPrefix(m.Content, "Task recorded:") {
			echoed = true
		}
	}
	if !echoed {
		t.Errorf("no task echo in %v", res.Messages)
	}
}

func TestUploadKeyIsFixedPerExtension(t *testing.T) {
	e, sess := newTestEngine(t, safeScores, false)
	ctx := context.Background()

	e.HandleUpload(ctx, sess, "first.glb", []byte("v1"))
	firstPath := sess.ScanPath
	e.HandleUpload(ctx, sess, "second.glb", []byte("v2"))

	if sess.ScanPath != firstPath {
		t.Errorf("same-extension upload moved the scan: %q -> %q", firstPath, sess.ScanPath)
	}
	data, err := os.ReadFile(sess.ScanPath)
	if err != nil {
		t.Fatalf("read scan: %v", err)
	}
	if string(data) != "v2" {
		t.Errorf("scan content = %q, want latest upload", data)
	}
}
