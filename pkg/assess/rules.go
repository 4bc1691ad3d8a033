package assess

import (
	"context"
	"fmt"
	"path"
	"strings"

	"ergo-assist-be/internal/constant"
	"ergo-assist-be/pkg/store"
)

// Command prefixes and phrase sets - ORDER MATTERS, first match wins.
const (
	prefixVideo = "/video"
	prefixTask  = "task description:"
)

var hideVideoPhrases = []string{
	"hide video",
	"stop video",
	"close video",
}

var lowerWeightPhrases = []string{
	"lower the weight",
	"lower weight",
	"reduce the weight",
}

var increaseHeightPhrases = []string{
	"increase the height",
	"increase height",
	"raise the height",
}

type ruleHandler func(ctx context.Context, e *Engine, sess *store.Session, text string, res *EventResult)

type rule struct {
	name   string
	match  func(lower string) bool
	handle ruleHandler
}

// rules returns the ordered dispatch table for text events. The table
// deliberately stays a flat substring/prefix list: free text is not
// semantically parsed.
func (e *Engine) rules() []rule {
	return []rule{
		{
			name:   "play_video",
			match:  matchesVideoCommand,
			handle: handlePlayVideo,
		},
		{
			name:   "hide_video",
			match:  func(s string) bool { return containsAny(s, hideVideoPhrases) },
			handle: handleHideVideo,
		},
		{
			name:   "task_description",
			match:  func(s string) bool { return strings.HasPrefix(s, prefixTask) },
			handle: handleTaskDescription,
		},
		{
			name:   "lower_weight",
			match:  func(s string) bool { return containsAny(s, lowerWeightPhrases) },
			handle: handleLowerWeight,
		},
		{
			name:   "increase_height",
			match:  func(s string) bool { return containsAny(s, increaseHeightPhrases) },
			handle: handleIncreaseHeight,
		},
		{
			name: "demo_trigger",
			match: func(s string) bool {
				return e.cfg.DemoTrigger != "" && strings.Contains(s, e.cfg.DemoTrigger)
			},
			handle: handleDemoTrigger,
		},
		{
			name:   "filler",
			match:  func(string) bool { return true },
			handle: handleFiller,
		},
	}
}

// matchesVideoCommand requires the command token to stand alone:
// "/videofoo" is free text, not a playback directive.
func matchesVideoCommand(s string) bool {
	if !strings.HasPrefix(s, prefixVideo) {
		return false
	}
	rest := s[len(prefixVideo):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func handlePlayVideo(_ context.Context, e *Engine, sess *store.Session, text string, res *EventResult) {
	fragment := strings.TrimSpace(text[len(prefixVideo):])
	src := e.resolveVideoSource(fragment)

	sess.VideoVisible = true
	sess.VideoSource = src
	res.appendAssistant(fmt.Sprintf("Playing: %s", src))
}

func handleHideVideo(_ context.Context, _ *Engine, sess *store.Session, _ string, res *EventResult) {
	// Source stays put so "play" resumes the same clip.
	sess.VideoVisible = false
	res.appendAssistant(constant.ReplyVideoHidden)
}

func handleTaskDescription(ctx context.Context, e *Engine, sess *store.Session, text string, res *EventResult) {
	record, recordPath, err := e.extractor.Extract(text)
	if err != nil {
		res.appendAssistant(fmt.Sprintf(constant.ReplyTaskExtractFailedFmt, err))
		return
	}

	sess.HasTask = true
	sess.TaskRecordPath = recordPath

	e.pause(ctx, e.cfg.ReplyDelay)
	res.appendAssistant(fmt.Sprintf(constant.ReplyTaskRecordedFmt, record.Summary(), recordPath))

	e.crossCheck(ctx, sess, res)
}

func handleLowerWeight(_ context.Context, _ *Engine, _ *store.Session, _ string, res *EventResult) {
	res.appendAssistant(constant.ReplyLowerWeightWhatIf)
}

func handleIncreaseHeight(_ context.Context, _ *Engine, _ *store.Session, _ string, res *EventResult) {
	res.appendAssistant(constant.ReplyIncreaseHeightWhatIf)
}

func handleDemoTrigger(_ context.Context, _ *Engine, _ *store.Session, _ string, res *EventResult) {
	res.appendAssistant(constant.ReplyDemoTrigger)
}

func handleFiller(ctx context.Context, e *Engine, _ *store.Session, _ string, res *EventResult) {
	e.pause(ctx, e.cfg.ReplyDelay)
	res.appendAssistant(constant.ReplyFiller)
}

// resolveVideoSource maps a "/video" fragment to a playable source:
// empty fragment → configured default; absolute asset path → verbatim;
// relative asset path → normalized to absolute; bare filename →
// resolved under the motion asset base directory.
func (e *Engine) resolveVideoSource(fragment string) string {
	if fragment == "" {
		return e.cfg.DefaultVideoSource
	}
	if strings.HasPrefix(fragment, "http://") || strings.HasPrefix(fragment, "https://") {
		return fragment
	}
	if strings.HasPrefix(fragment, "/") {
		return fragment
	}
	if strings.Contains(fragment, "/") {
		return "/" + fragment
	}
	return path.Join(e.cfg.MotionAssetBaseDir, fragment)
}
