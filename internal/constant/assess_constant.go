package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	ChatMessageKindText = "text"
	ChatMessageKindFile = "file"

	// Session bootstrap
	SessionGreeting = "Hi! Upload a 3D scan of your workspace and describe the lifting task, and I'll assess whether it can be performed safely."

	// FIXED REPLIES - the assistant does not run NLU; free text is
	// matched against a small ordered rule list and everything else
	// falls through to the filler.
	ReplyFiller = "..."

	ReplyVideoHidden = "Video hidden."

	ReplyTaskExtractFailedFmt = "I couldn't record that task description: %v"
	ReplyTaskRecordedFmt      = "Task recorded: %s. Saved to %s."

	ReplyUploadAckFmt      = "Received your scan %s. I'll use it for the assessment."
	ReplyUploadFailedFmt   = "I couldn't store that file: %v"
	ReplyUploadRejectedFmt = "That file type isn't supported. Accepted scan formats: %s"

	ReplyLowerWeightWhatIf    = "Reducing the object weight lowers both the lifting index and the back compression force. Try describing the task again with a lighter load."
	ReplyIncreaseHeightWhatIf = "Raising the lift origin isn't implemented yet."

	ReplyDemoTrigger = "That looks important - I've noted it."

	// Verdict stage replies
	ReplyMetricsIncomplete = "Some ergonomic metrics are missing from the score data, so I can't give a definitive answer yet."
	ReplyPostureGuidance   = "Keep the load close to your body, bend at the knees, and avoid twisting while lifting."
	ReplyVerdictSafe       = "Based on the NIOSH lifting index and the estimated back compression force, you can safely perform the task."
	ReplyVerdictUnsafe     = "This lift exceeds safe limits. Consider reducing the weight or increasing the lift height, then ask me to re-assess."
)
