package domain

// ProgressStatus is the shared per-operation progress marker, totally
// ordered along the pipeline. A freshly inserted operation carries
// StatusNotStarted; the first content write establishes
// StatusTranslatorInProgress. StatusProofReaderDone is terminal.
type ProgressStatus int

const (
	StatusNotStarted            ProgressStatus = 0
	StatusTranslatorInProgress  ProgressStatus = 1
	StatusTranslatorDone        ProgressStatus = 2
	StatusEditorInProgress      ProgressStatus = 3
	StatusEditorDone            ProgressStatus = 4
	StatusProofReaderInProgress ProgressStatus = 5
	StatusProofReaderDone       ProgressStatus = 6
)

func (s ProgressStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "NOT_STARTED"
	case StatusTranslatorInProgress:
		return "TRANSLATOR_IN_PROGRESS"
	case StatusTranslatorDone:
		return "TRANSLATOR_DONE"
	case StatusEditorInProgress:
		return "EDITOR_IN_PROGRESS"
	case StatusEditorDone:
		return "EDITOR_DONE"
	case StatusProofReaderInProgress:
		return "PROOF_READER_IN_PROGRESS"
	case StatusProofReaderDone:
		return "PROOF_READER_DONE"
	}
	return "UNKNOWN"
}

func (s ProgressStatus) IsValid() bool {
	return s >= StatusNotStarted && s <= StatusProofReaderDone
}

// AtLeast reports whether s has reached other under the pipeline order.
func (s ProgressStatus) AtLeast(other ProgressStatus) bool {
	return s >= other
}

// Terminal reports whether the operation has completed its final stage.
func (s ProgressStatus) Terminal() bool {
	return s == StatusProofReaderDone
}
