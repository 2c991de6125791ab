package domain

// Role identifies which of the three pipeline stages an actor works on.
// Each role owns exactly one content field on a TranslationOperation.
type Role string

const (
	RoleTranslator  Role = "TRANSLATOR"
	RoleEditor      Role = "EDITOR"
	RoleProofReader Role = "PROOF_READER"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleTranslator, RoleEditor, RoleProofReader:
		return true
	}
	return false
}

// InProgress returns the progress status a content write by this role
// establishes.
func (r Role) InProgress() ProgressStatus {
	switch r {
	case RoleTranslator:
		return StatusTranslatorInProgress
	case RoleEditor:
		return StatusEditorInProgress
	case RoleProofReader:
		return StatusProofReaderInProgress
	}
	return StatusNotStarted
}

// Done returns the progress status a finished stage of this role
// establishes.
func (r Role) Done() ProgressStatus {
	switch r {
	case RoleTranslator:
		return StatusTranslatorDone
	case RoleEditor:
		return StatusEditorDone
	case RoleProofReader:
		return StatusProofReaderDone
	}
	return StatusNotStarted
}

// Previous returns the role whose output this role reviews, or false for
// the translator, who works from the source document.
func (r Role) Previous() (Role, bool) {
	switch r {
	case RoleEditor:
		return RoleTranslator, true
	case RoleProofReader:
		return RoleEditor, true
	}
	return "", false
}
