package enums

// WorkflowState is the resolution workflow's externally visible state.
type WorkflowState string

const (
	WorkflowStateIdle      WorkflowState = "idle"
	WorkflowStateResolving WorkflowState = "resolving"
)

func (s WorkflowState) Valid() bool {
	return s == WorkflowStateIdle || s == WorkflowStateResolving
}
