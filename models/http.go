package models

// Request/response bodies of the exposed sync API.

// MutationRequest is the UI-side request that places a domain mutation
// into the local durable queue and registers its optimistic overlay.
type MutationRequest struct {
	EntityID    string         `json:"entity_id"`
	EntityType  string         `json:"entity_type"`
	Action      QueueAction    `json:"action"`
	Payload     map[string]any `json:"payload"`
	BaseVersion int64          `json:"base_version"`
	SubmittedBy string         `json:"submitted_by,omitempty"`
	Urgent      bool           `json:"urgent,omitempty"`
}

// MutationResponse returns the queued item together with its optimistic
// update handle so the UI can track both.
type MutationResponse struct {
	Item       QueueItem        `json:"item"`
	Optimistic OptimisticUpdate `json:"optimistic"`
}

// TriggerSyncRequest asks the scheduler for an immediate cycle.
type TriggerSyncRequest struct {
	Reason string `json:"reason"`
}

// TriggerSyncResponse reports whether the trigger was accepted.
type TriggerSyncResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// ResolveConflictRequest carries an explicit resolution decision.
// MergedData is required for the MANUAL strategy only.
type ResolveConflictRequest struct {
	Strategy      ResolutionStrategy `json:"strategy"`
	MergedData    map[string]any     `json:"merged_data,omitempty"`
	ResolverID    string             `json:"resolver_id"`
	Justification string             `json:"justification"`
}

// UpdateSettingsResponse returns the settings after partial application
// plus the individually rejected fields.
type UpdateSettingsResponse struct {
	Settings SyncSettings     `json:"settings"`
	Rejected []FieldRejection `json:"rejected,omitempty"`
}

// QueueListResponse is a filtered slice of the durable queue.
type QueueListResponse struct {
	Items  []QueueItem `json:"items"`
	Length int         `json:"length"`
}

// ConflictListResponse lists conflicts, optionally filtered by status.
type ConflictListResponse struct {
	Conflicts []SyncConflict `json:"conflicts"`
	Length    int            `json:"length"`
}

// SessionListResponse is a page of the retained session history.
type SessionListResponse struct {
	Sessions []SyncSession `json:"sessions"`
	Total    int           `json:"total"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}
