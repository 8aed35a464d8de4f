package entity

type AnalyzeProfileRequest struct {
	ProfileText string `json:"profile_text"`
}

type CreateRoadmapRequest struct {
	Analysis    string   `json:"analysis"`
	Suggestions []string `json:"suggestions"`
}

type RecommendResourcesRequest struct {
	Milestone string `json:"milestone"`
}

type ChatTurnDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TroubleshootRequest struct {
	SessionID string        `json:"session_id,omitempty"`
	Milestone string        `json:"milestone"`
	History   []ChatTurnDTO `json:"history"`
	Question  string        `json:"question"`
}

type TroubleshootResponse struct {
	SessionID string        `json:"session_id"`
	State     string        `json:"state"`
	Reply     ChatTurnDTO   `json:"reply"`
	History   []ChatTurnDTO `json:"history"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
	Rule    string `json:"rule,omitempty"`
}
