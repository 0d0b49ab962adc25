package models

// Requests for the recommendation HTTP endpoints. Defined in domain for
// consistency and reuse.

type RecommendationsRequest struct {
	Class string `query:"class" json:"class" validate:"required,oneof=crypto stocks bonds"`
	Limit int    `query:"limit" json:"limit" default:"3" validate:"gte=1,lte=3"`
}

type DigestRequest struct {
	Classes []string `json:"classes" validate:"omitempty,dive,oneof=crypto stocks bonds"`
}
