package dto

import (
	"frontdesk/internal/domains/activity/model"
	"frontdesk/shared/constant"
	"time"
)

type LogResponse struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

func (r *LogResponse) FromModel(model model.Log) {
	r.ID = model.ID
	r.Action = model.Action
	r.Details = model.Details
	r.User = model.User
	r.Timestamp = model.Timestamp
}

// When renders the timestamp the way the log tables show it.
func (r LogResponse) When() string {
	return r.Timestamp.Format(constant.DateTimeDisplayFormat)
}

func FromModels(models []model.Log) []LogResponse {
	res := make([]LogResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
