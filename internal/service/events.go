package service

import (
	"encoding/json"

	"softdesk/internal/model"
)

// newEvent 组装 outbox 记录，payload 序列化失败时退化为空对象
func newEvent(eventType string, projectID, actorID uint64, payload any) *model.ActivityOutbox {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("{}")
	}
	return &model.ActivityOutbox{
		EventType: eventType,
		ProjectID: projectID,
		ActorID:   actorID,
		Payload:   string(raw),
	}
}
