package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// TaskSyncMessage asks the worker to copy one stored task to the sheet.
// It carries only the row id; the worker loads the record from SQLite.
type TaskSyncMessage struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTaskSyncMessage(id string) *TaskSyncMessage {
	return &TaskSyncMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *TaskSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TaskSyncMessageFromJSON decodes a message body. A message without an id
// cannot be processed and is rejected.
func TaskSyncMessageFromJSON(data []byte) (*TaskSyncMessage, error) {
	var msg TaskSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("task sync message without id")
	}
	return &msg, nil
}
