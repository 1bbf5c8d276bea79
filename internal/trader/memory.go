package trader

import (
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Memory is what the agent carries between ticks inside the opaque trader-state string.
type Memory struct {
	RunID string `json:"runId"`
	Ticks int    `json:"ticks"`
}

// LoadMemory decodes the incoming trader-state string. An empty or foreign string starts a new run.
func LoadMemory(raw string) Memory {
	var m Memory
	if raw != "" {
		if err := sonic.ConfigDefault.UnmarshalFromString(raw, &m); err != nil {
			m = Memory{}
		}
	}
	if m.RunID == "" {
		m = Memory{RunID: uuid.NewString()}
	}
	return m
}

// Encode returns the outgoing trader-state string.
func (m Memory) Encode() string {
	out, err := sonic.ConfigDefault.MarshalToString(m)
	if err != nil {
		return ""
	}
	return out
}
