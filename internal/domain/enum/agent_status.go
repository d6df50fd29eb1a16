package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AgentStatus represents whether a sales agent may place orders
type AgentStatus string

const (
	AgentStatusActive   AgentStatus = "active"
	AgentStatusInactive AgentStatus = "inactive"
)

func (s AgentStatus) String() string {
	return string(s)
}

func (s AgentStatus) IsValid() bool {
	return s == AgentStatusActive || s == AgentStatusInactive
}

func (s AgentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *AgentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = AgentStatus(str)
	return nil
}

func (s AgentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *AgentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = AgentStatusActive
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = AgentStatus(v)
	case []byte:
		*s = AgentStatus(string(v))
	}
	return nil
}
