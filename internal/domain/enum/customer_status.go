package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CustomerStatus represents the state of a customer's public portfolio
type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "active"
	CustomerStatusPending   CustomerStatus = "pending"
	CustomerStatusSuspended CustomerStatus = "suspended"
)

func (s CustomerStatus) String() string {
	return string(s)
}

func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusPending, CustomerStatusSuspended:
		return true
	}
	return false
}

func (s CustomerStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *CustomerStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = CustomerStatus(str)
	return nil
}

func (s CustomerStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *CustomerStatus) Scan(value interface{}) error {
	if value == nil {
		*s = CustomerStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = CustomerStatus(v)
	case []byte:
		*s = CustomerStatus(string(v))
	}
	return nil
}
