package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PayoutMethod represents how a commission payout is settled
type PayoutMethod string

const (
	PayoutMethodUPI  PayoutMethod = "upi"
	PayoutMethodBank PayoutMethod = "bank"
)

func (m PayoutMethod) String() string {
	return string(m)
}

func (m PayoutMethod) IsValid() bool {
	return m == PayoutMethodUPI || m == PayoutMethodBank
}

func (m PayoutMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PayoutMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PayoutMethod(str)
	return nil
}

func (m PayoutMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PayoutMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PayoutMethodUPI
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PayoutMethod(v)
	case []byte:
		*m = PayoutMethod(string(v))
	}
	return nil
}
