package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ExpenseCategory represents the bucket an expense is reported under
type ExpenseCategory string

const (
	ExpenseCategoryPrinting        ExpenseCategory = "printing"
	ExpenseCategoryShipping        ExpenseCategory = "shipping"
	ExpenseCategoryAgentCommission ExpenseCategory = "agent_commission"
	ExpenseCategoryMarketing       ExpenseCategory = "marketing"
	ExpenseCategoryOther           ExpenseCategory = "other"
)

// ExpenseCategories returns every reporting category in display order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseCategoryPrinting,
		ExpenseCategoryShipping,
		ExpenseCategoryAgentCommission,
		ExpenseCategoryMarketing,
		ExpenseCategoryOther,
	}
}

func (c ExpenseCategory) String() string {
	return string(c)
}

func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryPrinting, ExpenseCategoryShipping, ExpenseCategoryAgentCommission,
		ExpenseCategoryMarketing, ExpenseCategoryOther:
		return true
	}
	return false
}

func (c ExpenseCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

func (c *ExpenseCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*c = ExpenseCategory(str)
	return nil
}

func (c ExpenseCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *ExpenseCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ExpenseCategoryOther
		return nil
	}
	switch v := value.(type) {
	case string:
		*c = ExpenseCategory(v)
	case []byte:
		*c = ExpenseCategory(string(v))
	}
	return nil
}
