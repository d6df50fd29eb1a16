package kanban

import (
	"strconv"
	"strings"

	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
)

// AgentFilterDirect selects only direct sales. Any other non-empty filter
// value is treated as an agent id.
const AgentFilterDirect = "direct"

// VisibleOrders reduces the full order list to the subset matching the search
// query and agent filter. Filters compose by AND; an empty value matches
// everything. The input slice is never modified.
func VisibleOrders(orders []entity.Order, search, agentFilter string) []entity.Order {
	query := strings.ToLower(strings.TrimSpace(search))

	out := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if !matchesSearch(&o, query) {
			continue
		}
		if !matchesAgent(&o, agentFilter) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// matchesSearch does a case-insensitive substring match against the customer
// name or the order number's decimal string.
func matchesSearch(o *entity.Order, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(o.CustomerName), query) {
		return true
	}
	return strings.Contains(strconv.FormatInt(o.OrderNumber, 10), query)
}

func matchesAgent(o *entity.Order, filter string) bool {
	switch filter {
	case "":
		return true
	case AgentFilterDirect:
		return o.IsDirectSale()
	default:
		return o.AgentID != nil && o.AgentID.String() == filter
	}
}
