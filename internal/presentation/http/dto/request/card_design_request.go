package request

// CreateCardDesignRequest represents a new catalog entry, MSP in rupees
type CreateCardDesignRequest struct {
	Name    string  `json:"name" binding:"required"`
	BaseMSP float64 `json:"base_msp" binding:"required,gt=0"`
}

// UpdateCardDesignRequest represents a partial catalog update
type UpdateCardDesignRequest struct {
	Name    *string  `json:"name"`
	BaseMSP *float64 `json:"base_msp"`
	Active  *bool    `json:"active"`
}
