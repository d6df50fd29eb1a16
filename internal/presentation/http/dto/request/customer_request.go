package request

// UpdateCustomerRequest represents a partial customer portfolio update
type UpdateCustomerRequest struct {
	Name      *string `json:"name"`
	Company   *string `json:"company"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Website   *string `json:"website"`
	Instagram *string `json:"instagram"`
	LinkedIn  *string `json:"linkedin"`
	Status    *string `json:"status"`
}
