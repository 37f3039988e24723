package locations

type CreateLocationRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=150"`
	TransportCost float64 `json:"transport_cost" binding:"gte=0"`
	IsFree        bool    `json:"is_free"`
}

type UpdateLocationRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=2,max=150"`
	TransportCost *float64 `json:"transport_cost" binding:"omitempty,gte=0"`
	IsFree        *bool    `json:"is_free"`
	IsActive      *bool    `json:"is_active"`
}
