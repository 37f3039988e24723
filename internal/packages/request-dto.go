package packages

type CreatePackageRequest struct {
	Name            string   `json:"name" binding:"required,min=2,max=150"`
	Description     string   `json:"description" binding:"max=1000"`
	PackageType     string   `json:"package_type" binding:"required,oneof=bridal_large bridal_small bride_only regular classes"`
	BridePrice      *float64 `json:"bride_price" binding:"omitempty,gte=0"`
	MaidPrice       *float64 `json:"maid_price" binding:"omitempty,gte=0"`
	MotherPrice     *float64 `json:"mother_price" binding:"omitempty,gte=0"`
	OtherPrice      *float64 `json:"other_price" binding:"omitempty,gte=0"`
	MinMaids        *int     `json:"min_maids" binding:"omitempty,gte=0"`
	MaxMaids        *int     `json:"max_maids" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0"`
}

type UpdatePackageRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=2,max=150"`
	Description     *string  `json:"description" binding:"omitempty,max=1000"`
	PackageType     *string  `json:"package_type" binding:"omitempty,oneof=bridal_large bridal_small bride_only regular classes"`
	BridePrice      *float64 `json:"bride_price" binding:"omitempty,gte=0"`
	MaidPrice       *float64 `json:"maid_price" binding:"omitempty,gte=0"`
	MotherPrice     *float64 `json:"mother_price" binding:"omitempty,gte=0"`
	OtherPrice      *float64 `json:"other_price" binding:"omitempty,gte=0"`
	MinMaids        *int     `json:"min_maids" binding:"omitempty,gte=0"`
	MaxMaids        *int     `json:"max_maids" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0"`
	IsActive        *bool    `json:"is_active"`
}
