package catalog

type CreateSpaceRequest struct {
	Title       string   `json:"title" binding:"required" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Street      string   `json:"street" binding:"required" validate:"required,max=200"`
	City        string   `json:"city" binding:"required" validate:"required,max=100"`
	Capacity    int      `json:"capacity" binding:"required,gt=0" validate:"required,gt=0,lte=1000"`
	PricePerDay float64  `json:"price_per_day" binding:"required,gt=0" validate:"required,gt=0"`
	PhotoURLs   []string `json:"photo_urls" validate:"max=10,dive,required,max=500"`
}

type CreateAreaRequest struct {
	Name        string  `json:"name" binding:"required" validate:"required,max=200"`
	AreaType    string  `json:"area_type" binding:"required,oneof=shared_desks private_office individual_desk" validate:"required"`
	Capacity    int     `json:"capacity" binding:"required,gt=0" validate:"required,gt=0,lte=500"`
	PricePerDay float64 `json:"price_per_day" binding:"required,gt=0" validate:"required,gt=0"`
}
