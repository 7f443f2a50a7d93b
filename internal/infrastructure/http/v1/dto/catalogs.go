package dto

// --- Request DTOs ---

// CreateClientRequest for creating clients. Type defaults to regular.
type CreateClientRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type,omitempty" binding:"omitempty,oneof=regular walkin"`
}

// CreateSupplierRequest for creating suppliers.
type CreateSupplierRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreatePhoneModelRequest for creating phone models.
type CreatePhoneModelRequest struct {
	Name string `json:"name" binding:"required"`
}
