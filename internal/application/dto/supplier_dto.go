package dto

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name          string `json:"name"`
	PrimaryCode   string `json:"primary_code"`
	ContactPerson string `json:"contact_person,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
}
