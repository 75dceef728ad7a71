package model

type Cabinet struct {
	Base
	Number string `db:"number" json:"number"`
}

type CreateCabinetRequest struct {
	Number string `json:"number" binding:"required,min=1,max=10"`
}

type UpdateCabinetRequest struct {
	Number string `json:"number" binding:"required,min=1,max=10"`
}
