package model

type Specialization struct {
	Base
	Name string `db:"name" json:"name"`
}

type CreateSpecializationRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}
