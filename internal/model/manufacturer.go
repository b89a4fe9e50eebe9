package model

type Manufacturer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (Manufacturer) TableName() string { return "manufacturers" }
