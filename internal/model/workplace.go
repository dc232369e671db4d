package model

// Workplace точка, на которую назначаются выходы. Заполняется при развёртывании
type Workplace struct {
	ID      string `json:"id" yaml:"id" validate:"required"`
	Code    string `json:"code" yaml:"code" validate:"required"`
	Address string `json:"address" yaml:"address" validate:"required"`
}
