package config

import (
	"fmt"
	"os"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type workplacesFile struct {
	Workplaces []model.Workplace `yaml:"workplaces" validate:"required,min=1,unique=ID,dive"`
}

// LoadWorkplaces читает справочник точек из YAML
func LoadWorkplaces(path string) ([]model.Workplace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workplaces file: %w", err)
	}
	return ParseWorkplaces(data)
}

// ParseWorkplaces разбирает и проверяет справочник точек
func ParseWorkplaces(data []byte) ([]model.Workplace, error) {
	var f workplacesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse workplaces: %w", err)
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid workplaces: %w", err)
	}
	return f.Workplaces, nil
}
