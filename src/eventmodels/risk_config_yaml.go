package eventmodels

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type UnderlyingYAML struct {
	Symbol     string  `yaml:"symbol"`
	Exchange   string  `yaml:"exchange"`
	TickSize   float64 `yaml:"tick_size"`
	MinVolume  float64 `yaml:"min_volume"`
	Multiplier float64 `yaml:"multiplier"`
}

func (u *UnderlyingYAML) ToContract() *Contract {
	return &Contract{
		Symbol:     u.Symbol,
		Exchange:   NewExchange(u.Exchange),
		Product:    ProductUnderlying,
		TickSize:   u.TickSize,
		MinVolume:  u.MinVolume,
		Multiplier: u.Multiplier,
	}
}

type ChainYAML struct {
	ChainSymbol string         `yaml:"chain_symbol"`
	Underlying  UnderlyingYAML `yaml:"underlying"`
}

type RiskConfigYAML struct {
	Portfolio         string      `yaml:"portfolio"`
	PricingModel      string      `yaml:"pricing_model"`
	InterestRate      float64     `yaml:"interest_rate"`
	AtmRefreshSeconds int         `yaml:"atm_refresh_seconds"`
	HttpPort          int         `yaml:"http_port"`
	ContractsCSV      string      `yaml:"contracts_csv"`
	Chains            []ChainYAML `yaml:"chains"`
}

func NewRiskConfigYAML(path string) (*RiskConfigYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("NewRiskConfigYAML: failed to read %s: %w", path, err)
	}

	var config RiskConfigYAML
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("NewRiskConfigYAML: failed to unmarshal %s: %w", path, err)
	}

	if config.Portfolio == "" {
		return nil, fmt.Errorf("NewRiskConfigYAML: portfolio not set")
	}

	if config.PricingModel == "" {
		return nil, fmt.Errorf("NewRiskConfigYAML: pricing_model not set")
	}

	if config.AtmRefreshSeconds <= 0 {
		config.AtmRefreshSeconds = 10
	}

	if config.HttpPort <= 0 {
		config.HttpPort = 8080
	}

	return &config, nil
}
