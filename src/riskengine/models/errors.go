package models

import "fmt"

var (
	ErrPricingModelNotBound = fmt.Errorf("pricing model not bound")
	ErrOptionNotFound       = fmt.Errorf("option not found in chain")
	ErrNotAnOption          = fmt.Errorf("contract is not an option")
)
