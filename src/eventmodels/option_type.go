package eventmodels

import "fmt"

type OptionType string

func (o OptionType) Validate() error {
	if o != Call && o != Put {
		return fmt.Errorf("OptionType: Validate: invalid option type: %s", o)
	}

	return nil
}

// Sign returns +1 for a call and -1 for a put, the convention the pricing
// functions expect.
func (o OptionType) Sign() int {
	if o == Put {
		return -1
	}

	return 1
}

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)
