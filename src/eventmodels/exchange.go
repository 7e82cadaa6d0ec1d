package eventmodels

import "strings"

type Exchange string

func (e Exchange) String() string {
	return strings.ToUpper(string(e))
}

func NewExchange(e string) Exchange {
	return Exchange(strings.ToUpper(e))
}
