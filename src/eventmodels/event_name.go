package eventmodels

type EventName string

func (e EventName) String() string {
	return string(e)
}
