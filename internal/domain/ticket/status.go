package ticket

import "fmt"

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

var validStatuses = map[Status]bool{
	StatusOpen:   true,
	StatusClosed: true,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) IsOpen() bool {
	return s == StatusOpen
}

func (s Status) IsClosed() bool {
	return s == StatusClosed
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return st, nil
}
