package install

import "fmt"

// Error identifiers, stable across releases. API clients match on these;
// the Msg text is for humans and may change.
const (
	ErrorInvalidTimezone      = "InvalidTimezone"
	ErrorMissingHostname      = "MissingHostname"
	ErrorMissingBootloader    = "MissingBootloader"
	ErrorMissingPartitions    = "MissingPartitions"
	ErrorMissingPartitionDisk = "MissingPartitionDisk"
	ErrorInvalidMountPoint    = "InvalidMountPoint"
	ErrorMissingUserName      = "MissingUserName"
	ErrorInvalidBootloader    = "InvalidBootloader"
	ErrorMissingBootPartition = "MissingBootPartition"
	ErrorMissingRootPartition = "MissingRootPartition"
)

// An Error is a fatal configuration error. There is no recovery and no
// partial output; the plan or script is simply not produced.
type Error struct {
	ID  string
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

// Errorf builds an Error with a formatted message.
func Errorf(id, format string, args ...interface{}) *Error {
	return &Error{
		ID:  id,
		Msg: fmt.Sprintf(format, args...),
	}
}
