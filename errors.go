package depot

import "fmt"

type ComponentSizeError struct {
	Name      string
	Want, Got int
}

func (e ComponentSizeError) Error() string {
	return fmt.Sprintf("component %q holds %d-byte records, got %d bytes", e.Name, e.Want, e.Got)
}

type EntityRangeError struct {
	ID    EntityID
	Count int
}

func (e EntityRangeError) Error() string {
	return fmt.Sprintf("entity %d is not materialized (entity count %d)", e.ID, e.Count)
}

type IteratorStateError struct {
	Op string
}

func (e IteratorStateError) Error() string {
	return fmt.Sprintf("query iterator: %s called outside iteration", e.Op)
}

type ReservationConflictError struct {
	Reserved int
}

func (e ReservationConflictError) Error() string {
	return fmt.Sprintf("cannot create entity immediately with %d reservation(s) pending flush", e.Reserved)
}

type ClosedWorldError struct{}

func (e ClosedWorldError) Error() string {
	return "world is closed"
}

type FlushDuringRunError struct{}

func (e FlushDuringRunError) Error() string {
	return "command queue flushed while systems are running"
}

type PointerComponentError struct {
	Type string
}

func (e PointerComponentError) Error() string {
	return fmt.Sprintf("component type %s contains Go pointers and cannot be stored as raw bytes", e.Type)
}

type UnsupportedSettingsError struct {
	Path string
}

func (e UnsupportedSettingsError) Error() string {
	return fmt.Sprintf("unsupported settings file extension: %s", e.Path)
}
