package store

import (
	"errors"
	"fmt"
)

// NotFoundError reports that no stored task matched a reference.
type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no task matches %q", e.Ref)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// TemplateError reports an operation that does not apply to recurring
// templates, which exist only to spawn occurrences.
type TemplateError struct {
	Op  string
	Key string
}

func (e TemplateError) Error() string {
	return fmt.Sprintf("cannot %s template %s", e.Op, e.Key)
}

// ProjectedError reports a write aimed at a projected occurrence,
// which has no row of its own until it is materialized for today.
type ProjectedError struct {
	ID string
}

func (e ProjectedError) Error() string {
	return fmt.Sprintf("task %s is a projected occurrence and cannot be modified", e.ID)
}
