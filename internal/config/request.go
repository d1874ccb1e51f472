package config

import (
	"errors"
	"fmt"
)

// Operation is the kind of work a Request asks for.
type Operation int

const (
	// OpPrintAll shows every resolved key.
	OpPrintAll Operation = iota
	// OpPrint shows one key. The key may be empty.
	OpPrint
	// OpAdd sets a key on the current directory.
	OpAdd
	// OpRemove deletes a key from the current directory.
	OpRemove
)

func (o Operation) String() string {
	switch o {
	case OpPrintAll:
		return "print-all"
	case OpPrint:
		return "print"
	case OpAdd:
		return "add"
	case OpRemove:
		return "rm"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// ErrMalformedRequest is returned for argument lists that match no operation.
var ErrMalformedRequest = errors.New("malformed request")

// Request is one parsed invocation.
type Request struct {
	Op    Operation
	Key   string
	Value string
}

// ShowAll reports whether r prints every resolved value.
func (r Request) ShowAll() bool {
	return r.Op == OpPrintAll
}

// Mutates reports whether r changes the store and must be saved.
func (r Request) Mutates() bool {
	return r.Op == OpAdd || r.Op == OpRemove
}

// ParseRequest maps positional arguments to a Request:
//
//	[]                  print all
//	[key]               print key
//	[add, key, value]   add
//	[rm, key]           remove
func ParseRequest(args []string) (Request, error) {
	if len(args) == 0 {
		return Request{Op: OpPrintAll}, nil
	}

	switch args[0] {
	case "add":
		if len(args) != 3 {
			return Request{}, fmt.Errorf("%w: add expects 2 arguments (key, value), got %d", ErrMalformedRequest, len(args)-1)
		}
		return Request{Op: OpAdd, Key: args[1], Value: args[2]}, nil
	case "rm":
		if len(args) != 2 {
			return Request{}, fmt.Errorf("%w: rm expects 1 argument (key), got %d", ErrMalformedRequest, len(args)-1)
		}
		return Request{Op: OpRemove, Key: args[1]}, nil
	}

	if len(args) > 1 {
		return Request{}, fmt.Errorf("%w: print expects 0 or 1 arguments, got %d", ErrMalformedRequest, len(args))
	}
	return Request{Op: OpPrint, Key: args[0]}, nil
}
