package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a retrieval failed.
type FailureKind int

const (
	// KindTransport covers DNS, connection and timeout errors.
	KindTransport FailureKind = iota
	// KindBadResponse covers non-2xx status codes.
	KindBadResponse
	// KindDecode covers payloads that are not valid JSON of the expected shape.
	KindDecode
)

func (k FailureKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindBadResponse:
		return "bad_response"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// FetchFailure is the error for a single failed retrieval. It always names
// exactly one responsible resource.
type FetchFailure struct {
	Resource ResourceName
	Kind     FailureKind
	Status   int   // HTTP status for bad_response, 0 otherwise
	Err      error // underlying cause, nil for bad_response
}

func (f *FetchFailure) Error() string {
	switch f.Kind {
	case KindBadResponse:
		return fmt.Sprintf("fetch %s: bad response: HTTP %d", f.Resource, f.Status)
	case KindDecode:
		return fmt.Sprintf("fetch %s: decode: %v", f.Resource, f.Err)
	default:
		return fmt.Sprintf("fetch %s: %v", f.Resource, f.Err)
	}
}

func (f *FetchFailure) Unwrap() error { return f.Err }

func NewTransportFailure(name ResourceName, err error) *FetchFailure {
	return &FetchFailure{Resource: name, Kind: KindTransport, Err: err}
}

func NewBadResponseFailure(name ResourceName, status int) *FetchFailure {
	return &FetchFailure{Resource: name, Kind: KindBadResponse, Status: status}
}

func NewDecodeFailure(name ResourceName, err error) *FetchFailure {
	return &FetchFailure{Resource: name, Kind: KindDecode, Err: err}
}

// AsFetchFailure unwraps err to a *FetchFailure if there is one in the chain.
func AsFetchFailure(err error) (*FetchFailure, bool) {
	var f *FetchFailure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func IsTransport(err error) bool {
	f, ok := AsFetchFailure(err)
	return ok && f.Kind == KindTransport
}

func IsBadResponse(err error) bool {
	f, ok := AsFetchFailure(err)
	return ok && f.Kind == KindBadResponse
}

func IsDecode(err error) bool {
	f, ok := AsFetchFailure(err)
	return ok && f.Kind == KindDecode
}
