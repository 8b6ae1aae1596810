package xmp

import "errors"

var (
	ErrUnregisteredNamespace = errors.New("xmp: unregistered namespace")
	ErrBadNamespace          = errors.New("xmp: bad namespace binding")
	ErrBadPath               = errors.New("xmp: bad path")
	ErrFormMismatch          = errors.New("xmp: node form mismatch")
	ErrNoSuchNode            = errors.New("xmp: no such node")
	ErrBadPacket             = errors.New("xmp: malformed packet")
	ErrBadText               = errors.New("xmp: text not representable in XML 1.0")
)
