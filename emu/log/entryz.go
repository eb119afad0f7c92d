package log

import (
	"fmt"
	"strconv"

	"gopkg.in/Sirupsen/logrus.v0"
)

// EntryZ accumulates typed fields for a single log line. A nil *EntryZ
// (disabled module) makes every method a no-op, so callers never need to
// guard their log statements.
type EntryZ struct {
	mod Module
	lvl Level
	msg string

	fields logrus.Fields
}

func (e *EntryZ) field(key string, val any) *EntryZ {
	if e == nil {
		return nil
	}
	if e.fields == nil {
		e.fields = make(logrus.Fields, 8)
	}
	e.fields[key] = val
	return e
}

func (e *EntryZ) String(key, val string) *EntryZ {
	return e.field(key, val)
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	return e.field(key, val)
}

func (e *EntryZ) Int(key string, val int) *EntryZ {
	return e.field(key, strconv.Itoa(val))
}

func (e *EntryZ) Int64(key string, val int64) *EntryZ {
	return e.field(key, strconv.FormatInt(val, 10))
}

func (e *EntryZ) Uint8(key string, val uint8) *EntryZ {
	return e.field(key, strconv.FormatUint(uint64(val), 10))
}

func (e *EntryZ) Uint32(key string, val uint32) *EntryZ {
	return e.field(key, strconv.FormatUint(uint64(val), 10))
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return e.field(key, fmt.Sprintf("%02x", val))
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return e.field(key, fmt.Sprintf("%04x", val))
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	if err == nil {
		return e.field(key, "<nil>")
	}
	return e.field(key, err.Error())
}

// End emits the accumulated entry.
func (e *EntryZ) End() {
	if e == nil {
		return
	}
	final := entry(e.mod).WithFields(e.fields)
	switch e.lvl {
	case DebugLevel:
		final.Debug(e.msg)
	case InfoLevel:
		final.Info(e.msg)
	case WarnLevel:
		final.Warn(e.msg)
	case ErrorLevel:
		final.Error(e.msg)
	case FatalLevel:
		final.Fatal(e.msg)
	case PanicLevel:
		final.Panic(e.msg)
	}
}
