/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logfields

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldAdditionalMessage = "additionalMessage"
	FieldCommand           = "command"
	FieldDuration          = "duration"
	FieldEntries           = "entries"
	FieldEvent             = "event"
	FieldFalsePositives    = "falsePositives"
	FieldHashFunction      = "hashFunction"
	FieldKind              = "kind"
	FieldLayer             = "layer"
	FieldListID            = "listID"
	FieldRounds            = "rounds"
	FieldSleep             = "sleep"
	FieldSubject           = "subject"
	FieldUserLogLevel      = "userLogLevel"
	FieldValid             = "valid"
	FieldWorkers           = "workers"
)

// WithAdditionalMessage sets the AdditionalMessage field.
func WithAdditionalMessage(value string) zap.Field {
	return zap.Any(FieldAdditionalMessage, value)
}

// WithCommand sets the Command field.
func WithCommand(command string) zap.Field {
	return zap.String(FieldCommand, command)
}

// WithDuration sets the elapsed time field.
func WithDuration(value time.Duration) zap.Field {
	return zap.Duration(FieldDuration, value)
}

// WithEntries sets the number of entries field.
func WithEntries(entries int) zap.Field {
	return zap.Int(FieldEntries, entries)
}

// WithEvent sets the Event field.
func WithEvent(event interface{}) zap.Field {
	return zap.Inline(NewObjectMarshaller(FieldEvent, event))
}

// WithFalsePositives sets the false positive count of a cascade layer.
func WithFalsePositives(count int) zap.Field {
	return zap.Int(FieldFalsePositives, count)
}

// WithHashFunction sets the HashFunction field.
func WithHashFunction(hashFunction string) zap.Field {
	return zap.String(FieldHashFunction, hashFunction)
}

// WithKind sets the status list kind field.
func WithKind(kind string) zap.Field {
	return zap.String(FieldKind, kind)
}

// WithLayer sets the cascade layer index.
func WithLayer(layer int) zap.Field {
	return zap.Int(FieldLayer, layer)
}

// WithListID sets the ListID field.
func WithListID(listID string) zap.Field {
	return zap.String(FieldListID, listID)
}

// WithRounds sets the Rounds field.
func WithRounds(rounds int) zap.Field {
	return zap.Int(FieldRounds, rounds)
}

// WithSleep sets the Sleep field.
func WithSleep(value time.Duration) zap.Field {
	return zap.Duration(FieldSleep, value)
}

// WithSubject sets the Subject field.
func WithSubject(subject string) zap.Field {
	return zap.String(FieldSubject, subject)
}

// WithUserLogLevel sets the UserLogLevel field.
func WithUserLogLevel(logLevel string) zap.Field {
	return zap.String(FieldUserLogLevel, logLevel)
}

// WithValid sets the Valid field.
func WithValid(valid bool) zap.Field {
	return zap.Bool(FieldValid, valid)
}

// WithWorkers sets the Workers field.
func WithWorkers(workers int) zap.Field {
	return zap.Int(FieldWorkers, workers)
}

// ObjectMarshaller uses reflection to marshal an object's fields.
type ObjectMarshaller struct {
	key string
	obj interface{}
}

// NewObjectMarshaller returns a new ObjectMarshaller.
func NewObjectMarshaller(key string, obj interface{}) *ObjectMarshaller {
	return &ObjectMarshaller{key: key, obj: obj}
}

// MarshalLogObject marshals the object's fields.
func (m *ObjectMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	return e.AddReflected(m.key, m.obj)
}
