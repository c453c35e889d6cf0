package domain

import (
	"errors"
	"fmt"
)

// Errores de validación local: nunca llegan a la red
var (
	ErrEmptyURL    = errors.New("please enter a valid URL")
	ErrEmptyBulk   = errors.New("please enter at least one URL")
	ErrNoValidURLs = errors.New("please enter valid URLs")
)

var (
	// ErrMisalignedResults: el servicio devolvió un número de resultados distinto al de URLs
	ErrMisalignedResults = errors.New("bulk results do not match submitted urls")
	// ErrBusy: el control ya tiene una petición en curso
	ErrBusy = errors.New("request already in progress")
	// ErrNotConfirmed: el usuario no confirmó una acción destructiva
	ErrNotConfirmed = errors.New("action not confirmed")
)

// ServiceError es un fallo lógico reportado por el servicio
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// TransportError es un fallo de red o de parseo de la respuesta
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reporta si err es (o envuelve) un TransportError
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
