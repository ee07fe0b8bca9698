package domain

import (
	"errors"
	"fmt"
)

// FaultKind clasifica los fallos que cruzan la frontera HTTP.
type FaultKind int

const (
	// FaultValidation errores de validación por campo (400).
	FaultValidation FaultKind = iota + 1
	// FaultNotFound entidad inexistente (404).
	FaultNotFound
	// FaultPersistence fallo de la base de datos (500).
	FaultPersistence
	// FaultStorage fallo de E/S al guardar archivos subidos (500).
	FaultStorage
)

// Fault es el error que los casos de uso devuelven para que la capa HTTP arme el sobre
// {mensaje, error|errors}. Errors solo aplica a FaultValidation; ErrorsKey indica la clave
// JSON donde se publican ("error" al crear, "errors" al editar).
type Fault struct {
	Kind      FaultKind
	Message   string
	Errors    []string
	ErrorsKey string
	Cause     error
}

// Error devuelve el mensaje seguido de la causa, si la hay.
func (f *Fault) Error() string {
	if f.Cause == nil {
		return f.Message
	}
	return f.Message + ": " + f.Cause.Error()
}

func (f *Fault) Unwrap() error { return f.Cause }

// Detail devuelve el texto del campo "error": mensaje de la causa seguido de su causa raíz.
func (f *Fault) Detail() string {
	if f.Cause == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", f.Cause.Error(), RootCause(f.Cause).Error())
}

// RootCause recorre la cadena de errores envueltos hasta el último.
func RootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// AsFault extrae un *Fault de la cadena de err.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// PhotoError fallo al abrir una imagen para servirla. Error() solo nombra el archivo;
// la causa (rutas, bucket) queda en Err para los logs.
type PhotoError struct {
	Name string
	Err  error
}

func (e *PhotoError) Error() string { return "no se pudo cargar la imagen " + e.Name }

func (e *PhotoError) Unwrap() error { return e.Err }

// NewValidationFault crea un fallo de validación publicado bajo key.
func NewValidationFault(key string, errs []string) *Fault {
	return &Fault{Kind: FaultValidation, ErrorsKey: key, Errors: errs}
}

// NewNotFoundFault crea un fallo 404 con msg.
func NewNotFoundFault(msg string) *Fault {
	return &Fault{Kind: FaultNotFound, Message: msg, Cause: nil}
}

// NewPersistenceFault crea un fallo de base de datos con su causa.
func NewPersistenceFault(msg string, cause error) *Fault {
	return &Fault{Kind: FaultPersistence, Message: msg, Cause: cause}
}

// NewStorageFault crea un fallo de escritura de archivos con su causa.
func NewStorageFault(msg string, cause error) *Fault {
	return &Fault{Kind: FaultStorage, Message: msg, Cause: cause}
}
