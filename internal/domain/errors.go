package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrInvalidInput parámetros de filtro malformados (fechas, cuotas).
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrConsultaFallo la consulta remota falló; se propaga sin reintentos.
	ErrConsultaFallo = errors.New("la consulta remota falló")
)
