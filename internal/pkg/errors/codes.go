package errors

import "fibernet/pkg/domain"

// Not-found codes, one per entity.
const (
	CodeClientNotFound     = "CLIENT_NOT_FOUND"
	CodeBoxNotFound        = "BOX_NOT_FOUND"
	CodeCableNotFound      = "CABLE_NOT_FOUND"
	CodeFiberNotFound      = "FIBER_NOT_FOUND"
	CodeSwitchNotFound     = "SWITCH_NOT_FOUND"
	CodePortNotFound       = "PORT_NOT_FOUND"
	CodeCircuitNotFound    = "CIRCUIT_NOT_FOUND"
	CodeTechnicianNotFound = "TECHNICIAN_NOT_FOUND"
	CodeTicketNotFound     = "TICKET_NOT_FOUND"
	CodeExportNotFound     = "EXPORT_NOT_FOUND"
	CodeNotFound           = "NOT_FOUND"
)

// Request and integrity codes.
const (
	CodeInvalidRequestField = "INVALID_REQUEST_FIELD"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeIntegrityViolation  = "INTEGRITY_VIOLATION"
	CodeConflict            = "CONFLICT"
	CodeUnsupported         = "UNSUPPORTED"
	CodeInternal            = "INTERNAL_ERROR"
)

var notFoundCodes = map[domain.EntityType]string{
	domain.EntityClient:     CodeClientNotFound,
	domain.EntityBox:        CodeBoxNotFound,
	domain.EntityCable:      CodeCableNotFound,
	domain.EntityFiber:      CodeFiberNotFound,
	domain.EntitySwitch:     CodeSwitchNotFound,
	domain.EntityPort:       CodePortNotFound,
	domain.EntityCircuit:    CodeCircuitNotFound,
	domain.EntityTechnician: CodeTechnicianNotFound,
	domain.EntityTicket:     CodeTicketNotFound,
}

// NotFoundCode returns the not-found code for an entity type.
func NotFoundCode(entity domain.EntityType) string {
	if code, ok := notFoundCodes[entity]; ok {
		return code
	}
	return CodeNotFound
}
