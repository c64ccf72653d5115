package httperr

import "errors"

// ======================================================
// CODES
// ======================================================

const (
	CodeStoreUnavailable  = "store_unavailable"
	CodeVolunteerNotFound = "volunteer_not_found"
	CodeNotEligible       = "not_eligible"
	CodeInvalidArea       = "invalid_area"
	CodeCapacityExceeded  = "capacity_exceeded"
	CodeAlreadyBooked     = "already_booked"
	CodeAreaNotFound      = "area_not_found"
	CodeDuplicatePhone    = "duplicate_phone"
	CodeBookingNotFound   = "booking_not_found"
	CodeInvalidRequest    = "invalid_request"
	CodeInvalidDate       = "invalid_date"
	CodeInvalidShift      = "invalid_shift"
)

var messages = map[string]string{
	CodeStoreUnavailable:  "Erro interno ao processar a solicitação.",
	CodeVolunteerNotFound: "Voluntário não cadastrado no sistema.",
	CodeNotEligible:       "Você não está habilitado(a) para servir nesta área.",
	CodeInvalidArea:       "Área inválida.",
	CodeCapacityExceeded:  "Vagas esgotadas para esta área/turno.",
	CodeAlreadyBooked:     "Você já está escalado(a) neste dia e turno.",
	CodeAreaNotFound:      "Área não encontrada.",
	CodeDuplicatePhone:    "Telefone já cadastrado.",
	CodeBookingNotFound:   "Agendamento não encontrado.",
	CodeInvalidRequest:    "Dados inválidos.",
	CodeInvalidDate:       "Data inválida.",
	CodeInvalidShift:      "Turno inválido.",
}

// ======================================================
// BUSINESS ERROR
// ======================================================

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Message: MessageFor(code)}
}

// Store esconde a falha de infraestrutura atrás de store_unavailable,
// mantendo a causa acessível via errors.Is/As.
func Store(op string, err error) error {
	return BusinessError{
		Code:    CodeStoreUnavailable,
		Message: MessageFor(CodeStoreUnavailable),
		Err:     errors.Join(errors.New(op), err),
	}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeStoreUnavailable
}

func MessageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return messages[CodeStoreUnavailable]
}
