package booking

// Availability é a resposta da consulta de vagas.
type Availability struct {
	Free int  `json:"free"`
	Full bool `json:"full"`
}

// Unavailable é o padrão para áreas desconhecidas.
var Unavailable = Availability{Free: 0, Full: true}

// FreeSlots: max(0, capacidade - voluntários não responsáveis).
func FreeSlots(maxPeople int, nonResponsible int64) int {
	free := int64(maxPeople) - nonResponsible
	if free < 0 {
		return 0
	}
	return int(free)
}

func AvailabilityFor(maxPeople int, nonResponsible int64) Availability {
	free := FreeSlots(maxPeople, nonResponsible)
	return Availability{Free: free, Full: free <= 0}
}

// HasCapacity decide o passo de lotação: responsáveis nunca contam.
func HasCapacity(maxPeople int, nonResponsible int64, responsible bool) bool {
	if responsible {
		return true
	}
	return nonResponsible < int64(maxPeople)
}
