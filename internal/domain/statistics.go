package domain

// Statistics summarises the registry.
type Statistics struct {
	TotalOwners         int64             `json:"totalOwners"`
	TotalPets           int64             `json:"totalPets"`
	PetsByType          map[PetType]int64 `json:"petsByType"`
	AveragePetsPerOwner int64             `json:"averagePetsPerOwner"`
}
