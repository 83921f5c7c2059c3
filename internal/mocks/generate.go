// Package mocks holds gomock doubles for the repository interfaces.
//
// Regenerate after interface changes with:
//
//	go generate ./internal/mocks
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/spec-kit/pet-service/internal/repository UserRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=owner_repository_mock.go github.com/spec-kit/pet-service/internal/repository OwnerRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=pet_repository_mock.go github.com/spec-kit/pet-service/internal/repository PetRepository
