package postgres

import (
	"database/sql"

	"schoolfees-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.FeeTypeRepository
	repository.FeeLabelRepository
	repository.DiscountRepository
	repository.CollectionRepository
	repository.StudentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		FeeTypeRepository:    NewFeeTypeRepository(db),
		FeeLabelRepository:   NewFeeLabelRepository(db),
		DiscountRepository:   NewDiscountRepository(db),
		CollectionRepository: NewCollectionRepository(db),
		StudentRepository:    NewStudentRepository(db),
	}
}
