package uow

import (
	"context"

	"github.com/corray333/backend-labs/payreport/internal/dal/interfaces/idatasetrepo"
	datasetrepo "github.com/corray333/backend-labs/payreport/internal/dal/repositories/dataset/sql"
	"github.com/corray333/backend-labs/payreport/internal/dal/store"
	"github.com/jmoiron/sqlx"
)

type unitOfWork struct {
	client      *store.Client
	tx          *sqlx.Tx
	datasetRepo idatasetrepo.IDatasetRepository
}

// NewUnitOfWork creates a unit of work whose repositories run outside a transaction until Begin.
func NewUnitOfWork(client *store.Client) *unitOfWork {
	return &unitOfWork{
		client:      client,
		datasetRepo: datasetrepo.NewDatasetRepository(client.DB(), client.Placeholder()),
	}
}

func (u *unitOfWork) DatasetRepository() idatasetrepo.IDatasetRepository {
	return u.datasetRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.DB().BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	u.tx = tx
	u.datasetRepo = datasetrepo.NewDatasetRepository(tx, u.client.Placeholder())

	return nil
}

func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit()
}

func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Rollback()
}
